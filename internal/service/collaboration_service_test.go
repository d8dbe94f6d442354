package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/purposeful/purposeful-backend/internal/testutil"
	"github.com/purposeful/purposeful-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collabFixture struct {
	env       *testEnv
	owner     *domain.RegularUser
	requester *domain.RegularUser
	idea      *domain.Idea
}

func newCollabFixture(t *testing.T) *collabFixture {
	t.Helper()

	env := newTestEnv(t)
	owner, _ := testutil.NewUserBuilder().Build(t, env.db)
	requester, _ := testutil.NewUserBuilder().Build(t, env.db)

	return &collabFixture{
		env:       env,
		owner:     owner,
		requester: requester,
		idea:      testutil.NewIdeaBuilder(owner).WithTitle("Open tutoring").Build(t, env.db),
	}
}

func (f *collabFixture) send(t *testing.T) *domain.CollaborationRequest {
	t.Helper()

	request, err := f.env.services.Collaboration.SendRequest(context.Background(), testutil.CallerFor(f.requester), service.SendRequestInput{
		IdeaID:            f.idea.ID,
		Message:           "I build mobile apps",
		AdditionalContact: "discord: requester",
	})
	require.NoError(t, err)
	return request
}

func TestCollaborationService_SendRequest(t *testing.T) {
	f := newCollabFixture(t)

	request := f.send(t)
	assert.NotEmpty(t, request.ID)
	assert.Equal(t, f.idea.ID, request.IdeaID)
	assert.Equal(t, f.requester.ID, request.RequesterID)
	assert.Nil(t, request.ResponseID)

	sent := f.env.notifier.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, f.owner.AppUserID, sent[0].userID)
	assert.Equal(t, websocket.MessageTypeCollaborationRequested, sent[0].msgType)
}

func TestCollaborationService_SendRequest_Validation(t *testing.T) {
	f := newCollabFixture(t)
	ctx := context.Background()
	f.send(t)

	tests := []struct {
		name    string
		caller  domain.Caller
		input   service.SendRequestInput
		message string
	}{
		{
			name:    "own idea",
			caller:  testutil.CallerFor(f.owner),
			input:   service.SendRequestInput{IdeaID: f.idea.ID, Message: "hi"},
			message: domain.MsgOwnIdea,
		},
		{
			name:    "open request exists",
			caller:  testutil.CallerFor(f.requester),
			input:   service.SendRequestInput{IdeaID: f.idea.ID, Message: "again"},
			message: domain.MsgRequestAlreadySent,
		},
		{
			name:    "empty message",
			caller:  testutil.CallerFor(f.requester),
			input:   service.SendRequestInput{IdeaID: f.idea.ID},
			message: domain.MsgFieldsEmpty,
		},
		{
			name:    "unknown idea",
			caller:  testutil.CallerFor(f.requester),
			input:   service.SendRequestInput{IdeaID: "missing", Message: "hi"},
			message: "Idea with UUID missing does not exist.",
		},
		{
			name:    "unknown account",
			caller:  domain.Caller{Email: "ghost@test.dev"},
			input:   service.SendRequestInput{IdeaID: f.idea.ID, Message: "hi"},
			message: domain.MsgAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.env.services.Collaboration.SendRequest(ctx, tt.caller, tt.input)
			testutil.AssertDomainError(t, err, http.StatusBadRequest, tt.message)
		})
	}
}

func TestCollaborationService_Respond(t *testing.T) {
	f := newCollabFixture(t)
	ctx := context.Background()
	request := f.send(t)

	response, err := f.env.services.Collaboration.Respond(ctx, testutil.CallerFor(f.owner), service.RespondInput{
		RequestID:         request.ID,
		Status:            domain.CollaborationApproved,
		Message:           "Welcome aboard",
		AdditionalContact: "owner@test.dev",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CollaborationApproved, response.Status)
	require.NotNil(t, response.Confirmation)
	assert.Equal(t, "owner@test.dev", response.Confirmation.AdditionalContact)

	sent := f.env.notifier.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, f.requester.AppUserID, sent[1].userID)
	assert.Equal(t, websocket.MessageTypeCollaborationAnswered, sent[1].msgType)

	// answered once only
	_, err = f.env.services.Collaboration.Respond(ctx, testutil.CallerFor(f.owner), service.RespondInput{
		RequestID: request.ID,
		Status:    domain.CollaborationDeclined,
	})
	testutil.AssertDomainError(t, err, http.StatusBadRequest, domain.MsgRequestAnswered)

	// an answered request frees the requester to ask again
	f.send(t)
}

func TestCollaborationService_Respond_Validation(t *testing.T) {
	f := newCollabFixture(t)
	ctx := context.Background()
	request := f.send(t)
	moderator, _ := testutil.NewUserBuilder().WithAuthorities(domain.AuthorityModerator).Build(t, f.env.db)

	tests := []struct {
		name    string
		caller  domain.Caller
		input   service.RespondInput
		message string
	}{
		{
			name:    "requester cannot answer",
			caller:  testutil.CallerFor(f.requester),
			input:   service.RespondInput{RequestID: request.ID, Status: domain.CollaborationDeclined},
			message: domain.MsgNotAuthorized,
		},
		{
			name:    "moderator cannot answer",
			caller:  testutil.CallerFor(moderator),
			input:   service.RespondInput{RequestID: request.ID, Status: domain.CollaborationDeclined},
			message: domain.MsgNotAuthorized,
		},
		{
			name:    "invalid status",
			caller:  testutil.CallerFor(f.owner),
			input:   service.RespondInput{RequestID: request.ID, Status: "Maybe"},
			message: domain.MsgInvalidStatus,
		},
		{
			name:    "approval needs contact",
			caller:  testutil.CallerFor(f.owner),
			input:   service.RespondInput{RequestID: request.ID, Status: domain.CollaborationApproved},
			message: domain.MsgFieldsEmpty,
		},
		{
			name:    "unknown request",
			caller:  testutil.CallerFor(f.owner),
			input:   service.RespondInput{RequestID: "missing", Status: domain.CollaborationDeclined},
			message: "Collaboration request with UUID missing does not exist.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.env.services.Collaboration.Respond(ctx, tt.caller, tt.input)
			testutil.AssertDomainError(t, err, http.StatusBadRequest, tt.message)
		})
	}
}

func TestCollaborationService_GetCollaborationResponseForIdea(t *testing.T) {
	f := newCollabFixture(t)
	ctx := context.Background()
	caller := testutil.CallerFor(f.requester)

	_, err := f.env.services.Collaboration.GetCollaborationResponseForIdea(ctx, caller, f.idea.ID)
	testutil.AssertDomainError(t, err, http.StatusBadRequest, domain.MsgNoRequestSent)

	request := f.send(t)

	response, err := f.env.services.Collaboration.GetCollaborationResponseForIdea(ctx, caller, f.idea.ID)
	require.NoError(t, err)
	assert.Nil(t, response, "unanswered request has no response")

	_, err = f.env.services.Collaboration.Respond(ctx, testutil.CallerFor(f.owner), service.RespondInput{
		RequestID: request.ID,
		Status:    domain.CollaborationDeclined,
		Message:   "Not right now",
	})
	require.NoError(t, err)

	response, err = f.env.services.Collaboration.GetCollaborationResponseForIdea(ctx, caller, f.idea.ID)
	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, domain.CollaborationDeclined, response.Status)
	assert.Equal(t, "Not right now", response.Message)
	assert.Nil(t, response.Confirmation)

	_, err = f.env.services.Collaboration.GetCollaborationResponseForIdea(ctx, caller, "missing")
	testutil.AssertDomainError(t, err, http.StatusBadRequest, "Idea with UUID missing does not exist.")
}

func TestCollaborationService_GetRequestsForIdea(t *testing.T) {
	f := newCollabFixture(t)
	ctx := context.Background()
	request := f.send(t)

	requests, err := f.env.services.Collaboration.GetRequestsForIdea(ctx, testutil.CallerFor(f.owner), f.idea.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, request.ID, requests[0].ID)
	assert.Equal(t, f.requester.AppUser.Email, requests[0].Requester.Email())

	_, err = f.env.services.Collaboration.GetRequestsForIdea(ctx, testutil.CallerFor(f.requester), f.idea.ID)
	testutil.AssertDomainError(t, err, http.StatusBadRequest, domain.MsgNotAuthorized)
}
