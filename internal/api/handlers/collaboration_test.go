package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/purposeful/purposeful-backend/internal/api/handlers"
	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/testutil"
	"github.com/purposeful/purposeful-backend/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollaborationHandler_Flow(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().WithEmail("owner@test.dev").BuildAndAuthenticate(t, ts)
	requester, requesterToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	idea := testutil.NewIdeaBuilder(owner).WithTitle("Community garden").Build(t, ts.DB)

	ownerWS := testutil.NewWSClient(t, ts.WebSocketURL(ownerToken))
	ownerWS.WaitForConnection(2 * time.Second)
	requesterWS := testutil.NewWSClient(t, ts.WebSocketURL(requesterToken))
	requesterWS.WaitForConnection(2 * time.Second)
	require.Eventually(t, func() bool {
		return ts.Hub.ConnectedClients(owner.AppUserID) == 1 && ts.Hub.ConnectedClients(requester.AppUserID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// nothing sent yet
	resp := testutil.Do(t, http.MethodGet, ts.APIURL("/collaboration/response/"+idea.ID), nil, requesterToken)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, domain.MsgNoRequestSent)

	resp = testutil.Do(t, http.MethodPost, ts.APIURL("/collaboration/request"), handlers.CollaborationRequestBody{
		IdeaID:            idea.ID,
		Message:           "I know soil",
		AdditionalContact: "@gardener",
	}, requesterToken)
	var request handlers.CollaborationRequestResponse
	testutil.AssertJSONResponse(t, resp, &request)
	require.NotEmpty(t, request.ID)
	assert.Nil(t, request.Response)

	var requested websocket.CollaborationRequestedPayload
	ownerWS.ExpectPayload(websocket.MessageTypeCollaborationRequested, &requested, 2*time.Second)
	assert.Equal(t, request.ID, requested.RequestID)
	assert.Equal(t, "I know soil", requested.Message)

	// a second request while the first is open
	resp = testutil.Do(t, http.MethodPost, ts.APIURL("/collaboration/request"), handlers.CollaborationRequestBody{
		IdeaID:  idea.ID,
		Message: "again",
	}, requesterToken)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, domain.MsgRequestAlreadySent)

	// pending requests answer with null
	resp = testutil.Do(t, http.MethodGet, ts.APIURL("/collaboration/response/"+idea.ID), nil, requesterToken)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var pending *handlers.CollaborationResponseResponse
	testutil.AssertJSONResponse(t, resp, &pending)
	assert.Nil(t, pending)

	// the owner lists requests
	resp = testutil.Do(t, http.MethodGet, ts.APIURL("/collaboration/request/"+idea.ID), nil, ownerToken)
	var listed []handlers.CollaborationRequestResponse
	testutil.AssertJSONResponse(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, requester.AppUser.Email, listed[0].RequesterEmail)

	// only the owner may answer
	resp = testutil.Do(t, http.MethodPost, ts.APIURL("/collaboration/response"), handlers.CollaborationResponseBody{
		RequestID: request.ID,
		Status:    string(domain.CollaborationDeclined),
	}, requesterToken)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, domain.MsgNotAuthorized)

	resp = testutil.Do(t, http.MethodPost, ts.APIURL("/collaboration/response"), handlers.CollaborationResponseBody{
		RequestID:         request.ID,
		Status:            string(domain.CollaborationApproved),
		Message:           "Welcome aboard",
		AdditionalContact: "owner@test.dev",
	}, ownerToken)
	var answer handlers.CollaborationResponseResponse
	testutil.AssertJSONResponse(t, resp, &answer)
	assert.Equal(t, "Approved", answer.Status)
	assert.Equal(t, "owner@test.dev", answer.AdditionalContact)

	var answered websocket.CollaborationAnsweredPayload
	requesterWS.ExpectPayload(websocket.MessageTypeCollaborationAnswered, &answered, 2*time.Second)
	assert.Equal(t, "Approved", answered.Status)
	assert.Equal(t, "Community garden", answered.IdeaTitle)

	resp = testutil.Do(t, http.MethodGet, ts.APIURL("/collaboration/response/"+idea.ID), nil, requesterToken)
	var stored handlers.CollaborationResponseResponse
	testutil.AssertJSONResponse(t, resp, &stored)
	assert.Equal(t, answer.ID, stored.ID)

	// the idea now shows up among the requester's collaborations
	resp = testutil.Do(t, http.MethodGet, ts.APIURL("/idea/collaborations"), nil, requesterToken)
	var ideas []handlers.IdeaResponse
	testutil.AssertJSONResponse(t, resp, &ideas)
	require.Len(t, ideas, 1)
	assert.Equal(t, idea.ID, ideas[0].ID)
}

func TestCollaborationHandler_Errors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	idea := testutil.NewIdeaBuilder(owner).Build(t, ts.DB)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		token      string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "own idea",
			method:     http.MethodPost,
			path:       "/collaboration/request",
			body:       handlers.CollaborationRequestBody{IdeaID: idea.ID, Message: "me"},
			token:      ownerToken,
			wantStatus: http.StatusBadRequest,
			wantMsg:    domain.MsgOwnIdea,
		},
		{
			name:       "unknown idea",
			method:     http.MethodPost,
			path:       "/collaboration/request",
			body:       handlers.CollaborationRequestBody{IdeaID: "missing", Message: "hi"},
			token:      strangerToken,
			wantStatus: http.StatusBadRequest,
			wantMsg:    fmt.Sprintf(domain.MsgIdeaNotFoundFormat, "missing"),
		},
		{
			name:       "invalid status",
			method:     http.MethodPost,
			path:       "/collaboration/response",
			body:       handlers.CollaborationResponseBody{RequestID: "x", Status: "Maybe"},
			token:      ownerToken,
			wantStatus: http.StatusBadRequest,
			wantMsg:    domain.MsgInvalidStatus,
		},
		{
			name:       "unknown request",
			method:     http.MethodPost,
			path:       "/collaboration/response",
			body:       handlers.CollaborationResponseBody{RequestID: "missing", Status: "Declined"},
			token:      ownerToken,
			wantStatus: http.StatusBadRequest,
			wantMsg:    fmt.Sprintf(domain.MsgRequestNotFoundFormat, "missing"),
		},
		{
			name:       "stranger lists requests",
			method:     http.MethodGet,
			path:       "/collaboration/request/" + idea.ID,
			token:      strangerToken,
			wantStatus: http.StatusBadRequest,
			wantMsg:    domain.MsgNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.Do(t, tt.method, ts.APIURL(tt.path), tt.body, tt.token)
			testutil.AssertErrorResponse(t, resp, tt.wantStatus, tt.wantMsg)
		})
	}
}
