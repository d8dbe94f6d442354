package handlers_test

import (
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

func TestReactionHandler_Toggle(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	idea := testutil.NewIdeaBuilder(owner).Build(t, ts.DB)

	body := handlers.ReactionRequest{IdeaID: idea.ID, ReactionType: string(domain.ReactionHighFive)}

	resp := testutil.Do(t, http.MethodPost, ts.APIURL("/reaction"), body, token)
	var on handlers.ToggleResponse
	testutil.AssertJSONResponse(t, resp, &on)
	assert.True(t, on.Reacted)
	require.NotNil(t, on.Reaction)
	assert.Equal(t, idea.ID, on.Reaction.IdeaID)

	resp = testutil.Do(t, http.MethodGet, ts.APIURL("/idea/"+idea.ID+"/reactions"), nil, token)
	var count handlers.ReactionCountResponse
	testutil.AssertJSONResponse(t, resp, &count)
	assert.Equal(t, int64(1), count.Count)

	resp = testutil.Do(t, http.MethodPost, ts.APIURL("/reaction"), body, token)
	var off handlers.ToggleResponse
	testutil.AssertJSONResponse(t, resp, &off)
	assert.False(t, off.Reacted)
	assert.Nil(t, off.Reaction)

	resp = testutil.Do(t, http.MethodGet, ts.APIURL("/idea/"+idea.ID+"/reactions"), nil, token)
	testutil.AssertJSONResponse(t, resp, &count)
	assert.Zero(t, count.Count)
}

func TestReactionHandler_Errors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	idea := testutil.NewIdeaBuilder(owner).Build(t, ts.DB)

	resp := testutil.Do(t, http.MethodPost, ts.APIURL("/reaction"), handlers.ReactionRequest{
		IdeaID:       idea.ID,
		ReactionType: "Thumbsdown",
	}, token)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, domain.MsgInvalidReaction)

	_, ownerToken := testutil.NewUserBuilder().WithAuthorities(domain.AuthorityOwner).BuildAndAuthenticate(t, ts)
	resp = testutil.Do(t, http.MethodPost, ts.APIURL("/reaction"), handlers.ReactionRequest{
		IdeaID:       idea.ID,
		ReactionType: string(domain.ReactionHighFive),
	}, ownerToken)
	testutil.AssertErrorResponse(t, resp, http.StatusForbidden, domain.MsgAccessDenied)
}

func TestReactionHandler_NotifiesOwner(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, ownerToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	fan, fanToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	idea := testutil.NewIdeaBuilder(owner).WithTitle("Bike repair cafe").Build(t, ts.DB)

	client := testutil.NewWSClient(t, ts.WebSocketURL(ownerToken))
	connected := client.WaitForConnection(2 * time.Second)
	assert.Equal(t, owner.AppUserID, connected.UserID)
	require.Eventually(t, func() bool {
		return ts.Hub.ConnectedClients(owner.AppUserID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	resp := testutil.Do(t, http.MethodPost, ts.APIURL("/reaction"), handlers.ReactionRequest{
		IdeaID:       idea.ID,
		ReactionType: string(domain.ReactionHighFive),
	}, fanToken)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var payload websocket.ReactionReceivedPayload
	client.ExpectPayload(websocket.MessageTypeReactionReceived, &payload, 2*time.Second)
	assert.Equal(t, idea.ID, payload.IdeaID)
	assert.Equal(t, "Bike repair cafe", payload.IdeaTitle)
	assert.Equal(t, fan.AppUser.Email, payload.FromEmail)
}
