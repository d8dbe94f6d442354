package handlers

import (
	"net/http"
	"time"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
)

type ReactionHandler struct {
	reactionService *service.ReactionService
}

func NewReactionHandler(reactionService *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

type ReactionRequest struct {
	IdeaID       string `json:"ideaId"`
	ReactionType string `json:"reactionType"`
}

type ReactionResponse struct {
	ID           string    `json:"id"`
	IdeaID       string    `json:"ideaId"`
	ReactionType string    `json:"reactionType"`
	Date         time.Time `json:"date"`
}

// ToggleResponse reports the state after a toggle. Reaction is null when the
// caller's reaction was removed.
type ToggleResponse struct {
	Reacted  bool              `json:"reacted"`
	Reaction *ReactionResponse `json:"reaction"`
}

func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req ReactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reaction, err := h.reactionService.ReactAs(r.Context(), caller, req.IdeaID, domain.ReactionType(req.ReactionType))
	if err != nil {
		handleError(w, "ReactionHandler.Toggle", err)
		return
	}

	resp := ToggleResponse{Reacted: reaction != nil}
	if reaction != nil {
		resp.Reaction = &ReactionResponse{
			ID:           reaction.ID,
			IdeaID:       reaction.IdeaID,
			ReactionType: string(reaction.ReactionType),
			Date:         reaction.Date,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
