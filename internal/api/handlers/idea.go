package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
)

type IdeaHandler struct {
	ideaService     *service.IdeaService
	reactionService *service.ReactionService
}

func NewIdeaHandler(ideaService *service.IdeaService, reactionService *service.ReactionService) *IdeaHandler {
	return &IdeaHandler{
		ideaService:     ideaService,
		reactionService: reactionService,
	}
}

// SearchFilterRequest lists tag names; an absent or null list is no filter
type SearchFilterRequest struct {
	Domains      []string `json:"domains"`
	Topics       []string `json:"topics"`
	Technologies []string `json:"technologies"`
}

type CreateIdeaRequest struct {
	Title       string   `json:"title"`
	Purpose     string   `json:"purpose"`
	Description string   `json:"description"`
	IsPaid      bool     `json:"isPaid"`
	InProgress  bool     `json:"inProgress"`
	IsPrivate   bool     `json:"isPrivate"`
	DomainIDs   []string `json:"domainIds"`
	TechIDs     []string `json:"techIds"`
	TopicIDs    []string `json:"topicIds"`
	ImgURLIDs   []string `json:"imgUrlIds"`
	IconURLID   string   `json:"iconUrlId"`
}

type ModifyIdeaRequest struct {
	ID          string   `json:"id"`
	Title       *string  `json:"title"`
	Purpose     *string  `json:"purpose"`
	Description *string  `json:"description"`
	IsPaid      bool     `json:"isPaid"`
	InProgress  bool     `json:"inProgress"`
	IsPrivate   bool     `json:"isPrivate"`
	DomainIDs   []string `json:"domainIds"`
	TechIDs     []string `json:"techIds"`
	TopicIDs    []string `json:"topicIds"`
	ImgURLIDs   []string `json:"imgUrlIds"`
	IconURLID   string   `json:"iconUrlId"`
}

type ReactionCountResponse struct {
	IdeaID string `json:"ideaId"`
	Count  int64  `json:"count"`
}

func (h *IdeaHandler) Get(w http.ResponseWriter, r *http.Request) {
	idea, err := h.ideaService.GetIdeaByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "IdeaHandler.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, toIdeaResponse(idea))
}

func (h *IdeaHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req SearchFilterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ideas, err := h.ideaService.GetIdeasByAllCriteria(r.Context(), req.Domains, req.Topics, req.Technologies)
	if err != nil {
		handleError(w, "IdeaHandler.Filter", err)
		return
	}
	writeJSON(w, http.StatusOK, toIdeaResponses(ideas))
}

func (h *IdeaHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req CreateIdeaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	idea, err := h.ideaService.CreateIdea(r.Context(), caller, service.CreateIdeaInput{
		Title:       req.Title,
		Purpose:     req.Purpose,
		Description: req.Description,
		IsPaid:      req.IsPaid,
		InProgress:  req.InProgress,
		IsPrivate:   req.IsPrivate,
		DomainIDs:   req.DomainIDs,
		TechIDs:     req.TechIDs,
		TopicIDs:    req.TopicIDs,
		ImageURLIDs: req.ImgURLIDs,
		IconURLID:   req.IconURLID,
	})
	if err != nil {
		handleError(w, "IdeaHandler.Create", err)
		return
	}
	writeJSON(w, http.StatusOK, toIdeaResponse(idea))
}

func (h *IdeaHandler) Modify(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req ModifyIdeaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !h.authorize(w, r, caller, req.ID, "IdeaHandler.Modify") {
		return
	}

	idea, err := h.ideaService.ModifyIdea(r.Context(), service.ModifyIdeaInput{
		ID:          req.ID,
		Title:       req.Title,
		Purpose:     req.Purpose,
		Description: req.Description,
		IsPaid:      req.IsPaid,
		InProgress:  req.InProgress,
		IsPrivate:   req.IsPrivate,
		DomainIDs:   req.DomainIDs,
		TechIDs:     req.TechIDs,
		TopicIDs:    req.TopicIDs,
		ImageURLIDs: req.ImgURLIDs,
		IconURLID:   req.IconURLID,
	})
	if err != nil {
		handleError(w, "IdeaHandler.Modify", err)
		return
	}
	writeJSON(w, http.StatusOK, toIdeaResponse(idea))
}

func (h *IdeaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if !h.authorize(w, r, caller, id, "IdeaHandler.Delete") {
		return
	}

	if err := h.ideaService.RemoveIdeaByID(r.Context(), id); err != nil {
		handleError(w, "IdeaHandler.Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Idea successfully deleted"})
}

// authorize loads the idea and checks the caller may manage it
func (h *IdeaHandler) authorize(w http.ResponseWriter, r *http.Request, caller domain.Caller, ideaID, op string) bool {
	idea, err := h.ideaService.GetIdeaByID(r.Context(), ideaID)
	if err != nil {
		handleError(w, op, err)
		return false
	}
	if !caller.CanManage(idea) {
		writeError(w, http.StatusBadRequest, domain.MsgNotAuthorized)
		return false
	}
	return true
}

func (h *IdeaHandler) MyIdeas(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	ideas, err := h.ideaService.GetCreatedIdeas(r.Context(), caller.Email)
	if err != nil {
		handleError(w, "IdeaHandler.MyIdeas", err)
		return
	}
	writeJSON(w, http.StatusOK, toIdeaResponses(ideas))
}

func (h *IdeaHandler) Collaborations(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	ideas, err := h.ideaService.GetIdeasByCollaborationRequest(r.Context(), caller.Email)
	if err != nil {
		handleError(w, "IdeaHandler.Collaborations", err)
		return
	}
	writeJSON(w, http.StatusOK, toIdeaResponses(ideas))
}

func (h *IdeaHandler) Reactions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	count, err := h.reactionService.CountReactions(r.Context(), id)
	if err != nil {
		handleError(w, "IdeaHandler.Reactions", err)
		return
	}
	writeJSON(w, http.StatusOK, ReactionCountResponse{IdeaID: id, Count: count})
}
