package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
)

type CollaborationHandler struct {
	collabService *service.CollaborationService
}

func NewCollaborationHandler(collabService *service.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{collabService: collabService}
}

type CollaborationRequestBody struct {
	IdeaID            string `json:"ideaId"`
	Message           string `json:"message"`
	AdditionalContact string `json:"additionalContact"`
}

type CollaborationResponseBody struct {
	RequestID         string `json:"requestId"`
	Status            string `json:"status"`
	Message           string `json:"message"`
	AdditionalContact string `json:"additionalContact"`
}

type CollaborationRequestResponse struct {
	ID                string                         `json:"id"`
	IdeaID            string                         `json:"ideaId"`
	RequesterEmail    string                         `json:"requesterEmail,omitempty"`
	Message           string                         `json:"message"`
	AdditionalContact string                         `json:"additionalContact"`
	CreatedAt         time.Time                      `json:"createdAt"`
	Response          *CollaborationResponseResponse `json:"response"`
}

type CollaborationResponseResponse struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	Message           string `json:"message"`
	AdditionalContact string `json:"additionalContact,omitempty"`
}

func toCollaborationResponse(resp *domain.CollaborationResponse) *CollaborationResponseResponse {
	if resp == nil {
		return nil
	}
	out := &CollaborationResponseResponse{
		ID:      resp.ID,
		Status:  string(resp.Status),
		Message: resp.Message,
	}
	if resp.Confirmation != nil {
		out.AdditionalContact = resp.Confirmation.AdditionalContact
	}
	return out
}

func toCollaborationRequest(req *domain.CollaborationRequest) CollaborationRequestResponse {
	return CollaborationRequestResponse{
		ID:                req.ID,
		IdeaID:            req.IdeaID,
		RequesterEmail:    req.Requester.Email(),
		Message:           req.Message,
		AdditionalContact: req.AdditionalContact,
		CreatedAt:         req.CreatedAt,
		Response:          toCollaborationResponse(req.Response),
	}
}

func (h *CollaborationHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var body CollaborationRequestBody
	if !decodeJSON(w, r, &body) {
		return
	}

	request, err := h.collabService.SendRequest(r.Context(), caller, service.SendRequestInput{
		IdeaID:            body.IdeaID,
		Message:           body.Message,
		AdditionalContact: body.AdditionalContact,
	})
	if err != nil {
		handleError(w, "CollaborationHandler.SendRequest", err)
		return
	}
	writeJSON(w, http.StatusOK, toCollaborationRequest(request))
}

func (h *CollaborationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	requests, err := h.collabService.GetRequestsForIdea(r.Context(), caller, chi.URLParam(r, "ideaId"))
	if err != nil {
		handleError(w, "CollaborationHandler.ListRequests", err)
		return
	}

	resp := make([]CollaborationRequestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, toCollaborationRequest(req))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CollaborationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var body CollaborationResponseBody
	if !decodeJSON(w, r, &body) {
		return
	}

	response, err := h.collabService.Respond(r.Context(), caller, service.RespondInput{
		RequestID:         body.RequestID,
		Status:            domain.CollaborationStatus(body.Status),
		Message:           body.Message,
		AdditionalContact: body.AdditionalContact,
	})
	if err != nil {
		handleError(w, "CollaborationHandler.Respond", err)
		return
	}
	writeJSON(w, http.StatusOK, toCollaborationResponse(response))
}

// GetResponse replies with the answer to the caller's latest request, or
// null while it is pending.
func (h *CollaborationHandler) GetResponse(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	response, err := h.collabService.GetCollaborationResponseForIdea(r.Context(), caller, chi.URLParam(r, "ideaId"))
	if err != nil {
		handleError(w, "CollaborationHandler.GetResponse", err)
		return
	}
	writeJSON(w, http.StatusOK, toCollaborationResponse(response))
}
