package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/purposeful/purposeful-backend/internal/api/middleware"
	"github.com/purposeful/purposeful-backend/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// handleError replies with the status carried by a domain error. Anything
// else is logged and hidden behind a 500.
func handleError(w http.ResponseWriter, op string, err error) {
	if domainErr, ok := domain.AsError(err); ok {
		writeError(w, domainErr.Status, domainErr.Message)
		return
	}
	log.Printf("ERROR [%s] %v", op, err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func requireCaller(w http.ResponseWriter, r *http.Request) (domain.Caller, bool) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return domain.Caller{}, false
	}
	return caller, true
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type URLResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type IdeaResponse struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title"`
	Purpose             string        `json:"purpose"`
	Description         string        `json:"description"`
	IsPaid              bool          `json:"isPaid"`
	InProgress          bool          `json:"inProgress"`
	IsPrivate           bool          `json:"isPrivate"`
	Date                time.Time     `json:"date"`
	Domains             []TagResponse `json:"domains"`
	Techs               []TagResponse `json:"techs"`
	Topics              []TagResponse `json:"topics"`
	SupportingImageURLs []URLResponse `json:"supportingImageUrls"`
	IconURL             *URLResponse  `json:"iconUrl"`
	OwnerEmail          string        `json:"ownerEmail"`
}

func toURLResponse(u *domain.URL) *URLResponse {
	if u == nil {
		return nil
	}
	return &URLResponse{ID: u.ID, URL: u.URL}
}

func toIdeaResponse(idea *domain.Idea) IdeaResponse {
	resp := IdeaResponse{
		ID:                  idea.ID,
		Title:               idea.Title,
		Purpose:             idea.Purpose,
		Description:         idea.Description,
		IsPaid:              idea.IsPaid,
		InProgress:          idea.InProgress,
		IsPrivate:           idea.IsPrivate,
		Date:                idea.Date,
		Domains:             make([]TagResponse, 0, len(idea.Domains)),
		Techs:               make([]TagResponse, 0, len(idea.Techs)),
		Topics:              make([]TagResponse, 0, len(idea.Topics)),
		SupportingImageURLs: make([]URLResponse, 0, len(idea.Images)),
		IconURL:             toURLResponse(idea.IconURL),
		OwnerEmail:          idea.Owner.Email(),
	}
	for _, d := range idea.Domains {
		resp.Domains = append(resp.Domains, TagResponse{ID: d.ID, Name: d.Name})
	}
	for _, t := range idea.Techs {
		resp.Techs = append(resp.Techs, TagResponse{ID: t.ID, Name: t.Name})
	}
	for _, t := range idea.Topics {
		resp.Topics = append(resp.Topics, TagResponse{ID: t.ID, Name: t.Name})
	}
	for _, u := range idea.SupportingImageURLs() {
		resp.SupportingImageURLs = append(resp.SupportingImageURLs, *toURLResponse(u))
	}
	return resp
}

func toIdeaResponses(ideas []*domain.Idea) []IdeaResponse {
	resp := make([]IdeaResponse, 0, len(ideas))
	for _, idea := range ideas {
		resp = append(resp, toIdeaResponse(idea))
	}
	return resp
}
