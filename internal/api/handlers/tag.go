package handlers

import (
	"net/http"

	"github.com/purposeful/purposeful-backend/internal/service"
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

func (h *TagHandler) ListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := h.tagService.ListDomains(r.Context())
	if err != nil {
		handleError(w, "TagHandler.ListDomains", err)
		return
	}
	resp := make([]TagResponse, 0, len(domains))
	for _, d := range domains {
		resp = append(resp, TagResponse{ID: d.ID, Name: d.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TagHandler) ListTechs(w http.ResponseWriter, r *http.Request) {
	techs, err := h.tagService.ListTechs(r.Context())
	if err != nil {
		handleError(w, "TagHandler.ListTechs", err)
		return
	}
	resp := make([]TagResponse, 0, len(techs))
	for _, t := range techs {
		resp = append(resp, TagResponse{ID: t.ID, Name: t.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TagHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.tagService.ListTopics(r.Context())
	if err != nil {
		handleError(w, "TagHandler.ListTopics", err)
		return
	}
	resp := make([]TagResponse, 0, len(topics))
	for _, t := range topics {
		resp = append(resp, TagResponse{ID: t.ID, Name: t.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *TagHandler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.tagService.CreateDomain(r.Context(), req.Name)
	if err != nil {
		handleError(w, "TagHandler.CreateDomain", err)
		return
	}
	writeJSON(w, http.StatusOK, TagResponse{ID: d.ID, Name: d.Name})
}

func (h *TagHandler) CreateTech(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.tagService.CreateTech(r.Context(), req.Name)
	if err != nil {
		handleError(w, "TagHandler.CreateTech", err)
		return
	}
	writeJSON(w, http.StatusOK, TagResponse{ID: t.ID, Name: t.Name})
}

func (h *TagHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.tagService.CreateTopic(r.Context(), req.Name)
	if err != nil {
		handleError(w, "TagHandler.CreateTopic", err)
		return
	}
	writeJSON(w, http.StatusOK, TagResponse{ID: t.ID, Name: t.Name})
}

