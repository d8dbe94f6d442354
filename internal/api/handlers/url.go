package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/purposeful/purposeful-backend/internal/service"
)

const maxUploadSize = 10 << 20

type URLHandler struct {
	urlService *service.URLService
}

func NewURLHandler(urlService *service.URLService) *URLHandler {
	return &URLHandler{urlService: urlService}
}

type CreateURLRequest struct {
	URL string `json:"url"`
}

func (h *URLHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateURLRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.urlService.CreateURL(r.Context(), req.URL)
	if err != nil {
		handleError(w, "URLHandler.Create", err)
		return
	}
	writeJSON(w, http.StatusOK, toURLResponse(u))
}

func (h *URLHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.urlService.GetURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, "URLHandler.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, toURLResponse(u))
}

// Upload takes a multipart "file" field and stores it as an image
func (h *URLHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "A file field is required")
		return
	}
	defer file.Close()

	u, err := h.urlService.UploadImage(r.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		handleError(w, "URLHandler.Upload", err)
		return
	}
	writeJSON(w, http.StatusOK, toURLResponse(u))
}
