package handlers

import (
	"net/http"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type UserResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstname"`
	LastName    string   `json:"lastname"`
	Authorities []string `json:"authorities"`
}

func toUserResponse(user *domain.AppUser) UserResponse {
	authorities := user.AuthorityList()
	names := make([]string, len(authorities))
	for i, a := range authorities {
		names[i] = a.String()
	}
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Authorities: names,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleError(w, "AuthHandler.Register", err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
	})
}

// Login accepts HTTP Basic credentials or a JSON body
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if email, password, ok := r.BasicAuth(); ok {
		req = LoginRequest{Email: email, Password: password}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, "AuthHandler.Login", err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), caller.AppUserID)
	if err != nil {
		writeError(w, http.StatusNotFound, domain.MsgAccountNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
