package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/purposeful/purposeful-backend/internal/api/handlers"
	"github.com/purposeful/purposeful-backend/internal/api/middleware"
	"github.com/purposeful/purposeful-backend/internal/config"
	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/purposeful/purposeful-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
)

// NewRouter wires every route. redisClient may be nil, which disables rate
// limiting.
func NewRouter(services *service.Services, hub *websocket.Hub, redisClient *redis.Client, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.StripSlashes)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	ideaHandler := handlers.NewIdeaHandler(services.Idea, services.Reaction)
	reactionHandler := handlers.NewReactionHandler(services.Reaction)
	collabHandler := handlers.NewCollaborationHandler(services.Collaboration)
	tagHandler := handlers.NewTagHandler(services.Tag)
	urlHandler := handlers.NewURLHandler(services.URL)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth, cfg.CORSAllowedOrigins)

	rateLimit := middleware.RateLimit(redisClient, cfg.RateLimitPerMinute, time.Minute)
	anyAuthority := middleware.RequireAuthority(domain.AuthorityUser, domain.AuthorityModerator, domain.AuthorityOwner)
	userOnly := middleware.RequireAuthority(domain.AuthorityUser)
	elevated := middleware.RequireAuthority(domain.AuthorityModerator, domain.AuthorityOwner)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Get("/domain", tagHandler.ListDomains)
			r.Get("/topic", tagHandler.ListTopics)
			r.Get("/tech", tagHandler.ListTechs)
		})

		// WebSocket endpoint, authenticated by query token
		r.Get("/ws", wsHandler.Handle)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Use(rateLimit)

			r.With(anyAuthority).Get("/me", authHandler.Me)

			r.Route("/idea", func(r chi.Router) {
				r.With(anyAuthority).Post("/", ideaHandler.Filter)
				r.With(userOnly).Post("/create", ideaHandler.Create)
				r.With(anyAuthority).Put("/edit", ideaHandler.Modify)
				r.With(anyAuthority).Get("/user", ideaHandler.MyIdeas)
				r.With(userOnly).Get("/collaborations", ideaHandler.Collaborations)
				r.With(anyAuthority).Get("/{id}", ideaHandler.Get)
				r.With(anyAuthority).Delete("/{id}", ideaHandler.Delete)
				r.With(anyAuthority).Get("/{id}/reactions", ideaHandler.Reactions)
			})

			r.With(userOnly).Post("/reaction", reactionHandler.Toggle)

			r.Route("/collaboration", func(r chi.Router) {
				r.Use(userOnly)
				r.Post("/request", collabHandler.SendRequest)
				r.Get("/request/{ideaId}", collabHandler.ListRequests)
				r.Post("/response", collabHandler.Respond)
				r.Get("/response/{ideaId}", collabHandler.GetResponse)
			})

			r.With(elevated).Post("/domain", tagHandler.CreateDomain)
			r.With(elevated).Post("/topic", tagHandler.CreateTopic)
			r.With(elevated).Post("/tech", tagHandler.CreateTech)

			r.Route("/url", func(r chi.Router) {
				r.Use(anyAuthority)
				r.Post("/", urlHandler.Create)
				r.Post("/upload", urlHandler.Upload)
				r.Get("/{id}", urlHandler.Get)
			})
		})
	})

	return r
}
