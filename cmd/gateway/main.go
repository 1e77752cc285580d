package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/boardprep/boardprep-admin/internal/api/http"
	"github.com/boardprep/boardprep-admin/internal/audit"
	auth "github.com/boardprep/boardprep-admin/internal/auth/middleware"
	"github.com/boardprep/boardprep-admin/internal/boardq"
	"github.com/boardprep/boardprep-admin/internal/config"
	"github.com/boardprep/boardprep-admin/internal/db"
	"github.com/boardprep/boardprep-admin/internal/rbac"
	"github.com/boardprep/boardprep-admin/internal/search"
	"github.com/boardprep/boardprep-admin/internal/upstream"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB (audit log only) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	auditRepo := audit.NewEventRepo(dbh)

	// --- Upstream content API ---
	var tokens upstream.TokenProvider
	if cfg.UpstreamTokenURL != "" {
		tokens = upstream.NewClientCredentials(cfg.UpstreamTokenURL, cfg.UpstreamClientID, cfg.UpstreamClientSecret)
	} else {
		tokens = upstream.StaticToken(cfg.UpstreamToken)
	}
	client := upstream.New(upstream.Config{
		BaseURL: cfg.UpstreamBaseURL,
		Tokens:  tokens,
		Timeout: cfg.UpstreamTimeout,
	})

	svc := boardq.NewService(client, auditRepo)
	searcher := search.NewSearcher(svc)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Route("/api/admin", func(ar chi.Router) {
			ar.With(rbac.Require("groups:view")).
				Get("/groups", api.ListGroupsHandler(svc))
			ar.With(rbac.Require("groups:view")).
				Get("/groups/view", api.ViewGroupHandler(svc))
			ar.With(rbac.Require("groups:edit")).
				Put("/groups", api.UpdateGroupHandler(svc))

			ar.With(rbac.Require("bulk:create")).
				Post("/board-questions/bulk", api.BulkAddHandler(svc))
			ar.With(rbac.Require("mapping:edit")).
				Put("/board-questions/{id}", api.UpdateMappingHandler(svc))
			ar.With(rbac.Require("mapping:delete")).
				Delete("/board-questions/{id}", api.DeleteMappingHandler(svc))

			ar.With(rbac.Require("catalog:view")).
				Get("/catalog/questions", api.SearchQuestionsHandler(searcher))

			ar.With(rbac.Require("lookups:view")).
				Get("/lookups", api.LookupsHandler(svc))
			ar.With(rbac.Require("lookups:view")).
				Get("/lookups/chapters", api.ChaptersHandler(svc))
			ar.With(rbac.Require("lookups:view")).
				Get("/lookups/topics", api.TopicsHandler(svc))

			ar.With(rbac.Require("audit:view")).
				Get("/audit", api.AuditListHandler(auditRepo))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("boardprep-admin gateway listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
