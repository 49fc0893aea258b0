package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"job-research/internal/agent"
	"job-research/internal/logging"
	"job-research/internal/store"
)

type Server struct {
	router *chi.Mux
	store  *store.Memory
	agent  *agent.Agent
	log    *logging.Logger
}

func NewServer(tasks *store.Memory, researcher *agent.Agent, frontendURL string, log *logging.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		store:  tasks,
		agent:  researcher,
		log:    log,
	}

	s.setupRoutes(frontendURL)
	return s
}

func (s *Server) setupRoutes(frontendURL string) {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	origins := []string{"http://localhost:3000"}
	if frontendURL != "" && frontendURL != origins[0] {
		origins = append(origins, frontendURL)
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/stats", s.handleStats)

	s.router.Route("/api/research", func(r chi.Router) {
		r.Post("/start", s.handleStartResearch)
		r.Get("/list", s.handleListResearch)
		r.Get("/{id}/status", s.handleResearchStatus)
		r.Get("/{id}/results", s.handleResearchResults)
	})
}

func (s *Server) Router() http.Handler {
	return s.router
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
