package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"job-research/internal/models"
	"job-research/internal/observability"
	"job-research/internal/store"
)

const (
	serviceVersion = "1.0.0"

	// researchTimeout bounds one background research run, covering both
	// upstream API round-trips.
	researchTimeout = 5 * time.Minute
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Job Research Agent API",
		"version": serviceVersion,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func (s *Server) handleStartResearch(w http.ResponseWriter, r *http.Request) {
	var req models.ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := s.store.Create(req)
	go s.runResearch(id, req)

	respondJSON(w, http.StatusAccepted, map[string]string{
		"research_id": id,
		"status":      string(store.StatusStarted),
		"message":     "Job research task started successfully",
	})
}

// runResearch drives one research task in the background. The agent itself
// degrades on step failures, so only a panic can fail the task.
func (s *Server) runResearch(id string, req models.ResearchRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), researchTimeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("research task panicked", "research_id", id, "panic", rec)
			s.store.Fail(id, fmt.Errorf("research task panicked: %v", rec))
		}
	}()

	s.store.SetRunning(id)

	results, skipped := s.agent.Research(ctx, req, func(step string) {
		s.store.SetStep(id, step)
	})

	s.store.Complete(id, results, skipped)
	s.log.Info("research task completed", "research_id", id, "postings", len(results.JobPostings))
}

func (s *Server) handleResearchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, ok := s.store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Research task not found")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleResearchResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, ok := s.store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Research task not found")
		return
	}
	if task.Status != store.StatusCompleted {
		respondError(w, http.StatusBadRequest, "Research task not completed yet")
		return
	}
	respondJSON(w, http.StatusOK, task.Results)
}

func (s *Server) handleListResearch(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"tasks": s.store.List(),
	})
}
