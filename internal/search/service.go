package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"job-research/internal/logging"
	"job-research/internal/models"
	"job-research/internal/observability"
	"job-research/internal/pipeline"
)

// Searcher produces a raw google_jobs payload for a query.
type Searcher interface {
	Search(ctx context.Context, params url.Values) (map[string]any, error)
}

// Service runs one search against the upstream API and pushes the raw batch
// through the normalization pipeline. Upstream failures degrade to an empty
// result so the surrounding workflow can still finish.
type Service struct {
	client   Searcher
	pipeline *pipeline.Pipeline
	log      *logging.Logger
}

func NewService(client Searcher, p *pipeline.Pipeline, log *logging.Logger) *Service {
	return &Service{
		client:   client,
		pipeline: p,
		log:      log,
	}
}

// SearchJobs fetches postings for the request and returns them normalized
// and filtered, along with diagnostics for any records that were skipped.
func (s *Service) SearchJobs(ctx context.Context, req models.ResearchRequest) ([]models.JobPosting, []pipeline.SkippedRecord) {
	observability.IncSearch()

	params := url.Values{}
	params.Set("q", buildSearchQuery(req))
	params.Set("num", strconv.Itoa(resultCap(req.MaxResults)))
	params.Set("date_posted", "month") // fetch a month, then filter down to the window
	if req.Location != "" {
		params.Set("location", req.Location)
	}
	if req.JobType != "" {
		params.Set("job_type", string(req.JobType))
	}
	if req.ExperienceLevel != "" {
		params.Set("experience_level", string(req.ExperienceLevel))
	}

	s.log.Info("searching jobs", "query", params.Get("q"), "location", req.Location)

	payload, err := s.client.Search(ctx, params)
	if err != nil {
		observability.IncError(observability.ClassifyAPIError(err), "search")
		s.log.Error("job search failed", "error", err)
		return []models.JobPosting{}, nil
	}

	postings, skipped := s.pipeline.Run(payload, req)
	if len(postings) == 0 {
		s.log.Warn("no job postings found for the search criteria")
	}
	return postings, skipped
}

// buildSearchQuery assembles the query text from title, the leading skills,
// and a salary phrase when a range was given.
func buildSearchQuery(req models.ResearchRequest) string {
	parts := []string{req.JobTitle}

	skills := req.Skills
	if len(skills) > 3 {
		skills = skills[:3]
	}
	parts = append(parts, skills...)

	switch {
	case req.SalaryMin != nil && req.SalaryMax != nil:
		parts = append(parts, fmt.Sprintf("%d LPA to %d LPA", *req.SalaryMin, *req.SalaryMax))
	case req.SalaryMin != nil:
		parts = append(parts, fmt.Sprintf("above %d LPA", *req.SalaryMin))
	case req.SalaryMax != nil:
		parts = append(parts, fmt.Sprintf("below %d LPA", *req.SalaryMax))
	}

	return strings.Join(parts, " ")
}

func resultCap(maxResults int) int {
	if maxResults <= 0 {
		maxResults = models.DefaultMaxResults
	}
	if maxResults > models.UpstreamMaxCap {
		return models.UpstreamMaxCap
	}
	return maxResults
}
