package ai

import (
	"context"
	"fmt"
	"time"

	"job-research/internal/logging"
	"job-research/internal/models"
)

// Client generates career advice from a batch of normalized postings.
type Client interface {
	GenerateRecommendations(ctx context.Context, postings []models.JobPosting, req models.ResearchRequest) ([]string, error)
	GenerateCompanyInsight(ctx context.Context, company string, jobs []models.JobPosting) (models.CompanyInsight, error)
}

// NewClient returns an OpenRouter-backed client when an API key is present
// and a mock client otherwise, so the service runs end to end without LLM
// credentials.
func NewClient(apiKey, model string, log *logging.Logger) Client {
	if apiKey == "" {
		log.Warn("OPENROUTER_API_KEY not set, using mock AI client")
		return NewMockClient()
	}
	return NewOpenRouterClient(apiKey, model)
}

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GenerateRecommendations(ctx context.Context, postings []models.JobPosting, req models.ResearchRequest) ([]string, error) {
	// Simulate LLM latency
	time.Sleep(200 * time.Millisecond)
	return []string{
		fmt.Sprintf("Tailor your resume to the %d postings found for %q.", len(postings), req.JobTitle),
		"Highlight the skills that appear most often across the postings.",
		"Apply within the first week of a posting going live.",
	}, nil
}

func (m *MockClient) GenerateCompanyInsight(ctx context.Context, company string, jobs []models.JobPosting) (models.CompanyInsight, error) {
	time.Sleep(200 * time.Millisecond)
	return models.CompanyInsight{
		Name:                company,
		Industry:            "Not specified",
		Size:                "Not specified",
		CultureScore:        3.0,
		WorkLifeBalance:     3.0,
		GrowthOpportunities: 3.0,
		KeyBenefits:         topBenefits(jobs, 5),
	}, nil
}

// topBenefits aggregates benefit keywords across a company's postings,
// deduplicated in first-seen order, capped at limit.
func topBenefits(jobs []models.JobPosting, limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, job := range jobs {
		for _, b := range job.Benefits {
			if _, ok := seen[b]; ok {
				continue
			}
			seen[b] = struct{}{}
			out = append(out, b)
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}
