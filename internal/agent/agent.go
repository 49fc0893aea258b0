package agent

import (
	"context"
	"time"

	"job-research/internal/ai"
	"job-research/internal/logging"
	"job-research/internal/models"
	"job-research/internal/observability"
	"job-research/internal/pipeline"
)

// Workflow step names reported through the progress callback.
const (
	StepSearching       = "searching_jobs"
	StepInsights        = "generating_insights"
	StepRecommendations = "creating_recommendations"
	StepCompleted       = "completed"
)

const maxInsightCompanies = 5

// JobSearcher is the search step's collaborator.
type JobSearcher interface {
	SearchJobs(ctx context.Context, req models.ResearchRequest) ([]models.JobPosting, []pipeline.SkippedRecord)
}

// Agent sequences one research run: search, company insights, then
// recommendations. Every step degrades instead of aborting, so a run always
// produces a response.
type Agent struct {
	search JobSearcher
	ai     ai.Client
	log    *logging.Logger
}

func New(search JobSearcher, aiClient ai.Client, log *logging.Logger) *Agent {
	return &Agent{
		search: search,
		ai:     aiClient,
		log:    log,
	}
}

// Research executes the workflow. The report callback, when non-nil, is
// invoked with each step name as it starts.
func (a *Agent) Research(ctx context.Context, req models.ResearchRequest, report func(step string)) (*models.ResearchResponse, []pipeline.SkippedRecord) {
	step := func(name string) {
		if report != nil {
			report(name)
		}
	}

	step(StepSearching)
	postings, skipped := a.search.SearchJobs(ctx, req)
	a.log.Info("job search step finished", "postings", len(postings), "skipped", len(skipped))

	step(StepInsights)
	insights := a.generateInsights(ctx, postings)

	step(StepRecommendations)
	recommendations := a.generateRecommendations(ctx, postings, req)

	step(StepCompleted)
	return &models.ResearchResponse{
		RequestSummary:  req,
		JobPostings:     postings,
		CompanyInsights: insights,
		Recommendations: recommendations,
		GeneratedAt:     time.Now(),
	}, skipped
}

// generateInsights profiles the first few distinct companies in the batch.
// A failed insight is skipped, not fatal.
func (a *Agent) generateInsights(ctx context.Context, postings []models.JobPosting) []models.CompanyInsight {
	if len(postings) == 0 {
		a.log.Warn("no job postings for insights")
		return []models.CompanyInsight{}
	}

	byCompany := make(map[string][]models.JobPosting)
	var companies []string
	for _, posting := range postings {
		if _, ok := byCompany[posting.Company]; !ok {
			companies = append(companies, posting.Company)
		}
		byCompany[posting.Company] = append(byCompany[posting.Company], posting)
	}
	if len(companies) > maxInsightCompanies {
		companies = companies[:maxInsightCompanies]
	}

	insights := make([]models.CompanyInsight, 0, len(companies))
	for _, company := range companies {
		insight, err := a.ai.GenerateCompanyInsight(ctx, company, byCompany[company])
		if err != nil {
			observability.IncError(observability.ErrorAI, "agent")
			a.log.Warn("company insight failed", "company", company, "error", err)
			continue
		}
		insights = append(insights, insight)
	}

	a.log.Info("generated company insights", "companies", len(insights))
	return insights
}

func (a *Agent) generateRecommendations(ctx context.Context, postings []models.JobPosting, req models.ResearchRequest) []string {
	if len(postings) == 0 {
		a.log.Warn("no job postings for recommendations")
		return []string{"No specific recommendations available due to insufficient data."}
	}

	recommendations, err := a.ai.GenerateRecommendations(ctx, postings, req)
	if err != nil || len(recommendations) == 0 {
		observability.IncError(observability.ErrorAI, "agent")
		a.log.Error("recommendation generation failed", "error", err)
		return []string{"Unable to generate recommendations at this time."}
	}

	a.log.Info("generated recommendations", "count", len(recommendations))
	return recommendations
}
