package search

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"job-research/internal/logging"
	"job-research/internal/models"
	"job-research/internal/pipeline"
)

type fakeSearcher struct {
	params  url.Values
	payload map[string]any
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, params url.Values) (map[string]any, error) {
	f.params = params
	return f.payload, f.err
}

func newTestService(fake *fakeSearcher) *Service {
	log := logging.NewNop()
	return NewService(fake, pipeline.New(log), log)
}

func intPtr(v int) *int { return &v }

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		req  models.ResearchRequest
		want string
	}{
		{
			name: "title only",
			req:  models.ResearchRequest{JobTitle: "Go Developer"},
			want: "Go Developer",
		},
		{
			name: "skills capped at three",
			req: models.ResearchRequest{
				JobTitle: "Go Developer",
				Skills:   []string{"go", "sql", "docker", "kafka"},
			},
			want: "Go Developer go sql docker",
		},
		{
			name: "salary range",
			req: models.ResearchRequest{
				JobTitle:  "Go Developer",
				SalaryMin: intPtr(10),
				SalaryMax: intPtr(20),
			},
			want: "Go Developer 10 LPA to 20 LPA",
		},
		{
			name: "salary min only",
			req:  models.ResearchRequest{JobTitle: "Go Developer", SalaryMin: intPtr(10)},
			want: "Go Developer above 10 LPA",
		},
		{
			name: "salary max only",
			req:  models.ResearchRequest{JobTitle: "Go Developer", SalaryMax: intPtr(20)},
			want: "Go Developer below 20 LPA",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildSearchQuery(tc.req); got != tc.want {
				t.Errorf("buildSearchQuery = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResultCap(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 50},
		{-1, 50},
		{30, 30},
		{100, 100},
		{500, 100},
	}
	for _, tc := range tests {
		if got := resultCap(tc.in); got != tc.want {
			t.Errorf("resultCap(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSearchJobsParams(t *testing.T) {
	fake := &fakeSearcher{payload: map[string]any{}}
	svc := newTestService(fake)

	req := models.ResearchRequest{
		JobTitle:        "Go Developer",
		Location:        "Berlin",
		JobType:         models.JobTypeRemote,
		ExperienceLevel: models.ExperienceMid,
		MaxResults:      200,
	}
	svc.SearchJobs(context.Background(), req)

	if got := fake.params.Get("q"); got != "Go Developer" {
		t.Errorf("q = %q", got)
	}
	if got := fake.params.Get("num"); got != "100" {
		t.Errorf("num = %q, want upstream cap", got)
	}
	if got := fake.params.Get("date_posted"); got != "month" {
		t.Errorf("date_posted = %q", got)
	}
	if got := fake.params.Get("location"); got != "Berlin" {
		t.Errorf("location = %q", got)
	}
	if got := fake.params.Get("job_type"); got != "remote" {
		t.Errorf("job_type = %q", got)
	}
	if got := fake.params.Get("experience_level"); got != "mid_level" {
		t.Errorf("experience_level = %q", got)
	}
}

func TestSearchJobsUpstreamFailure(t *testing.T) {
	fake := &fakeSearcher{err: errors.New("boom")}
	svc := newTestService(fake)

	postings, skipped := svc.SearchJobs(context.Background(), models.ResearchRequest{JobTitle: "x"})
	if len(postings) != 0 || skipped != nil {
		t.Errorf("got %v / %v, want empty results on upstream failure", postings, skipped)
	}
}

func TestSearchJobsPipelineIntegration(t *testing.T) {
	fake := &fakeSearcher{payload: map[string]any{
		"jobs_results": []any{
			map[string]any{"title": "Go Engineer", "company_name": "Acme", "posted_at": "2 days ago"},
			"malformed entry",
		},
	}}
	svc := newTestService(fake)

	postings, skipped := svc.SearchJobs(context.Background(), models.ResearchRequest{JobTitle: "go"})
	if len(postings) != 1 || postings[0].Title != "Go Engineer" {
		t.Errorf("postings = %+v", postings)
	}
	if len(skipped) != 1 || skipped[0].Index != 1 {
		t.Errorf("skipped = %+v", skipped)
	}
}
