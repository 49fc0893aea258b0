package models

import (
	"fmt"
	"strings"
	"time"
)

// JobType mirrors the upstream search API's job type filter values.
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
	JobTypeHybrid     JobType = "hybrid"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote, JobTypeHybrid:
		return true
	}
	return false
}

// ExperienceLevel is the caller-facing seniority filter.
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry_level"
	ExperienceMid       ExperienceLevel = "mid_level"
	ExperienceSenior    ExperienceLevel = "senior_level"
	ExperienceExecutive ExperienceLevel = "executive"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}

// Years maps the level to a representative years-of-experience value used by
// the experience-fit filter.
func (l ExperienceLevel) Years() int {
	switch l {
	case ExperienceEntry:
		return 1
	case ExperienceMid:
		return 4
	case ExperienceSenior:
		return 8
	case ExperienceExecutive:
		return 12
	}
	return 0
}

const (
	DefaultMaxResults = 50
	UpstreamMaxCap    = 100
)

// ResearchRequest holds the search criteria for one research run.
type ResearchRequest struct {
	JobTitle        string          `json:"job_title"`
	Location        string          `json:"location,omitempty"`
	JobType         JobType         `json:"job_type,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	Skills          []string        `json:"skills,omitempty"`
	SalaryMin       *int            `json:"salary_min,omitempty"`
	SalaryMax       *int            `json:"salary_max,omitempty"`
	MaxResults      int             `json:"max_results,omitempty"`
}

// Validate checks the request and fills defaults.
func (r *ResearchRequest) Validate() error {
	if strings.TrimSpace(r.JobTitle) == "" {
		return fmt.Errorf("job_title is required")
	}
	if r.JobType != "" && !r.JobType.Valid() {
		return fmt.Errorf("invalid job_type: %q", r.JobType)
	}
	if r.ExperienceLevel != "" && !r.ExperienceLevel.Valid() {
		return fmt.Errorf("invalid experience_level: %q", r.ExperienceLevel)
	}
	if r.MaxResults < 0 {
		return fmt.Errorf("max_results must be positive")
	}
	if r.MaxResults == 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.SalaryMin != nil && r.SalaryMax != nil && *r.SalaryMin > *r.SalaryMax {
		return fmt.Errorf("salary_min %d exceeds salary_max %d", *r.SalaryMin, *r.SalaryMax)
	}
	return nil
}

// JobPosting is the normalized output entity of the pipeline.
// Title, Company and Location are never empty: missing upstream values are
// replaced with placeholder strings at mapping time.
type JobPosting struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Salary           string   `json:"salary,omitempty"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Benefits         []string `json:"benefits"`
	JobType          string   `json:"job_type,omitempty"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	RequiredYears    int      `json:"required_experience_years"`
	PostedDate       string   `json:"posted_date,omitempty"`
	ApplyURL         string   `json:"apply_url,omitempty"`
	CompanyRating    *float64 `json:"company_rating,omitempty"`
}

// CompanyInsight summarizes one company across its postings in a batch.
type CompanyInsight struct {
	Name                string   `json:"name"`
	Industry            string   `json:"industry"`
	Size                string   `json:"size,omitempty"`
	Rating              *float64 `json:"rating,omitempty"`
	CultureScore        float64  `json:"culture_score"`
	WorkLifeBalance     float64  `json:"work_life_balance"`
	GrowthOpportunities float64  `json:"growth_opportunities"`
	KeyBenefits         []string `json:"key_benefits"`
}

// ResearchResponse is the final payload of a completed research run.
type ResearchResponse struct {
	RequestSummary  ResearchRequest  `json:"request_summary"`
	JobPostings     []JobPosting     `json:"job_postings"`
	CompanyInsights []CompanyInsight `json:"company_insights"`
	Recommendations []string         `json:"ai_recommendations"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
