package pipeline

import (
	"time"

	"job-research/internal/logging"
	"job-research/internal/models"
	"job-research/internal/observability"
)

const (
	// DefaultRecencyDays is the default posting-age window.
	DefaultRecencyDays = 15

	// experienceTolerance lets slightly more senior postings through the
	// experience-fit filter.
	experienceTolerance = 2
)

// SkippedRecord is the diagnostic kept for a raw record the mapper refused.
type SkippedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Pipeline turns a raw search batch into a filtered list of job postings.
// It is stateless between runs and safe for concurrent use.
type Pipeline struct {
	log        *logging.Logger
	windowDays int
	now        func() time.Time
}

func New(log *logging.Logger) *Pipeline {
	return &Pipeline{
		log:        log,
		windowDays: DefaultRecencyDays,
		now:        time.Now,
	}
}

// WithWindow overrides the recency window in days.
func (p *Pipeline) WithWindow(days int) *Pipeline {
	if days > 0 {
		p.windowDays = days
	}
	return p
}

// Run maps every record under jobs_results and applies the recency and
// experience-fit filters, preserving the upstream order throughout. A batch
// with no usable records yields an empty slice, never an error; individual
// malformed records are skipped and reported as diagnostics.
func (p *Pipeline) Run(rawBatch map[string]any, req models.ResearchRequest) ([]models.JobPosting, []SkippedRecord) {
	records := listField(rawBatch["jobs_results"])
	if len(records) == 0 {
		return []models.JobPosting{}, nil
	}

	postings := make([]models.JobPosting, 0, len(records))
	var skipped []SkippedRecord
	for i, raw := range records {
		posting, err := MapRecord(raw)
		if err != nil {
			skipped = append(skipped, SkippedRecord{Index: i, Reason: err.Error()})
			observability.IncError(observability.ErrorMapping, "pipeline")
			p.log.Warn("skipping malformed job record", "index", i, "error", err)
			continue
		}
		observability.IncRecordsMapped()
		postings = append(postings, posting)
	}

	now := p.now()
	recent := p.filterByRecency(postings, now)
	fit := filterByExperience(recent, req.ExperienceLevel)

	p.log.Info("pipeline run complete",
		"records", len(records),
		"mapped", len(postings),
		"skipped", len(skipped),
		"after_recency", len(recent),
		"after_experience", len(fit),
	)

	return fit, skipped
}

// filterByRecency keeps postings whose inferred post date falls within the
// window. Missing or unparseable dates are kept: unknowns are biased toward
// inclusion.
func (p *Pipeline) filterByRecency(postings []models.JobPosting, now time.Time) []models.JobPosting {
	cutoff := now.AddDate(0, 0, -p.windowDays)
	out := make([]models.JobPosting, 0, len(postings))
	for _, posting := range postings {
		if posting.PostedDate == "" {
			out = append(out, posting)
			continue
		}
		posted, ok := parsePostedDate(posting.PostedDate, now)
		if !ok {
			out = append(out, posting)
			continue
		}
		if posted.Before(cutoff) {
			observability.IncRecordsFiltered("recency")
			continue
		}
		out = append(out, posting)
	}
	return out
}

// filterByExperience keeps postings whose required years are compatible with
// the requested level, allowing the fixed tolerance above it. No lower bound
// applies, and an unspecified level passes everything through.
func filterByExperience(postings []models.JobPosting, level models.ExperienceLevel) []models.JobPosting {
	if level == "" {
		return postings
	}
	userYears := level.Years()
	out := make([]models.JobPosting, 0, len(postings))
	for _, posting := range postings {
		if posting.RequiredYears > userYears+experienceTolerance {
			observability.IncRecordsFiltered("experience")
			continue
		}
		out = append(out, posting)
	}
	return out
}
