package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"job-research/internal/models"
	"job-research/internal/urlutil"
)

// Placeholders keep title/company/location non-empty no matter how little
// the upstream record carries.
const (
	placeholderTitle       = "Unknown Title"
	placeholderCompany     = "Unknown Company"
	placeholderLocation    = "Unknown Location"
	placeholderDescription = "No description available"
)

var (
	salaryRe = regexp.MustCompile(`\$[\d,]+(?:\s*-\s*\$[\d,]+)?`)
	urlRe    = regexp.MustCompile(`https?://\S+`)
)

// applyURLFields are the direct link fields probed first, in priority order.
var applyURLFields = []string{"apply_link", "job_link", "redirect_link", "link", "url"}

// MapRecord converts one raw search hit into a JobPosting. It never panics
// on malformed data: a record that is not an object at all is rejected with
// an error, and every missing field inside an object degrades to a default.
func MapRecord(raw any) (models.JobPosting, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return models.JobPosting{}, fmt.Errorf("record is %T, expected an object", raw)
	}
	record := RawRecord(obj)

	description := normalizeDescription(record.stringOr("description", placeholderDescription))
	title := record.stringOr("title", placeholderTitle)

	posting := models.JobPosting{
		Title:           title,
		Company:         record.stringOr("company_name", placeholderCompany),
		Location:        record.stringOr("location", placeholderLocation),
		Salary:          extractSalary(record, description),
		Description:     description,
		Requirements:    scanKeywords(description, requirementKeywords),
		Benefits:        scanKeywords(description, benefitKeywords),
		JobType:         stringField(record["job_type"]),
		ExperienceLevel: stringField(record["experience_level"]),
		RequiredYears:   inferExperienceYears(title, description),
		PostedDate:      stringField(record["posted_at"]),
		ApplyURL:        extractApplyURL(record),
	}

	if rating, ok := floatField(record["company_rating"]); ok {
		posting.CompanyRating = &rating
	}

	return posting, nil
}

// extractApplyURL resolves an apply link through a fixed fallback chain:
// direct link fields, then apply_options, then related_links whose text
// mentions applying, then URL-shaped substrings inside extensions. An empty
// result means no link is available, never an error.
func extractApplyURL(record RawRecord) string {
	if link := record.firstString(applyURLFields...); link != "" {
		return cleanApplyURL(link)
	}

	if link := applyOptionLink(record["apply_options"]); link != "" {
		return cleanApplyURL(link)
	}

	for _, entry := range listField(record["related_links"]) {
		m := mapField(entry)
		if m == nil {
			continue
		}
		text := strings.ToLower(stringField(m["text"]))
		if !strings.Contains(text, "apply") && !strings.Contains(text, "job") {
			continue
		}
		if link := RawRecord(m).firstString("link", "url"); link != "" {
			return cleanApplyURL(link)
		}
	}

	for _, entry := range listField(record["extensions"]) {
		ext, ok := entry.(string)
		if !ok {
			continue
		}
		lower := strings.ToLower(ext)
		if !strings.Contains(lower, "apply") && !strings.Contains(lower, "http") {
			continue
		}
		if link := urlRe.FindString(ext); link != "" {
			return cleanApplyURL(link)
		}
	}

	return ""
}

func applyOptionLink(v any) string {
	if options := listField(v); len(options) > 0 {
		first := options[0]
		if m := mapField(first); m != nil {
			return RawRecord(m).firstString("link", "url")
		}
		if s, ok := first.(string); ok {
			return strings.TrimSpace(s)
		}
		return ""
	}
	if m := mapField(v); m != nil {
		return RawRecord(m).firstString("link", "url")
	}
	return ""
}

func cleanApplyURL(link string) string {
	normalized, _, err := urlutil.Normalize(link)
	if err != nil {
		return link
	}
	return normalized
}

// extractSalary prefers the structured salary field and falls back to a
// $-prefixed amount or range scanned out of the description.
func extractSalary(record RawRecord, description string) string {
	if info := mapField(record["salary_info"]); info != nil {
		if text := stringField(info["text"]); text != "" {
			return text
		}
	}
	return salaryRe.FindString(description)
}
