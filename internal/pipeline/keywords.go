package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Keyword vocabularies are data, not control flow: adding a term never
// touches the scanning code.

// requirementKeywords are degree/technology/process terms scanned out of
// job descriptions.
var requirementKeywords = []string{
	"bachelor", "master", "degree", "experience", "years",
	"python", "java", "javascript", "react", "sql", "aws",
	"docker", "kubernetes", "git", "agile", "scrum",
}

// benefitKeywords are compensation/perk terms scanned out of job
// descriptions.
var benefitKeywords = []string{
	"health insurance", "dental", "vision", "401k", "retirement",
	"pto", "vacation", "remote", "flexible", "bonus",
	"stock options", "equity", "gym", "wellness",
}

var titleCaser = cases.Title(language.Und)

// scanKeywords returns every vocabulary term appearing in text as a
// case-insensitive substring, title-cased, deduplicated, and sorted so the
// output order is deterministic for a given input.
func scanKeywords(text string, vocabulary []string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var out []string
	for _, kw := range vocabulary {
		if !strings.Contains(lower, kw) {
			continue
		}
		label := titleCaser.String(kw)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
