package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// experiencePatterns match explicit numeric experience mentions in
// descriptions. Checked in order; the first capture wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*\+\s*years?\s*(?:of\s+)?experience`),
	regexp.MustCompile(`(\d+)\s*(?:to|-)\s*\d+\s*years?\s*(?:of\s+)?experience`),
	regexp.MustCompile(`minimum\s+(?:of\s+)?(\d+)\s*years?`),
	regexp.MustCompile(`at\s+least\s+(\d+)\s*years?`),
	regexp.MustCompile(`(\d+)\s*years?\s+(?:minimum|or\s+more|in|with|relevant|professional|working)`),
	regexp.MustCompile(`(\d+)\s*years?\s*(?:of\s+)?experience`),
}

type levelKeyword struct {
	keyword string
	years   int
}

// levelKeywords maps seniority wording to representative years. Order
// matters: it is the tie-break when several keywords match, so this is a
// slice rather than a map.
var levelKeywords = []levelKeyword{
	{"junior", 1},
	{"entry-level", 0},
	{"entry level", 0},
	{"entry", 0},
	{"trainee", 0},
	{"intern", 0},
	{"graduate", 0},
	{"fresher", 0},
	{"associate", 1},
	{"beginner", 0},
	{"mid-level", 3},
	{"mid level", 3},
	{"mid", 3},
	{"intermediate", 3},
	{"experienced", 3},
	{"specialist", 4},
	{"senior", 6},
	{"sr", 6},
	{"lead", 7},
	{"principal", 8},
	{"staff", 8},
	{"architect", 8},
	{"expert", 7},
	{"advanced", 6},
	{"director", 10},
	{"head", 10},
	{"manager", 8},
	{"chief", 12},
	{"vice president", 12},
	{"vp", 12},
	{"executive", 10},
}

// inferExperienceYears derives the required years of experience for a
// posting. Explicit numbers in the description win over seniority wording in
// the title, which wins over seniority wording in the description. Postings
// giving no signal at all default to 0.
func inferExperienceYears(title, description string) int {
	if years, ok := explicitYears(description); ok {
		return years
	}
	if years, ok := levelYears(title); ok {
		return years
	}
	if years, ok := levelYears(description); ok {
		return years
	}
	return 0
}

func explicitYears(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, re := range experiencePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil || years < 0 {
			continue
		}
		return years, true
	}
	return 0, false
}

func levelYears(text string) (int, bool) {
	lower := strings.ToLower(text)
	for _, lk := range levelKeywords {
		if strings.Contains(lower, lk.keyword) {
			return lk.years, true
		}
	}
	return 0, false
}
