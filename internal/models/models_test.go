package models

import (
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ResearchRequest
		wantErr string
	}{
		{
			name:    "missing job title",
			req:     ResearchRequest{},
			wantErr: "job_title is required",
		},
		{
			name:    "blank job title",
			req:     ResearchRequest{JobTitle: "   "},
			wantErr: "job_title is required",
		},
		{
			name: "valid minimal",
			req:  ResearchRequest{JobTitle: "Go Developer"},
		},
		{
			name: "valid full",
			req: ResearchRequest{
				JobTitle:        "Go Developer",
				Location:        "Berlin",
				JobType:         JobTypeRemote,
				ExperienceLevel: ExperienceSenior,
				Skills:          []string{"go"},
				SalaryMin:       intPtr(10),
				SalaryMax:       intPtr(20),
				MaxResults:      25,
			},
		},
		{
			name:    "bad job type",
			req:     ResearchRequest{JobTitle: "x", JobType: "freelance"},
			wantErr: "invalid job_type",
		},
		{
			name:    "bad experience level",
			req:     ResearchRequest{JobTitle: "x", ExperienceLevel: "principal"},
			wantErr: "invalid experience_level",
		},
		{
			name:    "negative max results",
			req:     ResearchRequest{JobTitle: "x", MaxResults: -5},
			wantErr: "max_results",
		},
		{
			name:    "inverted salary range",
			req:     ResearchRequest{JobTitle: "x", SalaryMin: intPtr(30), SalaryMax: intPtr(10)},
			wantErr: "salary_min 30 exceeds salary_max 10",
		},
		{
			name: "salary min only",
			req:  ResearchRequest{JobTitle: "x", SalaryMin: intPtr(30)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateFillsDefaultMaxResults(t *testing.T) {
	req := ResearchRequest{JobTitle: "x"}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
	if req.MaxResults != DefaultMaxResults {
		t.Errorf("MaxResults = %d, want %d", req.MaxResults, DefaultMaxResults)
	}

	req = ResearchRequest{JobTitle: "x", MaxResults: 10}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
	if req.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want the caller's value kept", req.MaxResults)
	}
}

func TestExperienceLevelYears(t *testing.T) {
	tests := []struct {
		level ExperienceLevel
		want  int
	}{
		{ExperienceEntry, 1},
		{ExperienceMid, 4},
		{ExperienceSenior, 8},
		{ExperienceExecutive, 12},
		{"", 0},
		{"principal", 0},
	}
	for _, tc := range tests {
		if got := tc.level.Years(); got != tc.want {
			t.Errorf("Years(%q) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestJobTypeValid(t *testing.T) {
	for _, jt := range []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote, JobTypeHybrid} {
		if !jt.Valid() {
			t.Errorf("Valid(%q) = false", jt)
		}
	}
	for _, jt := range []JobType{"", "freelance", "Full_Time"} {
		if jt.Valid() {
			t.Errorf("Valid(%q) = true", jt)
		}
	}
}
