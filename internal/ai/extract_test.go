package ai

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"industry": "tech"}`,
			want: "tech",
		},
		{
			name: "fenced block",
			in:   "Here you go:\n```json\n{\"industry\": \"tech\"}\n```\nHope that helps!",
			want: "tech",
		},
		{
			name: "fence without language tag",
			in:   "```\n{\"industry\": \"tech\"}\n```",
			want: "tech",
		},
		{
			name: "object buried in prose",
			in:   `Sure! Based on the postings, {"industry": "tech"} is my analysis.`,
			want: "tech",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, ok := extractJSONObject(tc.in)
			if !ok {
				t.Fatalf("extractJSONObject(%q): no JSON found", tc.in)
			}
			var payload struct {
				Industry string `json:"industry"`
			}
			if err := json.Unmarshal(raw, &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if payload.Industry != tc.want {
				t.Errorf("industry = %q, want %q", payload.Industry, tc.want)
			}
		})
	}
}

func TestExtractJSONObjectNested(t *testing.T) {
	in := `{"industry": "tech", "extra": {"size": "large"}}`
	raw, ok := extractJSONObject(in)
	if !ok {
		t.Fatal("nested object not extracted")
	}
	if string(raw) != in {
		t.Errorf("raw = %s, want %s", raw, in)
	}
}

func TestExtractJSONArray(t *testing.T) {
	raw, ok := extractJSONArray("The list:\n[\"a\", \"b\"]\nDone.")
	if !ok {
		t.Fatal("array not extracted")
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(items) != 2 || items[0] != "a" {
		t.Errorf("items = %v", items)
	}
}

func TestExtractJSONNothingFound(t *testing.T) {
	if _, ok := extractJSONObject("no json here at all"); ok {
		t.Error("unexpected object extraction")
	}
	if _, ok := extractJSONArray("still nothing"); ok {
		t.Error("unexpected array extraction")
	}
}

func TestParseRecommendationsJSONArray(t *testing.T) {
	response := `["Learn Go", "Practice system design", "Network more", "Polish resume", "Apply early", "A sixth one"]`
	got := parseRecommendations(response)
	if len(got) != 5 {
		t.Fatalf("got %d recommendations, want 5", len(got))
	}
	if got[0] != "Learn Go" {
		t.Errorf("first = %q", got[0])
	}
}

func TestParseRecommendationsLineFallback(t *testing.T) {
	response := "1. Learn Go\n2. \"Practice interviews\"\n\n3. Network more"
	got := parseRecommendations(response)
	want := []string{"Learn Go", "Practice interviews", "Network more"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
