package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"job-research/internal/models"
	"job-research/internal/observability"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultModel      = "deepseek/deepseek-r1:free"
)

// OpenRouterClient implements Client against the OpenRouter chat-completions
// API.
type OpenRouterClient struct {
	apiKey     string
	model      string
	baseURL    string
	referer    string
	httpClient *http.Client
}

func NewOpenRouterClient(apiKey, model string) *OpenRouterClient {
	if model == "" {
		model = defaultModel
	}
	return &OpenRouterClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: openRouterBaseURL,
		referer: "http://localhost:3000",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL overrides the endpoint. Used in tests.
func (c *OpenRouterClient) WithBaseURL(base string) *OpenRouterClient {
	c.baseURL = strings.TrimSuffix(base, "/")
	return c
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func (c *OpenRouterClient) callAPI(ctx context.Context, prompt string) (string, error) {
	observability.IncAICall("openrouter")

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   1000,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", "Job Research Agent")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("OpenRouter API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("OpenRouter API error: %s (code: %d)", chatResp.Error.Message, chatResp.Error.Code)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenRouter")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GenerateRecommendations asks the model for five actionable recommendations
// grounded in the postings found for the request.
func (c *OpenRouterClient) GenerateRecommendations(ctx context.Context, postings []models.JobPosting, req models.ResearchRequest) ([]string, error) {
	prompt := buildRecommendationsPrompt(postings, req)

	response, err := c.callAPI(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseRecommendations(response), nil
}

// GenerateCompanyInsight asks the model to profile one company from its
// postings. Unparseable replies fall back to neutral scores.
func (c *OpenRouterClient) GenerateCompanyInsight(ctx context.Context, company string, jobs []models.JobPosting) (models.CompanyInsight, error) {
	prompt := buildCompanyInsightPrompt(company, jobs)

	response, err := c.callAPI(ctx, prompt)
	if err != nil {
		return models.CompanyInsight{}, err
	}

	return parseCompanyInsight(response, company, jobs), nil
}

func buildRecommendationsPrompt(postings []models.JobPosting, req models.ResearchRequest) string {
	seen := make(map[string]struct{})
	var topSkills []string
	for _, job := range postings {
		for _, skill := range job.Requirements {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			topSkills = append(topSkills, skill)
			if len(topSkills) >= 10 {
				break
			}
		}
		if len(topSkills) >= 10 {
			break
		}
	}

	location := req.Location
	if location == "" {
		location = "Various"
	}

	return fmt.Sprintf(`Based on the job market analysis for %s, provide 5 actionable recommendations for job seekers.

Key findings:
- %d jobs found
- Most required skills: %s
- Location: %s

Provide recommendations as a JSON array ONLY. Do not include any additional text:
["recommendation1", "recommendation2", "recommendation3", "recommendation4", "recommendation5"]

Focus on skills to develop, application strategies, and market positioning.
Return only the JSON array, no markdown formatting or extra text.`,
		req.JobTitle, len(postings), strings.Join(topSkills, ", "), location)
}

func buildCompanyInsightPrompt(company string, jobs []models.JobPosting) string {
	titles := make([]string, 0, len(jobs))
	for _, job := range jobs {
		titles = append(titles, job.Title)
	}

	return fmt.Sprintf(`Analyze %s based on their job postings:

Number of open positions: %d
Job titles: %s
Benefits offered: %s

Please provide company analysis in JSON format ONLY. Do not include any additional text:
{
  "industry": "estimated industry",
  "size": "startup/small/medium/large/enterprise",
  "culture_score": 0.0-5.0,
  "work_life_balance": 0.0-5.0,
  "growth_opportunities": 0.0-5.0,
  "key_benefits": ["benefit1", "benefit2", "benefit3"]
}

Base your analysis on the job postings content and common knowledge about the company.
Return only the JSON object, no markdown formatting or extra text.`,
		company, len(jobs), strings.Join(titles, ", "), strings.Join(topBenefits(jobs, 10), ", "))
}

// parseRecommendations expects a JSON array of strings but tolerates chatty
// replies by splitting lines and stripping numbering.
func parseRecommendations(response string) []string {
	if raw, ok := extractJSONArray(response); ok {
		var items []string
		if err := json.Unmarshal(raw, &items); err == nil {
			if len(items) > 5 {
				items = items[:5]
			}
			return items
		}
	}

	var out []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "]") {
			continue
		}
		line = strings.Trim(line, `1234567890. "`)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) >= 5 {
			break
		}
	}
	return out
}

type insightPayload struct {
	Industry            string   `json:"industry"`
	Size                string   `json:"size"`
	CultureScore        float64  `json:"culture_score"`
	WorkLifeBalance     float64  `json:"work_life_balance"`
	GrowthOpportunities float64  `json:"growth_opportunities"`
	KeyBenefits         []string `json:"key_benefits"`
}

func parseCompanyInsight(response, company string, jobs []models.JobPosting) models.CompanyInsight {
	fallback := models.CompanyInsight{
		Name:                company,
		Industry:            "Unknown",
		Size:                "Unknown",
		CultureScore:        3.0,
		WorkLifeBalance:     3.0,
		GrowthOpportunities: 3.0,
		KeyBenefits:         topBenefits(jobs, 5),
	}

	raw, ok := extractJSONObject(response)
	if !ok {
		return fallback
	}

	var payload insightPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fallback
	}

	insight := fallback
	if payload.Industry != "" {
		insight.Industry = payload.Industry
	}
	if payload.Size != "" {
		insight.Size = payload.Size
	}
	if payload.CultureScore > 0 {
		insight.CultureScore = payload.CultureScore
	}
	if payload.WorkLifeBalance > 0 {
		insight.WorkLifeBalance = payload.WorkLifeBalance
	}
	if payload.GrowthOpportunities > 0 {
		insight.GrowthOpportunities = payload.GrowthOpportunities
	}
	if len(payload.KeyBenefits) > 0 {
		insight.KeyBenefits = payload.KeyBenefits
	}
	return insight
}
