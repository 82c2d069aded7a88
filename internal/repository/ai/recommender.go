package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"skills-platform-backend/internal/domain"
	"skills-platform-backend/pkg/apperror"
	"skills-platform-backend/pkg/logger"

	"github.com/sashabaranov/go-openai"
)

// Recommender asks the completion provider for career suggestions. Both
// operations follow the degrade-to-empty policy: any provider or parse
// failure yields an empty slice and a warning log, never an error. The
// single fail-fast input check is the temperature range.
type Recommender struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

type Config struct {
	APIKey      string
	BaseURL     string // override for tests, empty means the public API
	Model       string
	Temperature float64
	Timeout     time.Duration
}

func NewRecommender(cfg Config) *Recommender {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Recommender{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
	}
}

func (r *Recommender) validateTemperature() error {
	if r.temperature < 0 || r.temperature > 2 {
		return apperror.BadRequest("temperature must be between 0 and 2")
	}
	return nil
}

func (r *Recommender) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: r.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}
	return resp.Choices[0].Message.Content, nil
}

const specializationsPrompt = `You are a professional career advisor.

Suggest in-demand job roles in %s, %s that are relevant to the given skills.

Skills: %s
Location: %s, %s

ROLE REQUIREMENTS:

1. Return exactly 5 job roles.
2. Roles can belong to any industry (IT, engineering, design, crafts, services, etc.).
3. The role must include or strongly relate to the provided skills.
   It does NOT have to be limited only to those skills.
4. Job titles must NOT contain seniority words:
   Junior, Middle, Senior, Lead, Intern.
5. Prefer practical, real-world job titles that exist in the labor market.

SALARY REQUIREMENTS:

6. Salary must reflect entry-level level.
7. Salary must be MONTHLY gross income.
8. Currency must strictly match the official currency of %s.
9. Salary must be realistic and market-aligned.
10. Avoid extremely low or unrealistic values.

Return ONLY valid JSON:

{
  "specializations": [
    {
      "title": "string",
      "description": "10-20 words description",
      "salary": 0,
      "currency": "string"
    }
  ]
}`

// Specializations returns up to 5 (direction, salary) suggestions for
// the given skills and location.
func (r *Recommender) Specializations(ctx context.Context, skills []string, city, country string) ([]domain.SalarySuggestion, error) {
	if err := r.validateTemperature(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(specializationsPrompt,
		city, country, strings.Join(skills, ", "), city, country, country)

	content, err := r.complete(ctx, prompt)
	if err != nil {
		logger.Log.Warn("ai specializations call failed", "error", err)
		return []domain.SalarySuggestion{}, nil
	}

	return parseSpecializations(content), nil
}

const theoreticalSkillsPrompt = `You are a professional career advisor.

A person works in the direction: %s
They already know these skills: %s

List the theoretical skills a person in this direction is expected to
eventually learn, excluding the skills they already know.

REQUIREMENTS:

1. Return at most 10 skills.
2. Skill names must be short, practical and commonly used in job postings.
3. For each skill give a match_percentage between 0 and 1: your confidence
   that the skill fits this direction.
4. Return ONLY valid JSON:

{
  "skills": [
    {
      "name": "string",
      "match_percentage": 0.0
    }
  ]
}`

// TheoreticalSkills returns skill-gap suggestions for a direction given
// the skills the user already has.
func (r *Recommender) TheoreticalSkills(ctx context.Context, directionName string, knownSkills []string) ([]domain.SkillSuggestion, error) {
	if err := r.validateTemperature(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(theoreticalSkillsPrompt, directionName, strings.Join(knownSkills, ", "))

	content, err := r.complete(ctx, prompt)
	if err != nil {
		logger.Log.Warn("ai theoretical skills call failed", "error", err)
		return []domain.SkillSuggestion{}, nil
	}

	return parseTheoreticalSkills(content), nil
}

// extractJSONObject pulls the outermost JSON object out of content even
// when the model wraps it in prose or code fences.
func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}

func parseSpecializations(content string) []domain.SalarySuggestion {
	raw := extractJSONObject(content)
	if raw == "" {
		logger.Log.Warn("no JSON found in ai response", "content", content)
		return []domain.SalarySuggestion{}
	}

	var payload struct {
		Specializations []struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Salary      *float64 `json:"salary"`
			Currency    string   `json:"currency"`
		} `json:"specializations"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Log.Warn("failed to parse ai specializations", "error", err)
		return []domain.SalarySuggestion{}
	}

	suggestions := make([]domain.SalarySuggestion, 0, len(payload.Specializations))
	for _, item := range payload.Specializations {
		title := strings.TrimSpace(item.Title)
		currency := strings.TrimSpace(item.Currency)
		// Malformed entries are dropped, not fatal for the batch.
		if title == "" || currency == "" || item.Salary == nil || *item.Salary <= 0 {
			logger.Log.Warn("skipping malformed ai specialization", "title", item.Title)
			continue
		}
		suggestions = append(suggestions, domain.SalarySuggestion{
			DirectionName: title,
			Description:   strings.TrimSpace(item.Description),
			Amount:        *item.Salary,
			Currency:      currency,
		})
	}
	return suggestions
}

func parseTheoreticalSkills(content string) []domain.SkillSuggestion {
	raw := extractJSONObject(content)
	if raw == "" {
		logger.Log.Warn("no JSON found in ai response", "content", content)
		return []domain.SkillSuggestion{}
	}

	var payload struct {
		Skills []struct {
			Name            string   `json:"name"`
			MatchPercentage *float64 `json:"match_percentage"`
		} `json:"skills"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Log.Warn("failed to parse ai theoretical skills", "error", err)
		return []domain.SkillSuggestion{}
	}

	suggestions := make([]domain.SkillSuggestion, 0, len(payload.Skills))
	for _, item := range payload.Skills {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		suggestions = append(suggestions, domain.SkillSuggestion{
			Name:            name,
			MatchPercentage: item.MatchPercentage,
		})
	}
	return suggestions
}
