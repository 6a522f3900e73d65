package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	"github.com/yukikurage/project-tasks-api/internal/models"
)

type AIService struct {
	client *openai.Client
	model  string
}

// SubtaskSuggestion is a proposed subtask. Suggestions are never persisted.
type SubtaskSuggestion struct {
	Caption       string `json:"caption"`
	Description   string `json:"description"`
	EstimatedTime int    `json:"estimated_time"`
}

func NewAIService(apiKey, model string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewAIServiceWithConfig allows pointing the client at another base URL.
func NewAIServiceWithConfig(cfg openai.ClientConfig, model string) *AIService {
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// SuggestSubtasks asks the model to break a parent task into subtasks
func (s *AIService) SuggestSubtasks(ctx context.Context, parent models.Task) ([]SubtaskSuggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a planning assistant. Break the following task into at most %d concrete subtasks.

Task: %s
Description: %s
Estimated time for the whole task (minutes): %d

Return a JSON array in this form:
[
  {
    "caption": "short subtask title (max %d characters)",
    "description": "what has to be done",
    "estimated_time": estimated minutes as a positive integer
  }
]

Rules:
- Return [] when the task cannot be split
- Return JSON only, without any explanation`,
		constants.MaxAISuggestedSubtasks,
		parent.Caption,
		parent.Description,
		parent.EstimatedTime,
		constants.MaxCaptionLength,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")

	var suggestions []SubtaskSuggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return suggestions, nil
}
