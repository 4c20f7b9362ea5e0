package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/vladimiradmaev/translator-bot/internal/config"
	apperrors "github.com/vladimiradmaev/translator-bot/internal/errors"
	"github.com/vladimiradmaev/translator-bot/internal/logger"
	"google.golang.org/api/option"
)

// CompletionRequest is a single prompt sent to the language model
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	JSON        bool
	Temperature float32
}

// AIService sends prompts to the configured provider
type AIService struct {
	provider     string
	openaiClient *openai.Client
	geminiClient *genai.Client
	geminiModel  string
}

// NewAIService builds the client for cfg.TranslationProvider
func NewAIService(ctx context.Context, cfg *config.Config) (*AIService, error) {
	switch cfg.TranslationProvider {
	case config.ProviderGemini:
		geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return &AIService{
			provider:     config.ProviderGemini,
			geminiClient: geminiClient,
			geminiModel:  cfg.GeminiModel,
		}, nil
	default:
		return NewOpenAIService(openai.NewClient(cfg.OpenAIAPIKey)), nil
	}
}

// NewOpenAIService wraps an existing OpenAI client
func NewOpenAIService(client *openai.Client) *AIService {
	return &AIService{
		provider:     config.ProviderOpenAI,
		openaiClient: client,
	}
}

// Provider returns the name of the active provider
func (s *AIService) Provider() string {
	return s.provider
}

// Complete returns the raw text of the model's answer
func (s *AIService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var (
		text string
		err  error
	)
	if s.provider == config.ProviderGemini {
		text, err = s.completeWithGemini(ctx, req)
	} else {
		text, err = s.completeWithOpenAI(ctx, req)
	}
	if err != nil {
		return "", apperrors.NewExternalAPIError(err, s.provider)
	}
	return text, nil
}

func (s *AIService) completeWithOpenAI(ctx context.Context, req CompletionRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := s.openaiClient.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	logger.FromContext(ctx).Debug("OpenAI completion",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}

func (s *AIService) completeWithGemini(ctx context.Context, req CompletionRequest) (string, error) {
	model := s.geminiClient.GenerativeModel(s.geminiModel)

	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + prompt
	}
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty Gemini response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if req.JSON {
		jsonStr := extractJSON(sb.String())
		if jsonStr == "" {
			return "", fmt.Errorf("no valid JSON found in response")
		}
		return jsonStr, nil
	}
	return sb.String(), nil
}

// Close releases the Gemini client if one was created
func (s *AIService) Close() error {
	if s.geminiClient != nil {
		return s.geminiClient.Close()
	}
	return nil
}

// extractJSON attempts to extract a valid JSON object from the given string.
// It handles cases where the JSON is wrapped in code blocks (```json ... ```) or other text.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
