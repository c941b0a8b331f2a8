package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const DefaultGeminiModel = "gemini-1.5-flash"

var (
	ErrNoContent  = errors.New("coach: no content generated")
	ErrNotText    = errors.New("coach: generated content is not text")
	ErrMissingKey = errors.New("coach: gemini api key is required")
)

var _ domain.Coach = (*GeminiCoach)(nil)

// GeminiCoach answers through the Gemini API. It has no voice output.
type GeminiCoach struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

func NewGeminiCoach(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*GeminiCoach, error) {
	if apiKey == "" {
		return nil, ErrMissingKey
	}
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCoach{
		client:    client,
		modelName: modelName,
		logger:    logger.Named("coach.gemini"),
	}, nil
}

func (c *GeminiCoach) Ask(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	system, turns := splitHistory(history)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}

	chat := model.StartChat()
	chat.History = turns

	resp, err := chat.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return firstText(resp)
}

func (c *GeminiCoach) Speak(ctx context.Context, text string) error {
	return domain.ErrVoiceUnavailable
}

func (c *GeminiCoach) UploadCustomVoice(ctx context.Context, path string) (bool, error) {
	c.logger.Debug("custom voices are not supported", zap.String("path", path))
	return false, nil
}

func (c *GeminiCoach) Close() error {
	return c.client.Close()
}

// splitHistory joins system messages into one instruction and maps the
// remaining turns to Gemini roles.
func splitHistory(history []domain.Message) (string, []*genai.Content) {
	var system []string
	turns := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case domain.RoleSystem:
			system = append(system, m.Content)
		case domain.RoleAssistant:
			turns = append(turns, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}
	return strings.Join(system, "\n"), turns
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoContent
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", ErrNotText
	}
	return string(text), nil
}
