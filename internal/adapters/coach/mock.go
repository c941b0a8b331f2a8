// Package coach holds the implementations of domain.Coach.
package coach

import (
	"context"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

var _ domain.Coach = (*MockCoach)(nil)

// MockCoach answers with a template and has no voice.
type MockCoach struct {
	logger *zap.Logger
}

func NewMockCoach(logger *zap.Logger) *MockCoach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockCoach{logger: logger.Named("coach.mock")}
}

func (c *MockCoach) Ask(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	return "Response to: " + prompt, nil
}

func (c *MockCoach) Speak(ctx context.Context, text string) error {
	c.logger.Info("speaking response", zap.String("text", text))
	return nil
}

func (c *MockCoach) UploadCustomVoice(ctx context.Context, path string) (bool, error) {
	return false, nil
}
