package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const (
	MotivationalMessage = "Keep pushing forward! Every step counts."
	EmergencySupport    = "I'm here to help. Please tell me what's wrong."
)

// CoachService keeps the coach settings persisted under domain.KeyCoach and
// the conversation in memory only.
type CoachService struct {
	settings *collection.Collection[int, domain.CoachSettings]
	coach    domain.Coach
	logger   *zap.Logger

	mu      sync.RWMutex
	history []domain.Message
}

func NewCoachService(settings *collection.Collection[int, domain.CoachSettings], coach domain.Coach, logger *zap.Logger) *CoachService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoachService{
		settings: settings,
		coach:    coach,
		logger:   logger.Named("coach"),
	}
}

func (s *CoachService) Settings() domain.CoachSettings {
	list := s.settings.List()
	if len(list) == 0 {
		return domain.DefaultCoachSettings()
	}
	return list[0]
}

func (s *CoachService) UpdateSettings(ctx context.Context, patch domain.CoachSettingsPatch) (domain.CoachSettings, error) {
	return s.updateSettings(ctx, func(cs domain.CoachSettings) (domain.CoachSettings, error) {
		return patch.Apply(cs), nil
	})
}

func (s *CoachService) ToggleCapability(ctx context.Context, name domain.Capability) (domain.CoachSettings, error) {
	return s.updateSettings(ctx, func(cs domain.CoachSettings) (domain.CoachSettings, error) {
		caps, err := cs.Capabilities.Toggle(name)
		if err != nil {
			return cs, err
		}
		cs.Capabilities = caps
		return cs, nil
	})
}

func (s *CoachService) updateSettings(ctx context.Context, fn func(domain.CoachSettings) (domain.CoachSettings, error)) (domain.CoachSettings, error) {
	var updated domain.CoachSettings
	_, err := s.settings.Mutate(ctx, func(current []domain.CoachSettings) ([]domain.CoachSettings, error) {
		cs := domain.DefaultCoachSettings()
		if len(current) > 0 {
			cs = current[0]
		}
		next, err := fn(cs)
		if err != nil {
			return nil, err
		}
		updated = next
		return []domain.CoachSettings{next}, nil
	})
	if err != nil {
		return domain.CoachSettings{}, err
	}
	return updated, nil
}

// Ask forwards prompt with the conversation so far. Both turns are recorded
// only when the coach answers.
func (s *CoachService) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", domain.ErrEmptyPrompt
	}

	history := s.History()
	cs := s.Settings()
	if cs.Personality != "" {
		history = append([]domain.Message{{
			Role:    domain.RoleSystem,
			Content: fmt.Sprintf("You are %s, a %s wellness coach.", cs.Name, cs.Personality),
		}}, history...)
	}

	answer, err := s.coach.Ask(ctx, prompt, history)
	if err != nil {
		return "", fmt.Errorf("coach service: ask: %w", err)
	}

	s.mu.Lock()
	s.history = append(s.history,
		domain.Message{Role: domain.RoleUser, Content: prompt},
		domain.Message{Role: domain.RoleAssistant, Content: answer},
	)
	s.mu.Unlock()

	return answer, nil
}

func (s *CoachService) History() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *CoachService) ClearConversation() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// Speak is a no-op when voice output is disabled in the settings.
func (s *CoachService) Speak(ctx context.Context, text string) error {
	if !s.Settings().VoiceEnabled {
		s.logger.Debug("voice disabled, not speaking")
		return nil
	}
	return s.coach.Speak(ctx, text)
}

func (s *CoachService) UploadCustomVoice(ctx context.Context, path string) (bool, error) {
	ok, err := s.coach.UploadCustomVoice(ctx, path)
	if err != nil || !ok {
		return false, err
	}
	_, err = s.updateSettings(ctx, func(cs domain.CoachSettings) (domain.CoachSettings, error) {
		cs.CustomVoiceFile = path
		return cs, nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *CoachService) RemoveCustomVoice(ctx context.Context) error {
	_, err := s.updateSettings(ctx, func(cs domain.CoachSettings) (domain.CoachSettings, error) {
		cs.CustomVoiceFile = ""
		return cs, nil
	})
	return err
}

func (s *CoachService) MotivationalMessage() string {
	return MotivationalMessage
}

func (s *CoachService) EmergencySupport() string {
	return EmergencySupport
}
