package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

type MockCoach struct {
	mock.Mock
}

func (m *MockCoach) Ask(ctx context.Context, prompt string, history []domain.Message) (string, error) {
	args := m.Called(ctx, prompt, history)
	return args.String(0), args.Error(1)
}

func (m *MockCoach) Speak(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func (m *MockCoach) UploadCustomVoice(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func newCoachService(coach domain.Coach, store domain.RecordStore) *services.CoachService {
	settings := ready(collection.New[int](domain.KeyCoach, store, collection.Config[domain.CoachSettings]{
		Seed:  func() []domain.CoachSettings { return []domain.CoachSettings{domain.DefaultCoachSettings()} },
		Codec: collection.RecordCodec[domain.CoachSettings]{},
	}))
	return services.NewCoachService(settings, coach, nil)
}

func TestCoachService_Ask(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Both turns are recorded", func(t *testing.T) {
		coach := new(MockCoach)
		service := newCoachService(coach, newStore())
		coach.On("Ask", ctx, "I feel stressed", mock.MatchedBy(func(h []domain.Message) bool {
			return len(h) == 1 && h[0].Role == domain.RoleSystem
		})).Return("Let's breathe together.", nil).Once()

		answer, err := service.Ask(ctx, "  I feel stressed ")

		require.NoError(t, err)
		assert.Equal(t, "Let's breathe together.", answer)
		assert.Equal(t, []domain.Message{
			{Role: domain.RoleUser, Content: "I feel stressed"},
			{Role: domain.RoleAssistant, Content: "Let's breathe together."},
		}, service.History())
		coach.AssertExpectations(t)
	})

	t.Run("Fail: Coach error records nothing", func(t *testing.T) {
		coach := new(MockCoach)
		service := newCoachService(coach, newStore())
		coach.On("Ask", ctx, "hello", mock.Anything).Return("", errors.New("quota exceeded"))

		_, err := service.Ask(ctx, "hello")

		assert.Error(t, err)
		assert.Empty(t, service.History())
	})

	t.Run("Fail: Empty prompt", func(t *testing.T) {
		service := newCoachService(new(MockCoach), newStore())

		_, err := service.Ask(ctx, "   ")

		assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
	})

	t.Run("Success: Clear conversation", func(t *testing.T) {
		coach := new(MockCoach)
		service := newCoachService(coach, newStore())
		coach.On("Ask", ctx, "hi", mock.Anything).Return("hey", nil)
		_, err := service.Ask(ctx, "hi")
		require.NoError(t, err)

		service.ClearConversation()

		assert.Empty(t, service.History())
	})
}

func TestCoachService_Settings(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Defaults, patch and persistence", func(t *testing.T) {
		store := newStore()
		service := newCoachService(new(MockCoach), store)
		assert.Equal(t, "Anuna", service.Settings().Name)

		updated, err := service.UpdateSettings(ctx, domain.CoachSettingsPatch{Personality: ptr(domain.PersonalityToughLove)})
		require.NoError(t, err)
		assert.Equal(t, domain.PersonalityToughLove, updated.Personality)
		assert.Equal(t, "Anuna", updated.Name)

		reloaded := newCoachService(new(MockCoach), store)
		assert.Equal(t, domain.PersonalityToughLove, reloaded.Settings().Personality)
	})

	t.Run("Success: Toggle capability", func(t *testing.T) {
		service := newCoachService(new(MockCoach), newStore())

		cs, err := service.ToggleCapability(ctx, domain.CapabilityInternet)
		require.NoError(t, err)
		assert.True(t, cs.Capabilities.InternetAccess)

		_, err = service.ToggleCapability(ctx, "telepathy")
		assert.ErrorIs(t, err, domain.ErrUnknownCapability)
		assert.True(t, service.Settings().Capabilities.InternetAccess)
	})
}

func TestCoachService_Voice(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Speak goes through when voice is on", func(t *testing.T) {
		coach := new(MockCoach)
		service := newCoachService(coach, newStore())
		coach.On("Speak", ctx, "hello").Return(nil).Once()

		require.NoError(t, service.Speak(ctx, "hello"))
		coach.AssertExpectations(t)
	})

	t.Run("Success: Speak is skipped when voice is off", func(t *testing.T) {
		coach := new(MockCoach)
		service := newCoachService(coach, newStore())
		_, err := service.UpdateSettings(ctx, domain.CoachSettingsPatch{VoiceEnabled: ptr(false)})
		require.NoError(t, err)

		require.NoError(t, service.Speak(ctx, "hello"))
		coach.AssertNotCalled(t, "Speak", mock.Anything, mock.Anything)
	})

	t.Run("Success: Upload refusal leaves settings untouched", func(t *testing.T) {
		coach := new(MockCoach)
		service := newCoachService(coach, newStore())
		coach.On("UploadCustomVoice", ctx, "/voice.mp3").Return(false, nil)

		ok, err := service.UploadCustomVoice(ctx, "/voice.mp3")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, service.Settings().CustomVoiceFile)
	})

	t.Run("Success: Accepted upload is remembered and can be removed", func(t *testing.T) {
		coach := new(MockCoach)
		service := newCoachService(coach, newStore())
		coach.On("UploadCustomVoice", ctx, "/voice.mp3").Return(true, nil)

		ok, err := service.UploadCustomVoice(ctx, "/voice.mp3")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/voice.mp3", service.Settings().CustomVoiceFile)

		require.NoError(t, service.RemoveCustomVoice(ctx))
		assert.Empty(t, service.Settings().CustomVoiceFile)
	})

	t.Run("Success: Canned messages", func(t *testing.T) {
		service := newCoachService(new(MockCoach), newStore())

		assert.Equal(t, services.MotivationalMessage, service.MotivationalMessage())
		assert.Equal(t, services.EmergencySupport, service.EmergencySupport())
	})
}
