package coach

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestMockCoach(t *testing.T) {
	ctx := context.Background()
	c := NewMockCoach(nil)

	answer, err := c.Ask(ctx, "How do I sleep better?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Response to: How do I sleep better?", answer)

	assert.NoError(t, c.Speak(ctx, answer))

	ok, err := c.UploadCustomVoice(ctx, "/tmp/voice.mp3")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNewGeminiCoach_RequiresKey(t *testing.T) {
	_, err := NewGeminiCoach(context.Background(), "", "", nil)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestSplitHistory(t *testing.T) {
	system, turns := splitHistory([]domain.Message{
		{Role: domain.RoleSystem, Content: "You are Anuna."},
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	})

	assert.Equal(t, "You are Anuna.", system)
	require.Len(t, turns, 2)
	assert.Equal(t, "user", turns[0].Role)
	assert.Equal(t, "model", turns[1].Role)
	assert.Equal(t, genai.Text("hello"), turns[1].Parts[0])
}

func TestFirstText(t *testing.T) {
	t.Run("Success: Returns the first text part", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Stay hydrated.")}},
		}}}

		text, err := firstText(resp)
		require.NoError(t, err)
		assert.Equal(t, "Stay hydrated.", text)
	})

	t.Run("Fail: Empty response", func(t *testing.T) {
		_, err := firstText(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, ErrNoContent)
	})

	t.Run("Fail: Non text part", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "audio/mpeg"}}},
		}}}

		_, err := firstText(resp)
		assert.ErrorIs(t, err, ErrNotText)
	})
}
