package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/services"
)

func newThemeService(t *testing.T) (*services.ThemeService, *services.AuthService) {
	store := newStore()
	auth := newAuthService(t, store)
	custom := ready(collection.New[string](domain.KeyThemes, store, collection.Config[domain.Theme]{
		NotFound: domain.ErrThemeNotFound,
	}))
	return services.NewThemeService(custom, auth), auth
}

func lavender() domain.Theme {
	return domain.Theme{
		Key: "lavender", Name: "Lavender",
		Primary: "#8B5CF6", Secondary: "#6D28D9", Accent: "#C4B5FD", Background: "#F5F3FF",
		Card: "#FFFFFF", Text: "#2E1065", TextSecondary: "#7C3AED", Border: "#DDD6FE",
	}
}

func TestThemeService(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Built-ins are listed in key order", func(t *testing.T) {
		themes, _ := newThemeService(t)

		list := themes.Themes()

		require.Len(t, list, 7)
		assert.Equal(t, "android", list[0].Key)
		assert.Equal(t, "sunset", list[6].Key)
	})

	t.Run("Success: Current falls back to default without a user", func(t *testing.T) {
		themes, _ := newThemeService(t)

		assert.Equal(t, domain.DefaultThemeKey, themes.Current().Key)
	})

	t.Run("Success: Change updates the current user", func(t *testing.T) {
		themes, auth := newThemeService(t)
		auth.Login(ctx, "victoria_doe", "password123")

		user, err := themes.Change(ctx, "forest")

		require.NoError(t, err)
		assert.Equal(t, "forest", user.Theme)
		assert.Equal(t, "Forest Green", themes.Current().Name)
	})

	t.Run("Fail: Change to an unknown theme", func(t *testing.T) {
		themes, auth := newThemeService(t)
		auth.Login(ctx, "victoria_doe", "password123")

		_, err := themes.Change(ctx, "neon")

		assert.ErrorIs(t, err, domain.ErrThemeNotFound)
	})

	t.Run("Success: Custom theme lifecycle", func(t *testing.T) {
		themes, auth := newThemeService(t)
		auth.Login(ctx, "victoria_doe", "password123")

		_, err := themes.SaveCustom(ctx, lavender())
		require.NoError(t, err)
		assert.Len(t, themes.Themes(), 8)

		_, err = themes.Change(ctx, "lavender")
		require.NoError(t, err)

		require.NoError(t, themes.RemoveCustom(ctx, "lavender"))

		user, _ := auth.Current()
		assert.Equal(t, domain.DefaultThemeKey, user.Theme)
		assert.Len(t, themes.Themes(), 7)
	})

	t.Run("Fail: Built-ins cannot be replaced or removed", func(t *testing.T) {
		themes, _ := newThemeService(t)
		theme := lavender()
		theme.Key = "ocean"

		_, err := themes.SaveCustom(ctx, theme)
		assert.ErrorIs(t, err, domain.ErrThemeBuiltIn)
		assert.ErrorIs(t, themes.RemoveCustom(ctx, "ocean"), domain.ErrThemeBuiltIn)
		assert.ErrorIs(t, themes.RemoveCustom(ctx, "missing"), domain.ErrThemeNotFound)
	})
}
