package services

import (
	"context"
	"errors"
	"sort"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type ThemeService struct {
	custom  *collection.Collection[string, domain.Theme]
	auth    *AuthService
	builtIn map[string]domain.Theme
}

func NewThemeService(custom *collection.Collection[string, domain.Theme], auth *AuthService) *ThemeService {
	return &ThemeService{
		custom:  custom,
		auth:    auth,
		builtIn: domain.BuiltInThemes(),
	}
}

// Themes lists the built-in themes sorted by key, followed by custom ones
// in creation order.
func (s *ThemeService) Themes() []domain.Theme {
	keys := make([]string, 0, len(s.builtIn))
	for k := range s.builtIn {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.Theme, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.builtIn[k])
	}
	return append(out, s.custom.List()...)
}

func (s *ThemeService) Get(key string) (domain.Theme, error) {
	if t, ok := s.builtIn[key]; ok {
		return t, nil
	}
	return s.custom.Find(key)
}

// SaveCustom creates or replaces a custom theme.
func (s *ThemeService) SaveCustom(ctx context.Context, theme domain.Theme) (domain.Theme, error) {
	if _, ok := s.builtIn[theme.Key]; ok {
		return domain.Theme{}, domain.ErrThemeBuiltIn
	}

	_, err := s.custom.Mutate(ctx, func(current []domain.Theme) ([]domain.Theme, error) {
		for i, t := range current {
			if t.Key == theme.Key {
				current[i] = theme
				return current, nil
			}
		}
		return append(current, theme), nil
	})
	if err != nil {
		return domain.Theme{}, err
	}
	return theme, nil
}

// RemoveCustom deletes a custom theme. A user on that theme falls back to
// the default one.
func (s *ThemeService) RemoveCustom(ctx context.Context, key string) error {
	if _, ok := s.builtIn[key]; ok {
		return domain.ErrThemeBuiltIn
	}
	if err := s.custom.Delete(ctx, key); err != nil {
		return err
	}

	user, err := s.auth.Current()
	if err != nil || user.Theme != key {
		return nil
	}
	_, err = s.auth.UpdateTheme(ctx, domain.DefaultThemeKey)
	return err
}

// Change switches the current user's theme.
func (s *ThemeService) Change(ctx context.Context, key string) (domain.User, error) {
	if _, err := s.Get(key); err != nil {
		return domain.User{}, err
	}
	return s.auth.UpdateTheme(ctx, key)
}

// Current resolves the current user's theme, or the default one when no
// user is logged in or the stored key no longer exists.
func (s *ThemeService) Current() domain.Theme {
	fallback := s.builtIn[domain.DefaultThemeKey]

	user, err := s.auth.Current()
	if errors.Is(err, domain.ErrNotLoggedIn) {
		return fallback
	}
	t, err := s.Get(user.Theme)
	if err != nil {
		return fallback
	}
	return t
}
