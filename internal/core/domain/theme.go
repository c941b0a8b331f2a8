package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrThemeNotFound     = errors.New("theme not found")
	ErrThemeKeyEmpty     = errors.New("theme key cannot be empty")
	ErrThemeNameEmpty    = errors.New("theme name cannot be empty")
	ErrThemeBuiltIn      = errors.New("built-in themes cannot be modified")
	ErrInvalidColor      = errors.New("invalid color format (must be #RRGGBB)")
	ErrThemeKeyMalformed = errors.New("theme key may only contain lowercase letters, digits, '-' and '_'")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
var themeKeyRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)

type Theme struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	Card          string `json:"card"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
	Border        string `json:"border"`
}

func (t Theme) GetID() string { return t.Key }

func (t Theme) Clone() Theme { return t }

func (t Theme) Validate() error {
	key := strings.TrimSpace(t.Key)
	if key == "" {
		return ErrThemeKeyEmpty
	}
	if !themeKeyRegex.MatchString(key) {
		return ErrThemeKeyMalformed
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrThemeNameEmpty
	}
	for _, c := range []string{t.Primary, t.Secondary, t.Accent, t.Background, t.Card, t.Text, t.TextSecondary, t.Border} {
		if !colorRegex.MatchString(c) {
			return ErrInvalidColor
		}
	}
	return nil
}

// BuiltInThemes returns the themes shipped with the app, keyed by theme key.
func BuiltInThemes() map[string]Theme {
	return map[string]Theme{
		"default": {Key: "default", Name: "iOS Dark", Primary: "#007AFF", Secondary: "#5856D6", Accent: "#34C759",
			Background: "#000000", Card: "#1C1C1E", Text: "#FFFFFF", TextSecondary: "#8E8E93", Border: "#38383A"},
		"light": {Key: "light", Name: "iOS Light", Primary: "#007AFF", Secondary: "#5856D6", Accent: "#34C759",
			Background: "#F2F2F7", Card: "#FFFFFF", Text: "#000000", TextSecondary: "#8E8E93", Border: "#C6C6C8"},
		"ocean": {Key: "ocean", Name: "Ocean Blue", Primary: "#0ea5e9", Secondary: "#0369a1", Accent: "#38bdf8",
			Background: "#f0f9ff", Card: "#ffffff", Text: "#0c4a6e", TextSecondary: "#0284c7", Border: "#bae6fd"},
		"sunset": {Key: "sunset", Name: "Sunset Orange", Primary: "#f97316", Secondary: "#c2410c", Accent: "#fb923c",
			Background: "#fff7ed", Card: "#ffffff", Text: "#7c2d12", TextSecondary: "#ea580c", Border: "#fed7aa"},
		"forest": {Key: "forest", Name: "Forest Green", Primary: "#22c55e", Secondary: "#15803d", Accent: "#4ade80",
			Background: "#f0fdf4", Card: "#ffffff", Text: "#14532d", TextSecondary: "#16a34a", Border: "#bbf7d0"},
		"dark": {Key: "dark", Name: "Midnight", Primary: "#6b7280", Secondary: "#374151", Accent: "#9ca3af",
			Background: "#111827", Card: "#1f2937", Text: "#f9fafb", TextSecondary: "#e5e7eb", Border: "#4b5563"},
		"android": {Key: "android", Name: "Android Material", Primary: "#3F51B5", Secondary: "#00BCD4", Accent: "#FF4081",
			Background: "#F5F5F5", Card: "#FFFFFF", Text: "#212121", TextSecondary: "#757575", Border: "#E0E0E0"},
	}
}
