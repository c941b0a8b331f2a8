package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrVoiceUnavailable   = errors.New("voice output is not available")
	ErrEmptyPrompt        = errors.New("prompt cannot be empty")
	ErrInvalidPersonality = errors.New("invalid personality (must be supportive, tough-love, clinical, or friendly)")
	ErrUnknownCapability  = errors.New("unknown coach capability")
)

// Coach is the AI companion collaborator. Implementations may fail; callers
// must not assume a response is always produced.
type Coach interface {
	Ask(ctx context.Context, prompt string, history []Message) (string, error)
	Speak(ctx context.Context, text string) error
	UploadCustomVoice(ctx context.Context, path string) (bool, error)
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Personality string

const (
	PersonalitySupportive Personality = "supportive"
	PersonalityToughLove  Personality = "tough-love"
	PersonalityClinical   Personality = "clinical"
	PersonalityFriendly   Personality = "friendly"
)

func (p Personality) Valid() bool {
	switch p {
	case PersonalitySupportive, PersonalityToughLove, PersonalityClinical, PersonalityFriendly:
		return true
	}
	return false
}

type Capability string

const (
	CapabilityInternet    Capability = "internetAccess"
	CapabilitySocialMedia Capability = "socialMediaAccess"
	CapabilityRealTime    Capability = "realTimeData"
)

type Capabilities struct {
	InternetAccess    bool `json:"internetAccess"`
	SocialMediaAccess bool `json:"socialMediaAccess"`
	RealTimeData      bool `json:"realTimeData"`
}

// Toggle flips one capability flag.
func (c Capabilities) Toggle(name Capability) (Capabilities, error) {
	switch name {
	case CapabilityInternet:
		c.InternetAccess = !c.InternetAccess
	case CapabilitySocialMedia:
		c.SocialMediaAccess = !c.SocialMediaAccess
	case CapabilityRealTime:
		c.RealTimeData = !c.RealTimeData
	default:
		return c, ErrUnknownCapability
	}
	return c, nil
}

// CoachSettings is stored as a single record; its identity is constant.
type CoachSettings struct {
	Name            string       `json:"name"`
	Personality     Personality  `json:"personality"`
	VoiceEnabled    bool         `json:"voiceEnabled"`
	VoiceActivation bool         `json:"voiceActivation"`
	AppControl      bool         `json:"appControl"`
	CustomVoiceFile string       `json:"customVoiceFile,omitempty"`
	Capabilities    Capabilities `json:"capabilities"`
}

func (s CoachSettings) GetID() int { return 1 }

func (s CoachSettings) Clone() CoachSettings { return s }

func DefaultCoachSettings() CoachSettings {
	return CoachSettings{
		Name:            "Anuna",
		Personality:     PersonalitySupportive,
		VoiceEnabled:    true,
		VoiceActivation: true,
		AppControl:      true,
	}
}

type CoachSettingsPatch struct {
	Name            *string      `json:"name,omitempty"`
	Personality     *Personality `json:"personality,omitempty"`
	VoiceEnabled    *bool        `json:"voiceEnabled,omitempty"`
	VoiceActivation *bool        `json:"voiceActivation,omitempty"`
	AppControl      *bool        `json:"appControl,omitempty"`
}

func (p CoachSettingsPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrDisplayNameEmpty
	}
	if p.Personality != nil && !p.Personality.Valid() {
		return ErrInvalidPersonality
	}
	return nil
}

func (p CoachSettingsPatch) Apply(s CoachSettings) CoachSettings {
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	if p.Personality != nil {
		s.Personality = *p.Personality
	}
	if p.VoiceEnabled != nil {
		s.VoiceEnabled = *p.VoiceEnabled
	}
	if p.VoiceActivation != nil {
		s.VoiceActivation = *p.VoiceActivation
	}
	if p.AppControl != nil {
		s.AppControl = *p.AppControl
	}
	return s
}
