package domain

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

// Storage keys, one per collection. No two controllers share a key.
const (
	KeyUser        = "user"
	KeyHabits      = "habits"
	KeyMeals       = "meals"
	KeySupplements = "supplements"
	KeyAddictions  = "addictions"
	KeyReminders   = "reminders"
	KeyThemes      = "themes"
	KeyCoach       = "coach"
)

// RecordStore is the durable key-value boundary every collection persists through.
type RecordStore interface {
	// Get returns the serialized value stored under key, or ErrRecordNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Entity is a record held in a collection. Clone must return a copy that
// shares no mutable memory (slices, pointers) with the receiver.
type Entity[K comparable, T any] interface {
	GetID() K
	Clone() T
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
