package collection

import (
	"encoding/json"
	"fmt"
)

// Codec converts a collection's records to and from the string stored
// under its key.
type Codec[T any] interface {
	Encode(items []T) (string, error)
	Decode(raw string) ([]T, error)
}

// ArrayCodec stores the collection as a JSON array.
type ArrayCodec[T any] struct{}

func (ArrayCodec[T]) Encode(items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("codec: marshal array: %w", err)
	}
	return string(data), nil
}

func (ArrayCodec[T]) Decode(raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("codec: unmarshal array: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// RecordCodec stores a single-record collection as one JSON object. An
// empty collection encodes to "null".
type RecordCodec[T any] struct{}

func (RecordCodec[T]) Encode(items []T) (string, error) {
	if len(items) > 1 {
		return "", fmt.Errorf("codec: record collection holds %d items", len(items))
	}
	if len(items) == 0 {
		return "null", nil
	}
	data, err := json.Marshal(items[0])
	if err != nil {
		return "", fmt.Errorf("codec: marshal record: %w", err)
	}
	return string(data), nil
}

func (RecordCodec[T]) Decode(raw string) ([]T, error) {
	var item *T
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return nil, fmt.Errorf("codec: unmarshal record: %w", err)
	}
	if item == nil {
		return []T{}, nil
	}
	return []T{*item}, nil
}
