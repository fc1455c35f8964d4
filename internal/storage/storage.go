package storage

import (
	"context"
	"errors"
)

// ContentTypeMIDI is the media type of stored artifacts.
const ContentTypeMIDI = "audio/midi"

var ErrNotFound = errors.New("artifact not found")

// Store keeps generated files keyed by composition ID.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Name() string
}
