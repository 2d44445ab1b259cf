package domain

import (
	"encoding/json"
	"fmt"

	apperrors "ritualcoach/internal/platform/errors"
)

const SchemaVersion = 1

type Kind string

const (
	KindProfile       Kind = "profile"
	KindDailyProgress Kind = "daily_progress"
	KindStreak        Kind = "streak"
)

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Kind          Kind            `json:"kind"`
	Record        json.RawMessage `json:"record"`
}

func Encode(kind Kind, record any) ([]byte, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", kind, err)
	}
	out, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Kind: kind, Record: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", kind, err)
	}
	return out, nil
}

// Decode parses a stored record of the expected kind.
func Decode[T any](raw []byte, kind Kind) (T, error) {
	var zero T
	env := envelope{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, fmt.Errorf("%w: decode %s envelope: %v", apperrors.ErrMalformedRecord, kind, err)
	}
	if env.SchemaVersion < 1 || env.SchemaVersion > SchemaVersion {
		return zero, fmt.Errorf("%w: %s has version %d", apperrors.ErrUnsupportedSchema, kind, env.SchemaVersion)
	}
	if env.Kind != kind {
		return zero, fmt.Errorf("%w: expected %s, got %q", apperrors.ErrMalformedRecord, kind, env.Kind)
	}
	if len(env.Record) == 0 {
		return zero, fmt.Errorf("%w: %s has no body", apperrors.ErrMalformedRecord, kind)
	}
	var out T
	if err := json.Unmarshal(env.Record, &out); err != nil {
		return zero, fmt.Errorf("%w: decode %s: %v", apperrors.ErrMalformedRecord, kind, err)
	}
	return out, nil
}
