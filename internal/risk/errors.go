package risk

import "errors"

var (
	// ErrSchemaMismatch means an artifact was trained on a different feature set
	ErrSchemaMismatch = errors.New("model feature schema mismatch")
	// ErrModelUnavailable means model-backed mode is required but no artifact could be loaded
	ErrModelUnavailable = errors.New("model artifact unavailable")
	// ErrInvalidArtifact means the artifact decoded but is structurally unusable
	ErrInvalidArtifact = errors.New("invalid model artifact")
)
