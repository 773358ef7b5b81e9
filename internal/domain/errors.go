package domain

import "errors"

var (
	// ErrDimensionMismatch signals embedding vectors of inconsistent length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrInvalidWeights signals malformed match weights.
	ErrInvalidWeights = errors.New("invalid match weights")
	// ErrComputation signals an internal assignment-solver failure.
	ErrComputation = errors.New("match computation failed")
	// ErrInvalidProfile signals a malformed requirement or candidate profile.
	ErrInvalidProfile = errors.New("invalid profile")
	// ErrProfileNotFound signals a missing stored profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrRateLimited signals a rate limit hit at the embedding provider.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
