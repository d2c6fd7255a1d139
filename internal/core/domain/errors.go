package domain

import "errors"

// Not found errors
var (
	ErrArtifactNotFound = errors.New("artifact does not exist")
	ErrRatingNotFound   = errors.New("artifact does not exist or lacks a rating")
	ErrRatingRequired   = errors.New("cost unavailable until model is rated")
)

// Conflict errors
var (
	ErrArtifactExists = errors.New("artifact exists already")
)

// Validation errors
var (
	ErrInvalidArtifactType = errors.New("invalid artifact type")
	ErrInvalidArtifactID   = errors.New("artifact id is required")
	ErrInvalidURL          = errors.New("artifact url is required")
	ErrMetadataMismatch    = errors.New("artifact metadata does not match path parameters")
	ErrEmptyQuery          = errors.New("at least one artifact query is required")
	ErrMissingRating       = errors.New("model registration requires a rating")
)

// Dependency errors
var (
	ErrMetricComputation = errors.New("metric computation failed")
)
