package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	ErrNotFound         = errors.New("resource not found")
	ErrArtifactNotFound = fmt.Errorf("%w: model artifact", ErrNotFound)

	ErrInvalidArtifact      = errors.New("invalid model artifact")
	ErrFeatureMismatch      = fmt.Errorf("%w: feature count mismatch", ErrInvalidArtifact)
	ErrNoFeatureImportances = errors.New("model does not expose feature importances")

	ErrInvalidLot = errors.New("invalid lot input")
	ErrEmptyData  = errors.New("no rows to evaluate")
)

// NewArtifactNotFoundError names the missing artifact path
func NewArtifactNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
}

// NewLotRangeError reports a lot attribute outside its accepted bounds
func NewLotRangeError(field string, value, min, max int) error {
	return fmt.Errorf("%w: %s=%d outside [%d, %d]", ErrInvalidLot, field, value, min, max)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
