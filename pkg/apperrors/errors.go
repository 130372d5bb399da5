package apperrors

import "errors"

var (
	// ErrDataUnavailable covers missing inputs the pipeline cannot proceed
	// without: no weather, no trends, no catalog matches, no surviving
	// embeddings. Surfaced to callers as "cannot generate recommendation"
	// and never retried automatically.
	ErrDataUnavailable = errors.New("required data unavailable")

	// ErrInsufficientInventory is raised when the outfit combiner cannot
	// satisfy its slot constraints (no Shoes, or neither Set nor
	// Top+Bottom). Distinct from ErrDataUnavailable so callers can give an
	// actionable message.
	ErrInsufficientInventory = errors.New("insufficient inventory to build an outfit")

	ErrNotFound = errors.New("not found")
)
