package classifier

import (
	"context"

	"github.com/harrison/curator/internal/models"
)

// Oracle suggests a category per file name. It is an untrusted, best-effort
// collaborator: implementations may return partial mappings, and callers must
// treat any error or malformed entry as "no answer" rather than a failure.
type Oracle interface {
	// Classify submits all names in one batched request and returns a
	// name→category mapping. Names absent from the mapping have no answer.
	Classify(ctx context.Context, names []string) (map[string]models.Category, error)
}

// validateAnswers filters an oracle response down to entries whose category
// is inside the closed set. Anything else, including a nil mapping, is
// dropped silently; a malformed response must never propagate beyond the
// classifier boundary.
func validateAnswers(raw map[string]models.Category) map[string]models.Category {
	if len(raw) == 0 {
		return nil
	}
	valid := make(map[string]models.Category, len(raw))
	for name, category := range raw {
		if !category.Valid() {
			continue
		}
		valid[name] = category
	}
	return valid
}
