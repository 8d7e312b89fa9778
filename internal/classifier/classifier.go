// Package classifier assigns a category to each scanned file.
//
// Resolution order per file: custom rule by extension, then the remote
// categorization oracle (one batched request per classification pass), then
// the static fallback table, then Unknown. Oracle problems of any shape are
// absorbed: the batch never fails because the oracle did.
package classifier

import (
	"context"

	"github.com/harrison/curator/internal/models"
)

// DebugLogger receives diagnostic messages about absorbed oracle failures.
// Oracle errors are never surfaced to the user, only logged here.
type DebugLogger interface {
	Debugf(format string, args ...interface{})
}

// Classifier resolves categories for scanned files. The rules mapping is
// injected by the caller; the classifier never touches persistence itself.
type Classifier struct {
	oracle Oracle // nil means no oracle is configured
	debug  DebugLogger
}

// New creates a Classifier. Both arguments may be nil: a nil oracle yields
// no remote answers, and a nil debug logger discards diagnostics.
func New(oracle Oracle, debug DebugLogger) *Classifier {
	return &Classifier{oracle: oracle, debug: debug}
}

// Classify assigns a category to every record in place, using the supplied
// custom rules first, then one batched oracle call covering all names, then
// the static fallback table. Records nothing matches stay Unknown.
func (c *Classifier) Classify(ctx context.Context, records []models.FileRecord, rules map[string]models.Category) {
	answers := c.consultOracle(ctx, records, rules)

	for i := range records {
		record := &records[i]

		if category, ok := rules[record.Extension]; ok && category.Valid() {
			record.Category = category
			continue
		}
		if category, ok := answers[record.Name]; ok {
			record.Category = category
			continue
		}
		record.Category = FallbackCategory(record.Extension)
	}
}

// consultOracle batches the names that are not already covered by a custom
// rule into a single request and returns the validated answers. Any failure
// is absorbed: the returned map is simply empty.
func (c *Classifier) consultOracle(ctx context.Context, records []models.FileRecord, rules map[string]models.Category) map[string]models.Category {
	if c.oracle == nil {
		return nil
	}

	names := make([]string, 0, len(records))
	for _, record := range records {
		if _, ok := rules[record.Extension]; ok {
			continue
		}
		names = append(names, record.Name)
	}
	if len(names) == 0 {
		return nil
	}

	raw, err := c.oracle.Classify(ctx, names)
	if err != nil {
		c.debugf("oracle unavailable, using fallback table: %v", err)
		return nil
	}
	return validateAnswers(raw)
}

func (c *Classifier) debugf(format string, args ...interface{}) {
	if c.debug != nil {
		c.debug.Debugf(format, args...)
	}
}
