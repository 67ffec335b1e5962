package services

import (
	"github.com/google/uuid"
)

// newID generates a record id in the prefix_fragment form used across
// the document (prop_1a2b3c4d, col_..., job_...).
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}
