// Package services validates user input and applies it to the entity stores.
package services

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }

// normalizeTags trims tags and drops blanks and duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
