// Package id generates record identifiers.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a random record ID.
func New() string {
	return uuid.NewString()
}

// Parse validates a record ID and returns its canonical form.
func Parse(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return u.String(), nil
}
