package util

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateResourceID checks that an id given on the command line is usable as
// a single path segment: non-empty and free of whitespace, control
// characters, and slashes.
func ValidateResourceID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s id must not be empty", kind)
	}

	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%s id %q must not contain whitespace or control characters", kind, id)
		}
	}

	if strings.ContainsRune(id, '/') {
		return fmt.Errorf("%s id %q must not contain '/'", kind, id)
	}

	return nil
}
