package tui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user declines a confirmation prompt.
var ErrAborted = errors.New("aborted")

// Confirm asks a yes/no question and returns ErrAborted unless the user
// answers yes. Ctrl+C counts as no.
func Confirm(title, description string) error {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithAccessible(os.Getenv("ACCESSIBLE") != "")

	err := form.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrAborted
	}
	return nil
}
