// Package tui holds the small amount of terminal UI qd uses: a spinner for
// slow calls and the styles in the styles subpackage.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs action behind a spinner written to w and returns the
// action's error. ACCESSIBLE=1 switches to a plain-text spinner.
func RunWithSpinner(w io.Writer, title string, action func() error) error {
	var actionErr error
	spinErr := spinner.New().
		Title(title).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(w).
		Action(func() {
			actionErr = action()
		}).
		Run()
	if spinErr != nil {
		return spinErr
	}
	return actionErr
}
