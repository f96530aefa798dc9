package output

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// spinnerEnabled can be switched off (e.g. in verbose mode, where log lines
// would fight with the spinner for the terminal).
var spinnerEnabled = true

// SetSpinnerEnabled toggles spinners globally.
func SetSpinnerEnabled(enabled bool) {
	spinnerEnabled = enabled
}

// RunWithSpinner executes action while showing a spinner with the given
// title. When stdout is not a terminal the action runs directly.
func RunWithSpinner(title string, action func() error) error {
	if !spinnerEnabled || !IsTTY() {
		return action()
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			actionErr = action()
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return actionErr
}
