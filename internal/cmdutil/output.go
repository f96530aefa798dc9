package cmdutil

import (
	"errors"

	"github.com/boonbuild/boon/internal/cmdtypes"
	oerrors "github.com/boonbuild/boon/internal/errors"
	"github.com/boonbuild/boon/internal/output"
)

// PrintError reports a command failure on stderr. A DetailError anywhere in
// the chain is printed in full below the summary line.
func PrintError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(msg)
		output.Details(detail.Error())
		return
	}
	output.Error(msg, "error", err)
}

// Fail prints err and returns it as an already-printed ExitError.
func Fail(msg string, err error) *cmdtypes.ExitError {
	PrintError(msg, err)
	exitErr := cmdtypes.NewExitError(err)
	exitErr.Printed = true
	output.Debug("exiting", "code", exitErr.Code, "reason", oerrors.ExitCodeName(exitErr.Code))
	return exitErr
}
