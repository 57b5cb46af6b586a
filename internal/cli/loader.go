package cli

import (
	"errors"
	"fmt"

	"github.com/jmerdich/verilator/internal/lower"
)

// loadUnit loads one unit file and reports failures through the
// formatter. An unreadable file is command misuse; a file that reads
// but does not build is an operational failure.
func loadUnit(formatter *OutputFormatter, path string) (*lower.Unit, error) {
	u, err := lower.LoadFile(path)
	if err == nil {
		return u, nil
	}

	var loadErr *lower.LoadError
	if errors.As(err, &loadErr) {
		var details any
		if loadErr.Pos.IsValid() {
			details = fmt.Sprintf("%s:%d:%d", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column())
		}
		_ = formatter.Error(loadErr.Code, loadErr.Message, details)
		code := ExitFailure
		if loadErr.Code == lower.ErrCodeRead {
			code = ExitCommandError
		}
		return nil, WrapExitError(code, "unit did not load", err)
	}

	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return nil, WrapExitError(ExitFailure, "unit did not load", err)
}
