package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/decaychain/internal/decay"
	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/source"
)

// fail reports err through the formatter and returns the matching ExitError.
func fail(f *OutputFormatter, exitCode int, errCode, message string, err error) error {
	var details any
	if err != nil {
		details = err.Error()
	}
	_ = f.Error(errCode, message, details)
	return WrapExitError(exitCode, message, err)
}

// openSource opens path, classifying failures as missing or malformed input.
func openSource(f *OutputFormatter, path string) (event.Source, error) {
	src, err := source.Open(path)
	if err == nil {
		return src, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fail(f, ExitCommandError, ErrCodeNotFound, "cannot open "+path, err)
	}
	return nil, fail(f, ExitCommandError, ErrCodeFormat, "cannot read "+path, err)
}

// errCodeFor classifies a processing error.
func errCodeFor(err error) string {
	if decay.IsIntegrityError(err) {
		return ErrCodeIntegrity
	}
	return ErrCodeGeneric
}
