package eventfile

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// DecodeError is a CUE document error with its source position.
type DecodeError struct {
	Message string
	Pos     token.Pos
}

func (e *DecodeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// DecodeCUE compiles a CUE document, closes it against #Document and decodes
// the concrete result. filename is used only for error positions.
func DecodeCUE(filename string, data []byte) (*Document, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling embedded schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, cueError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Document")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(err)
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return nil, cueError(err)
	}
	return &doc, nil
}

// cueError keeps the first error's position when CUE reports one.
func cueError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &DecodeError{Message: err.Error()}
	}
	first := errs[0]
	format, args := first.Msg()
	return &DecodeError{
		Message: fmt.Sprintf("%s: %s", strings.Join(first.Path(), "."), fmt.Sprintf(format, args...)),
		Pos:     first.Position(),
	}
}
