package bundle

import (
	"fmt"
	"strings"

	"github.com/matzehuels/weslpkg/pkg/errors"
)

// ReadError reports that a bundle file could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string     { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }
func (e *ReadError) Unwrap() error     { return e.Err }
func (e *ReadError) Code() errors.Code { return errors.ErrCodeRead }

// Diagnostic is one problem reported by the parser.
type Diagnostic struct {
	Line    int    // 1-based
	Column  int    // 1-based, in bytes
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// SyntaxError reports that the parser found errors in a bundle file.
type SyntaxError struct {
	Path        string
	Diagnostics []Diagnostic
}

func (e *SyntaxError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return fmt.Sprintf("syntax error in %s: %s", e.Path, strings.Join(msgs, "; "))
}

func (e *SyntaxError) Code() errors.Code { return errors.ErrCodeSyntax }

// NotFoundError reports a file without a top-level weslBundle declaration.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s declaration in %s", BundleName, e.Path)
}

func (e *NotFoundError) Code() errors.Code { return errors.ErrCodeBundleNotFound }

// MissingFieldError reports a weslBundle object without a required field.
type MissingFieldError struct {
	Path   string
	Fields []string // "name", "edition" or both
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s in %s is missing %s", BundleName, e.Path, strings.Join(e.Fields, " and "))
}

func (e *MissingFieldError) Code() errors.Code { return errors.ErrCodeMissingField }

// Ensure the extraction errors carry codes.
var (
	_ errors.Coder = (*ReadError)(nil)
	_ errors.Coder = (*SyntaxError)(nil)
	_ errors.Coder = (*NotFoundError)(nil)
	_ errors.Coder = (*MissingFieldError)(nil)
)

// ErrorCode returns the code of an extraction error anywhere in err's chain,
// or "" when err is not one.
func ErrorCode(err error) errors.Code {
	return errors.GetCode(err)
}
