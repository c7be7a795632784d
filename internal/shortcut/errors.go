package shortcut

import "errors"

// ErrInvalidArgument reports a caller programming error: a nil or
// non-comparable handler, a blank or unparsable keystroke, or a nil window.
// It is always wrapped with detail; test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
