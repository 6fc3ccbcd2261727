package core

// errors.go defines the error taxonomy returned by the engine.
//
// Every failure visible to a caller is an *Error carrying one ErrorKind:
//
//	not_found     load target is not an existing directory
//	validation    file header is missing required columns
//	parse         file is unreadable, too large, empty, or malformed
//	precondition  empty inventory, or empty search term
//	input_format  non-numeric price or non-integral quantity bounds
//	export        report could not be written
//
// Use KindOf to classify an error and errors.Is against the sentinels
// (ErrEmptyInventory, ErrEmptyTerm) for the specific precondition.

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
	KindParse        ErrorKind = "parse"
	KindPrecondition ErrorKind = "precondition"
	KindInputFormat  ErrorKind = "input_format"
	KindExport       ErrorKind = "export"
)

// Error is a classified engine error.
type Error struct {
	Kind ErrorKind
	Op   string // Operation that failed: "load", "search", "export", ...
	Path string // File or directory involved, if any
	Msg  string
	Err  error // Underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind and message, so a sentinel wrapped with an
// Op still satisfies errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == e.Msg && t.Path == "" && t.Err == nil
}

var (
	// ErrEmptyInventory is returned by queries and reports when nothing is loaded.
	ErrEmptyInventory = &Error{Kind: KindPrecondition, Msg: "inventory is empty"}

	// ErrEmptyTerm is returned by name and category filters given a blank term.
	ErrEmptyTerm = &Error{Kind: KindPrecondition, Msg: "must specify a search term"}
)

// KindOf returns the kind of err, or "" if err is not an engine error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func notFoundError(op, path string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Path: path, Msg: "directory not found", Err: err}
}

func parseError(path, msg string, err error) *Error {
	return &Error{Kind: KindParse, Op: "load", Path: path, Msg: msg, Err: err}
}

func inputFormatError(op, msg string) *Error {
	return &Error{Kind: KindInputFormat, Op: op, Msg: msg}
}

func exportError(path string, err error) *Error {
	return &Error{Kind: KindExport, Op: "export", Path: path, Msg: "export failed", Err: err}
}

// cancelledError reports that ctx ended before op could finish.
func cancelledError(op string, err error) *Error {
	return &Error{Kind: KindPrecondition, Op: op, Msg: "load cancelled", Err: err}
}

// withOp returns a copy of sentinel tagged with an operation name.
func withOp(sentinel *Error, op string) *Error {
	e := *sentinel
	e.Op = op
	return &e
}
