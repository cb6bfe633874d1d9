package versync

import (
	"errors"
	"fmt"
)

// Exit codes shared by all versync commands. Scripts depend on these staying
// stable across releases.
const (
	// ExitSuccess: all versions match (check) or the operation succeeded.
	ExitSuccess = 0
	// ExitMismatch: version divergence detected (check only).
	ExitMismatch = 1
	// ExitError: execution error (config error, parse failure, git failure).
	ExitError = 2
)

var (
	// ErrKeyNotFound is returned when a dotted key path is absent from a
	// document.
	ErrKeyNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned when a key path resolves through or to a
	// value of the wrong type: a non-mapping intermediate segment, or a
	// terminal value that is not a string.
	ErrTypeMismatch = errors.New("value is not a string")

	// ErrUnknownFormat is returned when a target's format is not given and
	// cannot be inferred from its file extension.
	ErrUnknownFormat = errors.New("unknown file format")

	// ErrVersionMismatch is returned by tag when targets are out of sync.
	ErrVersionMismatch = errors.New("version mismatch detected, run 'versync check' for details")

	// ErrNotRepository is returned when git operations run outside a work tree.
	ErrNotRepository = errors.New("not inside a git repository")

	// ErrDirtyWorkTree is returned when the working tree has unstaged changes.
	ErrDirtyWorkTree = errors.New("working tree is not clean")

	// ErrDirtyIndex is returned when the index has staged changes.
	ErrDirtyIndex = errors.New("index has staged changes")

	// ErrTagExists is returned when the planned tag name is already taken.
	ErrTagExists = errors.New("tag already exists")
)

// ParseError reports malformed content in a target document.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
