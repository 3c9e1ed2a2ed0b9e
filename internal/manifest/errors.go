package manifest

import "errors"

var (
	// ErrUnsupportedFormat: the dependency is declared in a shape that
	// cannot be rewritten. Nothing is written.
	ErrUnsupportedFormat = errors.New("unsupported tauri dependency format")

	// ErrInvalidWorkspace: [workspace] exists but members is missing or is
	// not an array of strings.
	ErrInvalidWorkspace = errors.New("invalid workspace members")
)
