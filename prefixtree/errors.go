package prefixtree

import (
	"errors"
	"fmt"
)

// ErrInvalidPath matches every *InvalidPathError.
var ErrInvalidPath = errors.New("prefixtree: invalid path")

// InvalidPathError reports a path Insert refused. The tree is left as it was.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("prefixtree: invalid path: %s", e.Reason)
	}
	return fmt.Sprintf("prefixtree: invalid path %q: %s", e.Path, e.Reason)
}

func (e *InvalidPathError) Is(target error) bool { return target == ErrInvalidPath }
