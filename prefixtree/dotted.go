package prefixtree

import (
	"iter"
	"strings"
)

// Separator splits dotted identifiers such as plugin.widget.action.
const Separator = "."

// Split returns the segments of a dotted identifier.
func Split(id string) []string {
	if id == "" {
		return nil
	}
	return strings.Split(id, Separator)
}

func Join(path []string) string {
	return strings.Join(path, Separator)
}

// InsertDotted inserts a dotted identifier. Empty identifiers and empty
// segments ("a..b", ".a") are rejected before the tree is touched.
func InsertDotted(t *Tree[string], id string) error {
	segs := Split(id)
	if len(segs) == 0 {
		return &InvalidPathError{Path: id, Reason: "empty path"}
	}
	for _, seg := range segs {
		if seg == "" {
			return &InvalidPathError{Path: id, Reason: "empty segment"}
		}
	}
	return t.Insert(segs...)
}

// Dotted enumerates seq as dotted identifiers.
func Dotted(seq iter.Seq[[]string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range seq {
			if !yield(Join(path)) {
				return
			}
		}
	}
}
