package state

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSeparator delimits segments in a state path such as "agents/location/coordinates".
const PathSeparator = "/"

// PathError describes a failed path lookup.
type PathError struct {
	Err     error
	Path    string
	Segment string
	Depth   int
}

func (e *PathError) Error() string {
	return fmt.Sprintf("resolve %q: segment %q (depth %d): %v", e.Path, e.Segment, e.Depth, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// SplitPath breaks a path into its segments.
func SplitPath(path string) []string {
	return strings.Split(path, PathSeparator)
}

// Resolve walks root following path. Mapping nodes are indexed by key,
// sequence nodes by integer index; negative indices count from the end.
func Resolve(root Node, path string) (Node, error) {
	if path == "" {
		return nil, &PathError{Err: ErrPathNotFound, Path: path}
	}

	cur := root
	for depth, seg := range SplitPath(path) {
		fail := func(err error) (Node, error) {
			return nil, &PathError{Err: err, Path: path, Segment: seg, Depth: depth}
		}

		if seg == "" {
			return fail(ErrPathNotFound)
		}

		switch n := cur.(type) {
		case Mapping:
			next, ok := n[seg]
			if !ok {
				return fail(ErrPathNotFound)
			}
			cur = next

		case Sequence:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return fail(fmt.Errorf("%w: sequence index must be an integer", ErrShape))
			}
			if idx < 0 {
				idx += len(n)
			}
			if idx < 0 || idx >= len(n) {
				return fail(fmt.Errorf("%w: index out of range [0,%d)", ErrPathNotFound, len(n)))
			}
			cur = n[idx]

		case nil:
			return fail(ErrPathNotFound)

		default:
			return fail(fmt.Errorf("%w: cannot index into %s", ErrShape, cur.Kind()))
		}
	}

	return cur, nil
}
