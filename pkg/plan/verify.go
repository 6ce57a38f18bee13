package plan

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrCollision is matched by every *CollisionError.
var ErrCollision = errors.New("rename collision")

// CollisionError reports a rename whose source is gone or whose target would
// still be occupied when the rename runs.
type CollisionError struct {
	From string
	To   string
	// Missing is set when the source no longer exists at that point.
	Missing bool
}

func (e *CollisionError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s -> %s: source already renamed", filepath.Base(e.From), filepath.Base(e.To))
	}
	return fmt.Sprintf("%s -> %s: target already exists", filepath.Base(e.From), filepath.Base(e.To))
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// Verify replays renames over existing, the full paths present in the
// directory before any rename, and fails on the first rename that would
// overwrite a file or whose source was already moved. Nothing touches the
// filesystem.
func Verify(renames []Rename, existing []string) error {
	present := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		present[filepath.Clean(p)] = struct{}{}
	}

	for _, r := range renames {
		from, to := filepath.Clean(r.From), filepath.Clean(r.To)
		if _, ok := present[from]; !ok {
			return &CollisionError{From: r.From, To: r.To, Missing: true}
		}
		if _, ok := present[to]; ok {
			return &CollisionError{From: r.From, To: r.To}
		}
		delete(present, from)
		present[to] = struct{}{}
	}
	return nil
}
