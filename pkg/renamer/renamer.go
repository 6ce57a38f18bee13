// Package renamer reads one directory into entries and executes rename
// plans against it. All filesystem access goes through an afero.Fs.
package renamer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/sw33tLie/renumber/internal/utils"
	"github.com/sw33tLie/renumber/pkg/entry"
	"github.com/sw33tLie/renumber/pkg/plan"
)

// RenameError is returned when a rename fails partway through a plan.
// Renames completed before it are not rolled back.
type RenameError struct {
	From string
	To   string
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("renaming %s to %s: %v", filepath.Base(e.From), filepath.Base(e.To), e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// Scan lists dir without recursing. Regular files are parsed into entries;
// symlinks, directories and special files are left out. Entries whose
// metadata cannot be read are skipped. The second result holds the path of
// every name in dir, files or not, in lexicographic order.
func Scan(fsys afero.Fs, dir string, p *entry.Parser) ([]entry.Entry, []string, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	sort.Strings(names)

	var (
		entries []entry.Entry
		all     = make([]string, 0, len(names))
	)
	for _, name := range names {
		path := filepath.Join(dir, name)
		all = append(all, path)

		fi, err := lstat(fsys, path)
		if err != nil {
			utils.Log.Debugf("[scan] skipping %s: %v", name, err)
			continue
		}
		if !fi.Mode().IsRegular() {
			utils.Log.Debugf("[scan] skipping %s: not a regular file", name)
			continue
		}

		e := p.Entry(path)
		if e.HasNum {
			utils.Log.Debugf("[scan] %s: group %q number %d", name, e.GroupKey(), e.Num)
		} else {
			utils.Log.Debugf("[scan] %s: group %q unnumbered", name, e.GroupKey())
		}
		entries = append(entries, e)
	}
	return entries, all, nil
}

// lstat does not follow symlinks when the filesystem supports it.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		fi, _, err := l.LstatIfPossible(path)
		return fi, err
	}
	return fsys.Stat(path)
}

// Apply performs renames in order and writes "<old> -> <new>" to out after
// each one. It stops at the first failure and returns how many renames were
// done.
func Apply(fsys afero.Fs, renames []plan.Rename, out io.Writer) (int, error) {
	for i, r := range renames {
		if err := fsys.Rename(r.From, r.To); err != nil {
			return i, &RenameError{From: r.From, To: r.To, Err: err}
		}
		Report(out, r)
	}
	return len(renames), nil
}

// Report writes the progress line for r using file names only.
func Report(out io.Writer, r plan.Rename) {
	fmt.Fprintf(out, "%s -> %s\n", filepath.Base(r.From), filepath.Base(r.To))
}
