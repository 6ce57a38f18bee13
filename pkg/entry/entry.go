// Package entry splits file names into the parts renumbering works with:
// a stable base, an optional trailing number and an optional extension.
package entry

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// separators may sit between a base and its number. At most one is stripped
// when deriving a group key.
const separators = "_- "

// Entry represents a single file considered for renumbering.
type Entry struct {
	// Path is the full path at scan time.
	Path string

	Base   string
	Ext    string // "" when absent
	Num    uint64
	HasNum bool

	// Digits is the length of the original digit run, 0 when absent.
	Digits int
}

// Name returns the file name component of the entry's path.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// GroupKey returns the base with one trailing separator removed.
// Entries with equal group keys form one numbered sequence.
func (e Entry) GroupKey() string {
	if e.Separator() != "" {
		return e.Base[:len(e.Base)-1]
	}
	return e.Base
}

// Separator returns the trailing separator of the base, or "".
func (e Entry) Separator() string {
	if e.Base == "" {
		return ""
	}
	last := e.Base[len(e.Base)-1:]
	if strings.Contains(separators, last) {
		return last
	}
	return ""
}

// Parser decomposes file names. Build one with NewParser and share it.
type Parser struct {
	re *regexp.Regexp
}

// NewParser compiles the file name pattern.
//
// The base is the shortest prefix ending in a non-digit after which only an
// optional digit run and an optional dot-suffix remain.
func NewParser() *Parser {
	return &Parser{re: regexp.MustCompile(`^(.*?\D)(\d+)?(\..+?)?$`)}
}

// Parse splits name into base, number and extension. A name without any
// non-digit character (e.g. "001") does not match and is returned whole as
// the base. Digit runs that overflow uint64 are dropped and the number is
// reported as absent.
func (p *Parser) Parse(name string) (base string, num uint64, hasNum bool, ext string) {
	base, num, hasNum, ext, _ = p.parse(name)
	return base, num, hasNum, ext
}

func (p *Parser) parse(name string) (base string, num uint64, hasNum bool, ext string, digits int) {
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return name, 0, false, "", 0
	}
	base, ext = m[1], m[3]
	if m[2] != "" {
		n, err := strconv.ParseUint(m[2], 10, 64)
		if err == nil {
			num, hasNum, digits = n, true, len(m[2])
		}
	}
	return base, num, hasNum, ext, digits
}

// Entry parses the file name of path into an Entry.
func (p *Parser) Entry(path string) Entry {
	base, num, hasNum, ext, digits := p.parse(filepath.Base(path))
	return Entry{
		Path:   path,
		Base:   base,
		Ext:    ext,
		Num:    num,
		HasNum: hasNum,
		Digits: digits,
	}
}
