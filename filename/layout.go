package filename

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidLayout is returned by NewLayout for unusable base names or extensions.
	ErrInvalidLayout = errors.New("invalid partition layout")

	// ErrInvalidBounds is returned when a range has a negative minimum or a
	// maximum below its minimum.
	ErrInvalidBounds = errors.New("invalid partition bounds")

	// ErrAmbiguousFileName is returned when a candidate partition file carries
	// more than one dot before its extension.
	ErrAmbiguousFileName = errors.New("ambiguous partition file name")
)

// rangePattern matches the "<min>_<max>" remainder after "<base>_".
var rangePattern = regexp.MustCompile(`^(\d+)_(\d+)$`)

// Boundary is an inclusive logical index range.
type Boundary struct {
	Min int
	Max int
}

// Len returns the number of indices in the range.
func (b Boundary) Len() int {
	return b.Max - b.Min + 1
}

// Validate reports whether the boundary is well formed.
func (b Boundary) Validate() error {
	if b.Min < 0 {
		return fmt.Errorf("%w: negative min index %d", ErrInvalidBounds, b.Min)
	}
	if b.Max < b.Min {
		return fmt.Errorf("%w: max index %d below min index %d", ErrInvalidBounds, b.Max, b.Min)
	}
	return nil
}

func (b Boundary) String() string {
	return fmt.Sprintf("[%d,%d]", b.Min, b.Max)
}

// Layout is the naming convention shared by all partitions of one dataset:
//
//	<Dir>/<BaseName>_<min>_<max>.<Extension>
type Layout struct {
	Dir       string
	BaseName  string
	Extension string
}

// NewLayout validates and normalizes a layout.
// Trailing separators on dir and a leading dot on ext are removed.
func NewLayout(dir, baseName, ext string) (Layout, error) {
	l := Layout{
		Dir:       trimDir(dir),
		BaseName:  baseName,
		Extension: strings.TrimPrefix(ext, "."),
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks the base name and extension.
func (l Layout) Validate() error {
	switch {
	case l.BaseName == "":
		return fmt.Errorf("%w: empty base name", ErrInvalidLayout)
	case strings.ContainsAny(l.BaseName, `/\`):
		return fmt.Errorf("%w: base name %q contains a path separator", ErrInvalidLayout, l.BaseName)
	case strings.Contains(l.BaseName, "."):
		return fmt.Errorf("%w: base name %q contains a dot", ErrInvalidLayout, l.BaseName)
	case l.Extension == "":
		return fmt.Errorf("%w: empty extension", ErrInvalidLayout)
	case strings.ContainsAny(l.Extension, `/\`):
		return fmt.Errorf("%w: extension %q contains a path separator", ErrInvalidLayout, l.Extension)
	}
	return nil
}

// Path returns the partition file path for [min, max] without validating the bounds.
func (l Layout) Path(min, max int) string {
	name := l.BaseName + "_" + strconv.Itoa(min) + "_" + strconv.Itoa(max) + "." + l.Extension
	dir := trimDir(l.Dir)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Encode returns the partition file path for b after validating it.
func (l Layout) Encode(b Boundary) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	return l.Path(b.Min, b.Max), nil
}

// Prefix is the listing prefix that every partition path of the layout starts with.
func (l Layout) Prefix() string {
	name := l.BaseName + "_"
	dir := trimDir(l.Dir)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// Decode parses a partition file name. A bare base name is accepted as is; a
// name with a directory part must sit directly in Dir, so files in
// subdirectories are never partitions of the layout.
//
// ok is false for files that are not partitions of this layout; err is
// non-nil only for names that look like partitions but cannot be trusted.
func (l Layout) Decode(name string) (b Boundary, ok bool, err error) {
	dir, base := filepath.Split(filepath.FromSlash(name))
	if dir != "" && !l.contains(dir) {
		return Boundary{}, false, nil
	}

	prefix := l.BaseName + "_"
	suffix := "." + l.Extension
	if !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, suffix) {
		return Boundary{}, false, nil
	}

	stem := strings.TrimSuffix(base, suffix)
	if strings.Contains(stem, ".") {
		return Boundary{}, false, fmt.Errorf("%w: %q", ErrAmbiguousFileName, base)
	}

	m := rangePattern.FindStringSubmatch(strings.TrimPrefix(stem, prefix))
	if m == nil {
		return Boundary{}, false, nil
	}

	min, err := strconv.Atoi(m[1])
	if err != nil {
		return Boundary{}, false, fmt.Errorf("%w: %q: %w", ErrInvalidBounds, base, err)
	}
	max, err := strconv.Atoi(m[2])
	if err != nil {
		return Boundary{}, false, fmt.Errorf("%w: %q: %w", ErrInvalidBounds, base, err)
	}

	b = Boundary{Min: min, Max: max}
	if err := b.Validate(); err != nil {
		return Boundary{}, false, fmt.Errorf("%q: %w", base, err)
	}
	return b, true, nil
}

// contains reports whether dir names the layout directory.
func (l Layout) contains(dir string) bool {
	return filepath.Clean(dir) == filepath.Clean(filepath.FromSlash(l.Dir))
}

func trimDir(dir string) string {
	if dir == "" {
		return ""
	}
	trimmed := strings.TrimRight(dir, `/\`)
	if trimmed == "" {
		// the filesystem root itself
		return string(filepath.Separator)
	}
	return trimmed
}
