package txtar

import (
	"fmt"
	"slices"
	"strings"

	"github.com/meigma/txtar/internal/scan"
)

// Archive is an ordered collection of named file sections plus an optional
// free-text preamble. File order is significant and preserved through
// encode/decode. The zero value is an empty archive.
type Archive struct {
	preamble []byte
	files    []File
}

// New returns an empty archive.
func New() *Archive {
	return &Archive{}
}

// AddFile appends f to the archive. Duplicate names are permitted, matching
// the permissiveness of the wire format; callers wanting strict validation
// use HasDuplicateNames. The Encoding tag is re-derived from Content so it
// cannot start out stale.
func (a *Archive) AddFile(f File) error {
	if err := checkName(f.Name); err != nil {
		return err
	}
	if f.Edit == nil && Classify(f.Content).Binary {
		f.Encoding = EncodingBase64
	}
	a.files = append(a.files, f)
	return nil
}

// AddEdit appends a plain file carrying ref, named after the edit target.
// Content is set to the canonical rendering of the edit so the file can
// always be re-encoded without resolving the reference. Old and new content
// must not contain marker-shaped lines; the edit body grammar cannot carry
// them.
func (a *Archive) AddEdit(ref EditRef) error {
	if ref.TargetName == "" {
		return fmt.Errorf("%w: empty edit target", ErrInvalidName)
	}
	if err := ref.validateBlocks(); err != nil {
		return err
	}
	r := ref
	return a.AddFile(File{
		Name:     r.TargetName,
		Content:  r.render(),
		Encoding: EncodingPlain,
		Edit:     &r,
	})
}

// Remove deletes every file named name, reporting whether any was removed.
func (a *Archive) Remove(name string) bool {
	kept := a.files[:0]
	removed := false
	for _, f := range a.files {
		if f.Name == name {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	a.files = kept
	return removed
}

// Files returns the files in archive order. The slice is a copy; the file
// contents are shared with the archive.
func (a *Archive) Files() []File {
	return slices.Clone(a.files)
}

// Len returns the number of files in the archive.
func (a *Archive) Len() int {
	return len(a.files)
}

// Find returns a pointer to the first file named name, or nil. The pointer
// remains valid until the archive's file sequence is next mutated.
func (a *Archive) Find(name string) *File {
	for i := range a.files {
		if a.files[i].Name == name {
			return &a.files[i]
		}
	}
	return nil
}

// HasDuplicateNames reports whether two files share a name. The raw format
// tolerates duplicates; resolution policy belongs to the caller.
func (a *Archive) HasDuplicateNames() bool {
	seen := make(map[string]struct{}, len(a.files))
	for _, f := range a.files {
		if _, dup := seen[f.Name]; dup {
			return true
		}
		seen[f.Name] = struct{}{}
	}
	return false
}

// Preamble returns the free text preceding the first section marker.
func (a *Archive) Preamble() []byte {
	return a.preamble
}

// SetPreamble replaces the preamble.
func (a *Archive) SetPreamble(text []byte) {
	a.preamble = text
}

// Validate checks every file name and that no file claims EncodingPlain for
// content the classifier deems binary. A plain tag on binary content would
// not survive a round trip, so it fails with ErrBinaryContent.
func (a *Archive) Validate() error {
	for i := range a.files {
		f := &a.files[i]
		if err := checkName(f.Name); err != nil {
			return err
		}
		if f.Edit != nil {
			if err := f.Edit.validateBlocks(); err != nil {
				return fmt.Errorf("%q: %w", f.Name, err)
			}
			continue
		}
		if f.Encoding == EncodingPlain {
			if cl := Classify(f.Content); cl.Binary {
				return fmt.Errorf("%w: %q (%s)", ErrBinaryContent, f.Name, cl.Reason)
			}
		}
	}
	return nil
}

// checkName validates a file name for use in a section marker line.
func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidName, name)
	case name != strings.TrimSpace(name):
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	case strings.Contains(name, scan.MarkerPrefix) || strings.Contains(name, scan.MarkerSuffix):
		return fmt.Errorf("%w: %q contains the marker sequence", ErrInvalidName, name)
	}
	return nil
}
