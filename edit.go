package txtar

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/meigma/txtar/internal/scan"
)

// Edit section body grammar:
//
//	[edit:NAME]            target in this archive
//	[edit:ARCHIVE:NAME]    target in another archive
//	old content lines
//	-- new --
//	new content lines
//
// The "-- new --" delimiter is only special inside an edit body before it
// has been seen once; everywhere else a line of that shape is an ordinary
// section marker.

const (
	editTagPrefix = "[edit:"
	editTagSuffix = "]"

	// newContentMarker separates the old block from the new block inside an
	// edit body.
	newContentMarker = "-- new --"
)

// Tag returns the body-leading tag line for the edit, the inverse of
// parseEditTag.
func (e *EditRef) Tag() string {
	if e.SourceArchive != "" {
		return editTagPrefix + e.SourceArchive + ":" + e.TargetName + editTagSuffix
	}
	return editTagPrefix + e.TargetName + editTagSuffix
}

// Apply performs the edit's substitution on caller-supplied content. The old
// content must occur exactly once; zero or multiple occurrences fail with
// ErrEditApply. Resolving SourceArchive to obtain the content is the
// caller's concern.
func (e *EditRef) Apply(content []byte) ([]byte, error) {
	old := []byte(e.OldContent)
	if len(old) == 0 {
		return nil, fmt.Errorf("%w: empty old content for %q", ErrEditApply, e.TargetName)
	}
	switch n := bytes.Count(content, old); {
	case n == 0:
		return nil, fmt.Errorf("%w: old content not found in %q", ErrEditApply, e.TargetName)
	case n > 1:
		return nil, fmt.Errorf("%w: old content matches %d times in %q", ErrEditApply, n, e.TargetName)
	}
	return bytes.Replace(content, old, []byte(e.NewContent), 1), nil
}

// validateBlocks rejects old/new content that the edit body grammar cannot
// carry. A marker-shaped line in the old block would read as a section
// boundary with a missing delimiter, and one in the new block (including
// another "-- new --") would terminate the section early.
func (e *EditRef) validateBlocks() error {
	for _, block := range []string{e.OldContent, e.NewContent} {
		sc := scan.New([]byte(block))
		for {
			line, ok := sc.Next()
			if !ok {
				break
			}
			if _, isMarker := scan.MarkerName(chomp(line)); isMarker {
				return fmt.Errorf("%w: edit content contains marker line %q", ErrInvalidEditSyntax, chomp(line))
			}
		}
	}
	return nil
}

// render returns the canonical body for the edit: tag line, old content, the
// new-content delimiter, new content. Non-empty blocks are newline-
// terminated.
func (e *EditRef) render() []byte {
	var buf bytes.Buffer
	buf.WriteString(e.Tag())
	buf.WriteByte('\n')
	writeBlock(&buf, e.OldContent)
	buf.WriteString(newContentMarker)
	buf.WriteByte('\n')
	writeBlock(&buf, e.NewContent)
	return buf.Bytes()
}

func writeBlock(buf *bytes.Buffer, block string) {
	buf.WriteString(block)
	if block != "" && !strings.HasSuffix(block, "\n") {
		buf.WriteByte('\n')
	}
}

// parseEditTag parses a body-leading edit tag line. ok is false when line is
// not an edit tag at all; err is non-nil for a tag with an empty field. With
// two fields the archive comes first, and only the first colon splits, so
// target names may themselves contain colons.
func parseEditTag(line string) (ref EditRef, ok bool, err error) {
	if !strings.HasPrefix(line, editTagPrefix) || !strings.HasSuffix(line, editTagSuffix) {
		return EditRef{}, false, nil
	}
	inner := line[len(editTagPrefix) : len(line)-len(editTagSuffix)]
	archive, name, twoPart := strings.Cut(inner, ":")
	if twoPart {
		if archive == "" || name == "" {
			return EditRef{}, true, fmt.Errorf("%w: empty field in %q", ErrInvalidEditSyntax, line)
		}
		return EditRef{SourceArchive: archive, TargetName: name}, true, nil
	}
	if inner == "" {
		return EditRef{}, true, fmt.Errorf("%w: empty target in %q", ErrInvalidEditSyntax, line)
	}
	return EditRef{TargetName: inner}, true, nil
}
