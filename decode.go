package txtar

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/meigma/txtar/internal/scan"
)

// base64Tag marks a section body as base64-encoded when it appears as the
// first body line.
const base64Tag = "[.base64]"

// Decoder parses the textual archive format. Decoders are stateless and safe
// for concurrent use; the zero value is ready to use.
type Decoder struct{}

// NewDecoder returns a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses data with a default Decoder.
func Decode(data []byte) (*Archive, error) {
	return NewDecoder().Decode(data)
}

// Decode parses data into an Archive.
//
// Decoding is a single forward scan: preamble up to the first marker line,
// then one section per marker. Duplicate file names are preserved in order;
// end of input terminates the last body without error. On malformed input
// Decode returns a *DecodeError naming the file and input line, and no
// archive.
func (d *Decoder) Decode(data []byte) (*Archive, error) {
	a := New()
	sc := scan.New(data)

	// Preamble: everything before the first marker line, verbatim.
	next := ""
	for {
		line, ok := sc.Next()
		if !ok {
			a.preamble = data
			return a, nil
		}
		if name, isMarker := scan.MarkerName(string(line)); isMarker {
			next = name
			a.preamble = data[:sc.LineStart()]
			break
		}
	}

	for next != "" {
		f, following, err := d.decodeSection(sc, data, next)
		if err != nil {
			return nil, err
		}
		a.files = append(a.files, f)
		next = following
	}
	return a, nil
}

// decodeSection consumes one section body. It returns the decoded file and
// the name of the section that terminated it ("" at end of input).
func (d *Decoder) decodeSection(sc *scan.Scanner, data []byte, name string) (File, string, error) {
	line, ok := sc.Next()
	if !ok {
		return File{Name: name}, "", nil
	}
	if following, isMarker := scan.MarkerName(string(line)); isMarker {
		return File{Name: name}, following, nil
	}

	tag := chomp(line)
	if tag == base64Tag {
		return d.decodeBase64(sc, name)
	}
	if ref, isEdit, err := parseEditTag(tag); isEdit {
		if err != nil {
			return File{}, "", &DecodeError{Name: name, Line: sc.Line(), Err: err}
		}
		return d.decodeEdit(sc, name, ref)
	}
	return d.decodePlain(sc, data, name, sc.LineStart())
}

// decodePlain slices the body out of the input verbatim, from the first body
// line through the line preceding the next marker or end of input.
func (d *Decoder) decodePlain(sc *scan.Scanner, data []byte, name string, start int) (File, string, error) {
	for {
		line, ok := sc.Next()
		if !ok {
			return File{Name: name, Content: data[start:]}, "", nil
		}
		if following, isMarker := scan.MarkerName(string(line)); isMarker {
			return File{Name: name, Content: data[start:sc.LineStart()]}, following, nil
		}
	}
}

// decodeBase64 joins the body lines and decodes them as one base64 stream.
// The encoder's wrap width is not a contract: any line split is accepted,
// blank lines are skipped, and CRLF input is tolerated.
func (d *Decoder) decodeBase64(sc *scan.Scanner, name string) (File, string, error) {
	tagLine := sc.Line()
	var (
		joined    []byte
		lineEnds  []int // cumulative joined length after each body line
		lineNums  []int
		following string
	)
	for {
		line, ok := sc.Next()
		if !ok {
			break
		}
		if n, isMarker := scan.MarkerName(string(line)); isMarker {
			following = n
			break
		}
		l := chomp(line)
		if strings.TrimSpace(l) == "" {
			continue
		}
		joined = append(joined, l...)
		lineEnds = append(lineEnds, len(joined))
		lineNums = append(lineNums, sc.Line())
	}

	content := make([]byte, base64.StdEncoding.DecodedLen(len(joined)))
	n, err := base64.StdEncoding.Decode(content, joined)
	if err != nil {
		return File{}, "", &DecodeError{
			Name: name,
			Line: base64ErrorLine(err, lineEnds, lineNums, tagLine),
			Err:  fmt.Errorf("%w: %v", ErrInvalidBase64, err),
		}
	}
	return File{Name: name, Content: content[:n], Encoding: EncodingBase64}, following, nil
}

// base64ErrorLine maps a decode failure back to the input line holding the
// offending byte. CorruptInputError carries the byte offset into the joined
// body. With no body lines to blame, the tag line is reported.
func base64ErrorLine(err error, lineEnds, lineNums []int, tagLine int) int {
	if len(lineNums) == 0 {
		return tagLine
	}
	var corrupt base64.CorruptInputError
	if errors.As(err, &corrupt) {
		off := int(corrupt)
		for i, end := range lineEnds {
			if off < end {
				return lineNums[i]
			}
		}
	}
	return lineNums[len(lineNums)-1]
}

// decodeEdit accumulates the old block up to the new-content delimiter, then
// the new block up to the next marker or end of input. A "-- new --" line is
// the delimiter only on its first occurrence; afterwards it reads as an
// ordinary section marker again.
func (d *Decoder) decodeEdit(sc *scan.Scanner, name string, ref EditRef) (File, string, error) {
	var (
		oldB, newB strings.Builder
		inNew      bool
		following  string
	)
	for {
		line, ok := sc.Next()
		if !ok {
			if !inNew {
				return File{}, "", &DecodeError{Name: name, Line: sc.Line(), Err: ErrUnexpectedEOF}
			}
			break
		}
		l := chomp(line)
		if !inNew && l == newContentMarker {
			inNew = true
			continue
		}
		if n, isMarker := scan.MarkerName(l); isMarker {
			if !inNew {
				return File{}, "", &DecodeError{
					Name: name,
					Line: sc.Line(),
					Err:  fmt.Errorf("%w: missing %q delimiter", ErrInvalidEditSyntax, newContentMarker),
				}
			}
			following = n
			break
		}
		if inNew {
			newB.WriteString(l)
			newB.WriteByte('\n')
		} else {
			oldB.WriteString(l)
			oldB.WriteByte('\n')
		}
	}
	ref.OldContent = oldB.String()
	ref.NewContent = newB.String()
	return File{Name: name, Content: ref.render(), Encoding: EncodingPlain, Edit: &ref}, following, nil
}

// chomp returns line as a string with a single trailing CR removed, for
// CRLF-tolerant comparisons against tag and delimiter lines.
func chomp(line []byte) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return string(line)
}
