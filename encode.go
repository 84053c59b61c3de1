package txtar

import (
	"bytes"
	"encoding/base64"

	"github.com/meigma/txtar/internal/scan"
)

// DefaultBase64LineWidth is the wrap width for emitted base64 bodies. The
// width is a formatting choice, not a contract: the decoder accepts any
// split.
const DefaultBase64LineWidth = 76

// Encoder serializes an Archive to the canonical textual format. The zero
// value uses the default classifier and wrap width.
type Encoder struct {
	classifier *Classifier
	lineWidth  int
}

// NewEncoder returns an Encoder with the given options applied.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode serializes a with a default Encoder.
func Encode(a *Archive) ([]byte, error) {
	return NewEncoder().Encode(a)
}

// Encode serializes a. The preamble is emitted verbatim (newline-terminated
// if needed), then each file in order. Storage form per file comes from the
// classifier, never from a stale Encoding tag: content that is not valid
// UTF-8, that contains a marker-pattern line, or whose first line is a body
// tag is emitted as base64 so it survives a round trip. Every body is
// newline-terminated.
func (e *Encoder) Encode(a *Archive) ([]byte, error) {
	var buf bytes.Buffer
	if pre := a.preamble; len(pre) > 0 {
		buf.Write(pre)
		if pre[len(pre)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	for i := range a.files {
		if err := e.encodeFile(&buf, &a.files[i]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (e *Encoder) encodeFile(buf *bytes.Buffer, f *File) error {
	if err := checkName(f.Name); err != nil {
		return &EncodeError{Name: f.Name, Err: err}
	}
	buf.WriteString(scan.MarkerPrefix)
	buf.WriteString(f.Name)
	buf.WriteString(scan.MarkerSuffix)
	buf.WriteByte('\n')

	if f.Edit != nil {
		if err := f.Edit.validateBlocks(); err != nil {
			return &EncodeError{Name: f.Name, Err: err}
		}
		buf.Write(f.Edit.render())
		return nil
	}

	cl := e.classifier
	if cl == nil {
		cl = defaultClassifier
	}
	if cl.Classify(f.Content).Binary {
		buf.WriteString(base64Tag)
		buf.WriteByte('\n')
		e.writeBase64(buf, f.Content)
		return nil
	}

	buf.Write(f.Content)
	if n := len(f.Content); n > 0 && f.Content[n-1] != '\n' {
		buf.WriteByte('\n')
	}
	return nil
}

func (e *Encoder) writeBase64(buf *bytes.Buffer, content []byte) {
	enc := base64.StdEncoding.EncodeToString(content)
	width := e.lineWidth
	if width <= 0 {
		width = DefaultBase64LineWidth
	}
	for len(enc) > width {
		buf.WriteString(enc[:width])
		buf.WriteByte('\n')
		enc = enc[width:]
	}
	if len(enc) > 0 {
		buf.WriteString(enc)
		buf.WriteByte('\n')
	}
}
