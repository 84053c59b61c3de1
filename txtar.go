package txtar

// Encoding identifies how a file body is stored in the serialized archive.
type Encoding uint8

const (
	// EncodingPlain stores content verbatim as text lines.
	EncodingPlain Encoding = iota

	// EncodingBase64 stores content as base64 lines, decoded back to the
	// original bytes on read.
	EncodingBase64
)

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "plain"
	case EncodingBase64:
		return "base64"
	default:
		return "unknown"
	}
}

// BinaryReason explains why the classifier forced base64 storage.
type BinaryReason uint8

const (
	// ReasonNone means the content can be stored as plain text.
	ReasonNone BinaryReason = iota

	// ReasonMarkerCollision means the content is valid UTF-8 but contains a
	// line matching the section marker pattern; stored plain it would be
	// mis-parsed as a section header on decode.
	ReasonMarkerCollision

	// ReasonInvalidUTF8 means the content is not valid UTF-8 text.
	ReasonInvalidUTF8

	// ReasonTagCollision means the content's first line matches a body tag
	// ([.base64] or an edit tag); stored plain it would be consumed as a tag
	// on decode instead of read back as content.
	ReasonTagCollision
)

func (r BinaryReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMarkerCollision:
		return "marker collision"
	case ReasonInvalidUTF8:
		return "invalid utf-8"
	case ReasonTagCollision:
		return "tag collision"
	default:
		return "unknown"
	}
}

// File represents one archived unit.
type File struct {
	// Name is the file's path relative to the archive root (e.g.
	// "src/main.go"). Slashes denote virtual subdirectories.
	Name string

	// Content is the raw body, semantically text or binary.
	Content []byte

	// Encoding records how the body was stored when the file was decoded.
	// The tag is advisory: at encode time the classifier re-derives the
	// storage form from Content and a stale tag is ignored.
	Encoding Encoding

	// Edit is set when the section represents an edit operation rather
	// than literal content.
	Edit *EditRef
}

// EditRef references a named section, optionally in another archive,
// together with an old/new content pair describing a text substitution.
//
// The reference is weak: resolving SourceArchive to an actual archive is the
// caller's concern, not the codec's.
type EditRef struct {
	// TargetName names the section the edit applies to.
	TargetName string

	// SourceArchive identifies the archive holding the target. Empty means
	// the enclosing archive.
	SourceArchive string

	// OldContent is the text to be replaced.
	OldContent string

	// NewContent is the replacement text.
	NewContent string
}
