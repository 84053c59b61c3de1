package txtar

import (
	"unicode/utf8"

	"github.com/meigma/txtar/internal/scan"
)

// Classification is the classifier's verdict on a byte sequence.
type Classification struct {
	// Binary reports whether the content must be stored as base64 to
	// survive a round trip.
	Binary bool

	// MarkerCollision reports whether the content is valid UTF-8 that
	// contains a line matching the section marker pattern.
	MarkerCollision bool

	// Reason explains the verdict.
	Reason BinaryReason
}

// Classifier decides whether content can be stored as raw text lines or must
// be base64-encoded. Classification is pure: the same input always yields
// the same verdict. Both the encoder and Archive.Validate consult it, which
// keeps storage decisions derived from content rather than cached tags.
type Classifier struct {
	markerDetection bool
	utf8Validation  bool
}

// NewClassifier returns a classifier with the given options applied. By
// default both marker detection and UTF-8 validation are enabled.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		markerDetection: true,
		utf8Validation:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify reports whether data must be stored as base64 and why.
func (c *Classifier) Classify(data []byte) Classification {
	if c.utf8Validation && !utf8.Valid(data) {
		return Classification{Binary: true, Reason: ReasonInvalidUTF8}
	}
	if c.markerDetection {
		if containsMarkerLine(data) {
			return Classification{Binary: true, MarkerCollision: true, Reason: ReasonMarkerCollision}
		}
		if leadsWithBodyTag(data) {
			return Classification{Binary: true, Reason: ReasonTagCollision}
		}
	}
	return Classification{}
}

// containsMarkerLine reports whether any line of data matches the section
// marker pattern.
func containsMarkerLine(data []byte) bool {
	sc := scan.New(data)
	for {
		line, ok := sc.Next()
		if !ok {
			return false
		}
		if _, isMarker := scan.MarkerName(string(line)); isMarker {
			return true
		}
	}
}

// leadsWithBodyTag reports whether the first line of data is a body tag. A
// tag line is only meaningful as the first body line, so only the first line
// can collide.
func leadsWithBodyTag(data []byte) bool {
	line, ok := scan.New(data).Next()
	if !ok {
		return false
	}
	l := chomp(line)
	if l == base64Tag {
		return true
	}
	_, isTag, _ := parseEditTag(l)
	return isTag
}

// defaultClassifier backs the package-level Classify and the zero-value
// encoder.
var defaultClassifier = NewClassifier()

// Classify classifies data with the default configuration.
func Classify(data []byte) Classification {
	return defaultClassifier.Classify(data)
}
