package txtar

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithMarkerDetection controls whether content containing a section marker
// line is forced to base64. Disabling it is only safe for content that is
// never re-decoded, such as one-way exports.
func WithMarkerDetection(enabled bool) ClassifierOption {
	return func(c *Classifier) {
		c.markerDetection = enabled
	}
}

// WithUTF8Validation controls whether non-UTF-8 content is forced to base64.
// Disabling it treats all input as text regardless of encoding.
func WithUTF8Validation(enabled bool) ClassifierOption {
	return func(c *Classifier) {
		c.utf8Validation = enabled
	}
}
