package txtar

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithBase64LineWidth sets the wrap width for emitted base64 bodies.
// Widths <= 0 keep the default.
func WithBase64LineWidth(width int) EncoderOption {
	return func(e *Encoder) {
		if width > 0 {
			e.lineWidth = width
		}
	}
}

// WithEncoderClassifier sets the classifier consulted for per-file storage
// decisions. Pairing a permissive classifier with re-decoding breaks round
// trips; see WithMarkerDetection.
func WithEncoderClassifier(c *Classifier) EncoderOption {
	return func(e *Encoder) {
		e.classifier = c
	}
}
