package recognition

import (
	"fmt"

	"doc2html/internal/domain/port"
)

const (
	KindVision    = "vision"
	KindTesseract = "tesseract"
)

// New создаёт распознаватель по названию.
func New(kind string, vision VisionConfig, languages []string) (port.TextRecognizer, error) {
	switch kind {
	case KindVision, "":
		return NewVisionClient(vision)
	case KindTesseract:
		return NewTesseract(languages...), nil
	default:
		return nil, fmt.Errorf("unknown recognizer: %s", kind)
	}
}

var _ port.TextRecognizer = (*Tesseract)(nil)
