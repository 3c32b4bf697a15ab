//go:build !tesseract
// +build !tesseract

package recognition

import (
	"context"
	"errors"

	"doc2html/internal/domain/entity"
)

// Tesseract заглушка для сборки без тега tesseract.
type Tesseract struct {
	languages []string
}

// NewTesseract создаёт распознаватель-заглушку.
func NewTesseract(languages ...string) *Tesseract {
	return &Tesseract{languages: languages}
}

// Recognize возвращает ошибку, если сборка без тега tesseract.
func (t *Tesseract) Recognize(context.Context, []byte) (*entity.RecognitionResult, error) {
	return nil, errors.New("tesseract build tag is not enabled")
}
