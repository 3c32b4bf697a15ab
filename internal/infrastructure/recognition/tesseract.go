//go:build tesseract
// +build tesseract

package recognition

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"doc2html/internal/domain/entity"
)

// Tesseract распознаёт текст локально через gosseract.
type Tesseract struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseract создаёт локальный распознаватель.
func NewTesseract(languages ...string) *Tesseract {
	return &Tesseract{languages: languages, clientFactory: gosseract.NewClient}
}

// Recognize возвращает текст страницы первой аннотацией, затем слова с их областями.
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := t.clientFactory()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		// Ошибка движка это ответ сервиса, а не сбой транспорта.
		return &entity.RecognitionResult{Error: &entity.ErrorInfo{Message: err.Error()}}, nil
	}
	text = strings.TrimSpace(text)

	result := &entity.RecognitionResult{}
	if text == "" {
		return result, nil
	}
	result.TextAnnotations = append(result.TextAnnotations, entity.TextAnnotation{Description: text})

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}
	for _, b := range boxes {
		box := entity.BoxFromRect(b.Box)
		result.TextAnnotations = append(result.TextAnnotations, entity.TextAnnotation{
			Description: b.Word,
			Box:         &box,
		})
	}
	return result, nil
}
