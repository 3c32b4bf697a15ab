package port

import (
	"context"

	"doc2html/internal/domain/entity"
)

// TextRecognizer интерфейс внешнего сервиса распознавания текста
type TextRecognizer interface {
	// Recognize отправляет изображение в сервис.
	// Ошибка транспорта возвращается как error, ошибка сервиса в RecognitionResult.Error.
	Recognize(ctx context.Context, imageData []byte) (*entity.RecognitionResult, error)
}
