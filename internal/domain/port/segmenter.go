package port

import (
	"context"

	"doc2html/internal/domain/entity"
)

// RegionSegmenter интерфейс поиска визуальных элементов
type RegionSegmenter interface {
	// Segment находит визуальные элементы и возвращает их копии в порядке чтения
	Segment(ctx context.Context, imageData []byte) ([]entity.VisualElement, error)
}
