//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"doc2html/internal/domain/entity"
)

// Segment находит визуальные элементы без OpenCV.
func (s *Segmenter) Segment(ctx context.Context, imageData []byte) ([]entity.VisualElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := decodeImage(imageData)
	if err != nil {
		return nil, err
	}

	mask := Binarize(img, s.Threshold)
	contours := FindExternalContours(mask)

	boxes := make([]entity.BoundingBox, 0, len(contours))
	for _, c := range contours {
		boxes = append(boxes, c.BoundingBox())
	}
	return s.elements(img, boxes), nil
}
