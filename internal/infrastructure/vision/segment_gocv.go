//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"

	"gocv.io/x/gocv"

	"doc2html/internal/domain/entity"
)

// Segment находит визуальные элементы через OpenCV.
func (s *Segmenter) Segment(ctx context.Context, imageData []byte) ([]entity.VisualElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(gray, &thresh, float32(s.Threshold), 255, gocv.ThresholdBinaryInv)

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	boxes := make([]entity.BoundingBox, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		boxes = append(boxes, entity.BoxFromRect(gocv.BoundingRect(contours.At(i))))
	}

	// Фрагменты режем из исходного изображения, а не из маски.
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}
	return s.elements(img, boxes), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}
