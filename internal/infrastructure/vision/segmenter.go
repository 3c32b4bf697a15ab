package vision

import (
	"image"
	"sort"

	"doc2html/internal/domain/entity"
	"doc2html/internal/domain/port"
)

// DefaultThreshold порог бинаризации по умолчанию (шкала 0..255).
const DefaultThreshold = 150

// Segmenter ищет тёмные области на светлом фоне и вырезает их из исходного изображения.
type Segmenter struct {
	Threshold uint8 // пиксели не светлее порога считаются передним планом
	MinArea   int   // области меньшей площади отбрасываются, 0 оставляет все
}

// NewSegmenter создаёт сегментатор с заданным порогом.
func NewSegmenter(threshold uint8) *Segmenter {
	return &Segmenter{Threshold: threshold}
}

// elements упорядочивает области и копирует соответствующие фрагменты img.
func (s *Segmenter) elements(img image.Image, boxes []entity.BoundingBox) []entity.VisualElement {
	bounds := img.Bounds()
	kept := make([]entity.BoundingBox, 0, len(boxes))
	for _, b := range boxes {
		if !b.Valid(bounds) || b.Area() < s.MinArea {
			continue
		}
		kept = append(kept, b)
	}

	// Порядок обхода контуров зависит от реализации, поэтому сортируем
	// сверху вниз, затем слева направо.
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y < kept[j].Y
		}
		return kept[i].X < kept[j].X
	})

	out := make([]entity.VisualElement, 0, len(kept))
	for _, b := range kept {
		out = append(out, entity.VisualElement{Box: b, Image: cropRGBA(img, b.Rect())})
	}
	return out
}

// cropRGBA копирует область r в новое непрозрачное изображение с началом координат (0,0).
func cropRGBA(img image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			dst.SetRGBA(x, y, opaqueAt(img, r.Min.X+x, r.Min.Y+y))
		}
	}
	return dst
}

// Проверка реализации интерфейса
var _ port.RegionSegmenter = (*Segmenter)(nil)
