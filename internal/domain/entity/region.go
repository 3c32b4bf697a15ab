package entity

import "image"

// BoundingBox прямоугольник визуального элемента в координатах исходного изображения
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// BoxFromRect строит BoundingBox из image.Rectangle.
func BoxFromRect(r image.Rectangle) BoundingBox {
	r = r.Canon()
	return BoundingBox{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rect возвращает прямоугольник в виде image.Rectangle
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Area возвращает площадь области в пикселях
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// Center возвращает координаты центра области
func (b BoundingBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Valid проверяет, что область непустая и лежит внутри bounds.
func (b BoundingBox) Valid(bounds image.Rectangle) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return b.Rect().In(bounds)
}

// Contour замкнутая граница, найденная в бинарной маске.
type Contour []image.Point

// BoundingBox возвращает минимальный охватывающий прямоугольник контура.
func (c Contour) BoundingBox() BoundingBox {
	if len(c) == 0 {
		return BoundingBox{}
	}
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := c[0].X, c[0].Y
	for _, p := range c[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// VisualElement вырезанный из исходного изображения фрагмент.
// Image владеет собственной копией пикселей, начало координат (0,0).
type VisualElement struct {
	Box   BoundingBox
	Image *image.RGBA
}
