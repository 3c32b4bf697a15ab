package vision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"doc2html/internal/domain/entity"
)

func maskOf(w, h int, on ...image.Point) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for _, p := range on {
		m.SetGray(p.X, p.Y, color.Gray{Y: 255})
	}
	return m
}

func fill(m *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetGray(x, y, color.Gray{Y: 255})
		}
	}
}

func TestBinarize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.Black)
	img.Set(1, 0, color.White)
	img.Set(2, 0, color.Gray{Y: 150})

	mask := Binarize(img, 150)
	require.Equal(t, uint8(255), mask.GrayAt(0, 0).Y)
	require.Equal(t, uint8(0), mask.GrayAt(1, 0).Y)
	require.Equal(t, uint8(255), mask.GrayAt(2, 0).Y)
}

func TestFindExternalContours_Empty(t *testing.T) {
	require.Empty(t, FindExternalContours(maskOf(10, 10)))
}

func TestFindExternalContours_SinglePixel(t *testing.T) {
	contours := FindExternalContours(maskOf(10, 10, image.Pt(4, 6)))
	require.Len(t, contours, 1)
	require.Equal(t, entity.Contour{{X: 4, Y: 6}}, contours[0])
}

func TestFindExternalContours_RectangleSimplified(t *testing.T) {
	m := maskOf(30, 30)
	fill(m, image.Rect(5, 8, 20, 18))

	contours := FindExternalContours(m)
	require.Len(t, contours, 1)
	require.Len(t, contours[0], 4)
	require.ElementsMatch(t, entity.Contour{
		{X: 5, Y: 8}, {X: 19, Y: 8}, {X: 19, Y: 17}, {X: 5, Y: 17},
	}, contours[0])
	require.Equal(t, entity.BoundingBox{X: 5, Y: 8, Width: 15, Height: 10}, contours[0].BoundingBox())
}

func TestFindExternalContours_DiagonalNeighboursConnect(t *testing.T) {
	m := maskOf(10, 10, image.Pt(1, 1), image.Pt(2, 2), image.Pt(3, 3))

	contours := FindExternalContours(m)
	require.Len(t, contours, 1)
	require.Equal(t, entity.BoundingBox{X: 1, Y: 1, Width: 3, Height: 3}, contours[0].BoundingBox())
}

func TestFindExternalContours_TouchingFrame(t *testing.T) {
	m := maskOf(10, 10)
	fill(m, image.Rect(0, 0, 10, 4))
	fill(m, image.Rect(0, 7, 3, 10))

	contours := FindExternalContours(m)
	require.Len(t, contours, 2)
	require.Equal(t, entity.BoundingBox{X: 0, Y: 0, Width: 10, Height: 4}, contours[0].BoundingBox())
	require.Equal(t, entity.BoundingBox{X: 0, Y: 7, Width: 3, Height: 3}, contours[1].BoundingBox())
}

func TestFindExternalContours_HoleWithIsland(t *testing.T) {
	m := maskOf(50, 50)
	fill(m, image.Rect(5, 5, 45, 45))
	for y := 10; y < 40; y++ {
		for x := 10; x < 40; x++ {
			m.SetGray(x, y, color.Gray{})
		}
	}
	fill(m, image.Rect(20, 20, 30, 30))
	fill(m, image.Rect(47, 47, 49, 49))

	contours := FindExternalContours(m)
	require.Len(t, contours, 2)
	require.Equal(t, entity.BoundingBox{X: 5, Y: 5, Width: 40, Height: 40}, contours[0].BoundingBox())
	require.Equal(t, entity.BoundingBox{X: 47, Y: 47, Width: 2, Height: 2}, contours[1].BoundingBox())
}

func TestFindExternalContours_OffsetBounds(t *testing.T) {
	m := image.NewGray(image.Rect(100, 200, 120, 220))
	fill(m, image.Rect(105, 210, 110, 215))

	contours := FindExternalContours(m)
	require.Len(t, contours, 1)
	require.Equal(t, entity.BoundingBox{X: 105, Y: 210, Width: 5, Height: 5}, contours[0].BoundingBox())
}

func TestBinarize_IgnoresAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 20, G: 20, B: 20, A: 0})

	mask := Binarize(img, 150)
	require.Equal(t, uint8(0), mask.GrayAt(0, 0).Y)
	require.Equal(t, uint8(255), mask.GrayAt(1, 0).Y)
}
