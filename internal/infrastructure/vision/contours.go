package vision

import (
	"image"
	"image/color"

	"doc2html/internal/domain/entity"
)

// Binarize переводит изображение в оттенки серого и применяет инвертированный порог:
// пиксели не светлее threshold становятся 255, остальные 0.
// Альфа-канал не учитывается, как при чтении в OpenCV с IMReadColor.
func Binarize(img image.Image, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	mask := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if luminance(opaqueAt(img, x, y)) <= threshold {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

// opaqueAt возвращает цвет пикселя без премультипликации с отброшенной альфой.
func opaqueAt(img image.Image, x, y int) color.RGBA {
	var c color.NRGBA
	if n, ok := img.(*image.NRGBA); ok {
		c = n.NRGBAAt(x, y)
	} else {
		c = color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// luminance яркость по весам ITU-R 601 (0.299, 0.587, 0.114).
func luminance(c color.RGBA) uint8 {
	y := (19595*uint32(c.R) + 38470*uint32(c.G) + 7471*uint32(c.B) + 1<<15) >> 16
	return uint8(y)
}

// Соседи пикселя против часовой стрелки, начиная с востока (ось Y направлена вниз).
var neighbors = [8]image.Point{
	{X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: -1},
	{X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// FindExternalContours находит внешние границы ненулевых областей маски
// (обход границ Suzuki–Abe). Границы, вложенные в дырки других областей,
// не возвращаются. Точки на прямых участках отбрасываются.
func FindExternalContours(mask *image.Gray) []entity.Contour {
	bounds := mask.Bounds()
	// Рамка из нулей вокруг маски: граница изображения считается фоном.
	w, h := bounds.Dx()+2, bounds.Dy()+2
	l := &labels{w: w, f: make([]int32, w*h)}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if mask.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y != 0 {
				l.f[(y+1)*w+x+1] = 1
			}
		}
	}

	// Граница 1 это рамка, она считается дыркой.
	hole := []bool{false, true}
	parent := []int32{0, 0}
	nbd := int32(1)
	offset := bounds.Min.Sub(image.Pt(1, 1))

	var contours []entity.Contour
	for y := 1; y < h-1; y++ {
		lnbd := int32(1)
		for x := 1; x < w-1; x++ {
			p := image.Pt(x, y)
			v := l.get(p)
			if v == 0 {
				continue
			}

			var from image.Point
			isHole := false
			switch {
			case v == 1 && l.get(image.Pt(x-1, y)) == 0:
				from = image.Pt(x-1, y)
			case v >= 1 && l.get(image.Pt(x+1, y)) == 0:
				from = image.Pt(x+1, y)
				isHole = true
				if v > 1 {
					lnbd = v
				}
			default:
				if v != 1 {
					lnbd = abs32(v)
				}
				continue
			}

			nbd++
			par := lnbd
			if isHole == hole[lnbd] {
				par = parent[lnbd]
			}
			hole = append(hole, isHole)
			parent = append(parent, par)

			pts := l.follow(p, from, nbd)
			if !isHole && par == 1 {
				c := simplify(pts)
				for i := range c {
					c[i] = c[i].Add(offset)
				}
				contours = append(contours, c)
			}

			if v := l.get(p); v != 1 {
				lnbd = abs32(v)
			}
		}
	}
	return contours
}

// labels метки пикселей с рамкой.
type labels struct {
	w int
	f []int32
}

func (l *labels) get(p image.Point) int32 {
	return l.f[p.Y*l.w+p.X]
}

func (l *labels) set(p image.Point, v int32) {
	l.f[p.Y*l.w+p.X] = v
}

// follow обходит границу, начинающуюся в start, помечая её номером nbd.
func (l *labels) follow(start, from image.Point, nbd int32) []image.Point {
	d0 := direction(start, from)
	first, found := start, false
	for k := 0; k < 8; k++ {
		q := start.Add(neighbors[(d0-k+8)%8])
		if l.get(q) != 0 {
			first, found = q, true
			break
		}
	}
	if !found {
		// Одиночный пиксель.
		l.set(start, -nbd)
		return []image.Point{start}
	}

	var pts []image.Point
	prev, cur := first, start
	for {
		d := direction(cur, prev)
		eastZero := false
		var nxt image.Point
		for k := 1; k <= 8; k++ {
			dk := (d + k) % 8
			q := cur.Add(neighbors[dk])
			if l.get(q) != 0 {
				nxt = q
				break
			}
			if dk == 0 {
				eastZero = true
			}
		}

		switch {
		case eastZero:
			l.set(cur, -nbd)
		case l.get(cur) == 1:
			l.set(cur, nbd)
		}
		pts = append(pts, cur)

		if nxt == start && cur == first {
			return pts
		}
		prev, cur = cur, nxt
	}
}

// direction возвращает индекс соседа to относительно from.
func direction(from, to image.Point) int {
	d := to.Sub(from)
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return 0
}

// simplify убирает промежуточные точки прямых участков замкнутой ломаной.
func simplify(pts []image.Point) entity.Contour {
	n := len(pts)
	if n < 3 {
		return append(entity.Contour(nil), pts...)
	}
	out := make(entity.Contour, 0, n)
	for i, p := range pts {
		prev := pts[(i-1+n)%n]
		nxt := pts[(i+1)%n]
		if p.Sub(prev) == nxt.Sub(p) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		out = append(out, pts[0])
	}
	return out
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
