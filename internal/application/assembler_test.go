package app

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"doc2html/internal/domain/entity"
	"doc2html/internal/infrastructure/storage"
)

// bodyItems возвращает содержимое body по порядку: "p:<текст>" или "img:<src>|<alt>".
func bodyItems(t *testing.T, markup string) []string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)

	var body *html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	require.NotNil(t, body)

	var items []string
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		switch c.DataAtom {
		case atom.P:
			items = append(items, "p:"+c.FirstChild.Data)
		case atom.Img:
			attrs := map[string]string{}
			for _, a := range c.Attr {
				attrs[a.Key] = a.Val
			}
			items = append(items, "img:"+attrs["src"]+"|"+attrs["alt"])
		}
	}
	return items
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestParagraphs_DropsBlankLines(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, Paragraphs("a\n\nb\n"))
	require.Equal(t, []string{"x", "y"}, Paragraphs("  x \r\n\t\n y"))
	require.Empty(t, Paragraphs("\n \n"))
}

func TestAssembleMarkup_Order(t *testing.T) {
	elements := []entity.VisualElement{
		{Box: entity.BoundingBox{Width: 2, Height: 2}, Image: solid(2, 2, color.Black)},
		{Box: entity.BoundingBox{Width: 3, Height: 1}, Image: solid(3, 1, color.Black)},
	}

	doc, err := AssembleMarkup("a\n\nb\n", elements)
	require.NoError(t, err)
	require.Equal(t, 2, doc.Paragraphs)
	require.Equal(t, []string{
		"p:a",
		"p:b",
		"img:visual_element_0.png|Visual Element 0",
		"img:visual_element_1.png|Visual Element 1",
	}, bodyItems(t, doc.HTML))

	require.Len(t, doc.Assets, 2)
	require.Equal(t, "visual_element_1.png", doc.Assets[1].Name)
	require.Same(t, elements[1].Image, doc.Assets[1].Image)

	require.True(t, strings.HasPrefix(doc.HTML, "<!DOCTYPE html>"))
	require.Contains(t, doc.HTML, "max-width: 100%")
	require.Contains(t, doc.HTML, "font-family: Arial, sans-serif")
	require.Contains(t, doc.HTML, `<meta charset="utf-8"/>`)
}

func TestAssembleMarkup_NoElements(t *testing.T) {
	doc, err := AssembleMarkup("only text", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"p:only text"}, bodyItems(t, doc.HTML))
	require.Empty(t, doc.Assets)
	require.NotContains(t, doc.HTML, "<img")
}

func TestAssembleMarkup_EscapesText(t *testing.T) {
	doc, err := AssembleMarkup("<b>bold</b> & co", nil)
	require.NoError(t, err)
	require.Contains(t, doc.HTML, "&lt;b&gt;bold&lt;/b&gt; &amp; co")
	require.Equal(t, []string{"p:<b>bold</b> & co"}, bodyItems(t, doc.HTML))
}

func TestAssemble_WritesAssets(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())
	elements := []entity.VisualElement{{Image: solid(4, 4, color.Black)}}

	doc, paths, err := Assemble("hello", elements, store)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Len(t, doc.Assets, 1)
}
