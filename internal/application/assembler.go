package app

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"doc2html/internal/domain/entity"
	"doc2html/internal/domain/port"
)

const pageStyle = "img {max-width: 100%; height: auto;} body {font-family: Arial, sans-serif;}"

// AssetName имя файла фрагмента с индексом i.
func AssetName(i int) string {
	return fmt.Sprintf("visual_element_%d.png", i)
}

// AssetLabel alt-текст фрагмента с индексом i.
func AssetLabel(i int) string {
	return fmt.Sprintf("Visual Element %d", i)
}

// AssembleMarkup собирает HTML: сначала абзацы текста, затем все фрагменты.
// Файлы не пишет, фрагменты возвращаются в Document.Assets.
func AssembleMarkup(text string, elements []entity.VisualElement) (*entity.Document, error) {
	doc := &entity.Document{}

	body := element(atom.Body)
	for _, line := range Paragraphs(text) {
		p := element(atom.P)
		p.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		body.AppendChild(p)
		doc.Paragraphs++
	}

	for i, el := range elements {
		asset := entity.Asset{Name: AssetName(i), Label: AssetLabel(i), Image: el.Image}
		img := element(atom.Img)
		img.Attr = []html.Attribute{
			{Key: "src", Val: asset.Name},
			{Key: "alt", Val: asset.Label},
		}
		body.AppendChild(img)
		body.AppendChild(element(atom.Br))
		doc.Assets = append(doc.Assets, asset)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, page(body)); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	doc.HTML = buf.String()
	return doc, nil
}

// Assemble собирает документ и сохраняет фрагменты в store.
// Ошибка записи любого фрагмента делает весь документ недействительным,
// пути уже записанных файлов возвращаются вместе с *entity.Failure.
func Assemble(text string, elements []entity.VisualElement, store port.AssetStore) (*entity.Document, []string, error) {
	doc, err := AssembleMarkup(text, elements)
	if err != nil {
		return nil, nil, &entity.Failure{Kind: entity.FailureEmpty, Stage: entity.StateAssembly, Message: "failed to create HTML content", Cause: err}
	}
	paths, err := store.WriteAssets(doc.Assets)
	if err != nil {
		return nil, paths, entity.NewPersistenceFailure(entity.StateAssembly, "failed to save visual elements", err)
	}
	return doc, paths, nil
}

// Paragraphs делит текст по строкам и отбрасывает пустые.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// page оборачивает body в минимальную страницу со стилями.
func page(body *html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	head := element(atom.Head)

	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)

	style := element(atom.Style)
	style.AppendChild(&html.Node{Type: html.TextNode, Data: pageStyle})
	head.AppendChild(style)

	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)
	return doc
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
