package entity

import "image"

// Asset изображение, на которое ссылается документ.
type Asset struct {
	Name  string // имя файла относительно каталога вывода
	Label string // alt-текст
	Image image.Image
}

// Document собранная HTML-страница и файлы, которые нужно сохранить рядом с ней.
type Document struct {
	HTML       string
	Paragraphs int
	Assets     []Asset
}

// Empty сообщает, что разметка не была собрана.
func (d *Document) Empty() bool {
	return d == nil || d.HTML == ""
}
