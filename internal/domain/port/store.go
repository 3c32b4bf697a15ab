package port

import "doc2html/internal/domain/entity"

// AssetStore интерфейс хранилища результатов
type AssetStore interface {
	// WriteAssets сохраняет фрагменты и возвращает пути записанных файлов
	WriteAssets(assets []entity.Asset) ([]string, error)

	// WriteDocument сохраняет HTML-документ под именем name
	WriteDocument(name, html string) (string, error)

	// Remove удаляет ранее записанные файлы
	Remove(paths []string) error
}
