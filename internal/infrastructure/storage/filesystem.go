package storage

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"doc2html/internal/domain/entity"
	"doc2html/internal/domain/port"
)

// FileStore пишет фрагменты и документ в каталог вывода.
type FileStore struct {
	dir string
}

// NewFileStore создаёт хранилище в каталоге dir ("" означает текущий каталог).
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Dir возвращает каталог вывода
func (s *FileStore) Dir() string {
	return s.dir
}

// WriteAssets сохраняет фрагменты в PNG. При ошибке возвращает уже записанные пути.
func (s *FileStore) WriteAssets(assets []entity.Asset) ([]string, error) {
	if len(assets) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	written := make([]string, 0, len(assets))
	for _, a := range assets {
		path := filepath.Join(s.dir, a.Name)
		if err := writePNG(path, a); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writePNG(path string, a entity.Asset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", a.Name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", a.Name, cerr)
		}
	}()

	if err := png.Encode(f, a.Image); err != nil {
		return fmt.Errorf("encode %s: %w", a.Name, err)
	}
	return nil
}

// WriteDocument сохраняет HTML в UTF-8.
func (s *FileStore) WriteDocument(name, html string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// Remove удаляет файлы, отсутствующие файлы пропускаются.
func (s *FileStore) Remove(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Проверка реализации интерфейса
var _ port.AssetStore = (*FileStore)(nil)
