package port

import (
	"context"

	"doc2html/internal/domain/entity"
)

// RunRepository интерфейс хранилища проходов конвейера
type RunRepository interface {
	// Save запоминает проход как последний для владельца
	Save(ctx context.Context, ownerID int64, run *entity.Run) error

	// Last возвращает последний проход владельца или nil
	Last(ctx context.Context, ownerID int64) (*entity.Run, error)
}
