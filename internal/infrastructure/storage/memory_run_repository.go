package storage

import (
	"context"
	"sync"

	"doc2html/internal/domain/entity"
	"doc2html/internal/domain/port"
)

// MemoryRunRepository in-memory хранилище последних проходов
type MemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[int64]*entity.Run
}

// NewMemoryRunRepository создаёт новое in-memory хранилище
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{
		runs: make(map[int64]*entity.Run),
	}
}

// Save запоминает проход как последний для владельца
func (r *MemoryRunRepository) Save(ctx context.Context, ownerID int64, run *entity.Run) error {
	r.mu.Lock()
	r.runs[ownerID] = run
	r.mu.Unlock()

	return nil
}

// Last возвращает последний проход владельца, nil если проходов не было
func (r *MemoryRunRepository) Last(ctx context.Context, ownerID int64) (*entity.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.runs[ownerID], nil
}

// Проверка реализации интерфейса
var _ port.RunRepository = (*MemoryRunRepository)(nil)
