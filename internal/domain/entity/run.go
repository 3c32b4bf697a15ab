package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunState состояние конвейера
type RunState string

const (
	StateAnalyzing      RunState = "analyzing"       // Запрос к сервису распознавания
	StateTextExtraction RunState = "text_extraction" // Извлечение текста из ответа
	StateSegmentation   RunState = "segmentation"    // Поиск визуальных элементов
	StateAssembly       RunState = "assembly"        // Сборка разметки и запись фрагментов
	StatePersisted      RunState = "persisted"       // Документ сохранён
	StateAborted        RunState = "aborted"         // Конвейер остановлен
)

// next порядок переходов при успехе
var next = map[RunState]RunState{
	StateAnalyzing:      StateTextExtraction,
	StateTextExtraction: StateSegmentation,
	StateSegmentation:   StateAssembly,
	StateAssembly:       StatePersisted,
}

// Terminal сообщает, что из состояния нет переходов.
func (s RunState) Terminal() bool {
	return s == StatePersisted || s == StateAborted
}

// Run один проход конвейера по одному изображению
type Run struct {
	ID         string
	State      RunState
	Failure    *Failure // заполнен только в StateAborted
	Text       string
	Elements   int
	Assets     []string // записанные файлы фрагментов
	Document   string   // путь к итоговому HTML
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewRun создаёт проход в начальном состоянии
func NewRun() *Run {
	return &Run{
		ID:        uuid.NewString(),
		State:     StateAnalyzing,
		StartedAt: time.Now(),
	}
}

// Advance переводит проход в следующее состояние.
// Возвращает false, если проход уже завершён.
func (r *Run) Advance() bool {
	to, ok := next[r.State]
	if !ok {
		return false
	}
	r.State = to
	if to.Terminal() {
		r.FinishedAt = time.Now()
	}
	return true
}

// Abort останавливает проход на текущем этапе
func (r *Run) Abort(f *Failure) {
	if r.State.Terminal() {
		return
	}
	if f.Stage == "" {
		f.Stage = r.State
	}
	r.Failure = f
	r.State = StateAborted
	r.FinishedAt = time.Now()
}

// AbortedAt возвращает этап, на котором проход остановился.
func (r *Run) AbortedAt() RunState {
	if r.Failure == nil {
		return ""
	}
	return r.Failure.Stage
}
