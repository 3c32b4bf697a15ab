package app

import (
	"fmt"

	"doc2html/internal/domain/entity"
)

// Summary возвращает сообщение для пользователя о завершённом проходе.
func Summary(run *entity.Run) string {
	switch run.State {
	case entity.StatePersisted:
		return fmt.Sprintf("HTML content successfully saved to %s (%d visual elements)", run.Document, run.Elements)
	case entity.StateAborted:
		f := run.Failure
		if f.Cause != nil && !f.Soft() {
			return fmt.Sprintf("Aborted at %s: %s: %v", f.Stage, f.Message, f.Cause)
		}
		return fmt.Sprintf("Aborted at %s: %s", f.Stage, f.Message)
	default:
		return fmt.Sprintf("Run is in progress: %s", run.State)
	}
}
