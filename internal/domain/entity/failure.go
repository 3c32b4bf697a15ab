package entity

import (
	"errors"
	"fmt"
)

// FailureKind тип сбоя конвейера
type FailureKind string

const (
	FailureAcquisition FailureKind = "acquisition"  // изображение не прочитано или сервис вернул ошибку
	FailureEmpty       FailureKind = "empty_result" // нет текста, нет элементов или пустая разметка
	FailurePersistence FailureKind = "persistence"  // не удалось записать файл
)

// ErrEmptyResult означает, что этап отработал, но ничего не нашёл.
var ErrEmptyResult = errors.New("empty result")

// Failure описывает причину перехода конвейера в Aborted.
type Failure struct {
	Kind    FailureKind
	Stage   RunState
	Message string
	Cause   error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s at %s: %s (caused by: %v)", f.Kind, f.Stage, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s at %s: %s", f.Kind, f.Stage, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Soft сообщает, что сбой штатный: этап просто ничего не нашёл.
func (f *Failure) Soft() bool {
	return f.Kind == FailureEmpty
}

func NewAcquisitionFailure(stage RunState, message string, cause error) *Failure {
	return &Failure{Kind: FailureAcquisition, Stage: stage, Message: message, Cause: cause}
}

func NewEmptyFailure(stage RunState, message string) *Failure {
	return &Failure{Kind: FailureEmpty, Stage: stage, Message: message, Cause: ErrEmptyResult}
}

func NewPersistenceFailure(stage RunState, message string, cause error) *Failure {
	return &Failure{Kind: FailurePersistence, Stage: stage, Message: message, Cause: cause}
}
