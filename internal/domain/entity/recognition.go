package entity

// TextAnnotation фрагмент распознанного текста.
// Первая аннотация ответа содержит текст всей страницы.
type TextAnnotation struct {
	Description string
	Box         *BoundingBox // область аннотации, если сервис её вернул
}

// ErrorInfo ошибка, сообщённая сервисом распознавания.
type ErrorInfo struct {
	Code    int
	Message string
}

// RecognitionResult хранит ответ сервиса распознавания текста.
type RecognitionResult struct {
	TextAnnotations []TextAnnotation
	Error           *ErrorInfo
}

// Failed сообщает, вернул ли сервис ошибку.
func (r *RecognitionResult) Failed() bool {
	return r != nil && r.Error != nil && r.Error.Message != ""
}
