package app

import "doc2html/internal/domain/entity"

// ExtractText возвращает текст всей страницы: описание первой аннотации.
// Пустой или отсутствующий ответ даёт пустую строку.
func ExtractText(result *entity.RecognitionResult) string {
	if result == nil || len(result.TextAnnotations) == 0 {
		return ""
	}
	return result.TextAnnotations[0].Description
}
