// Package fallback — детерминированный локальный классификатор.
// Используется всегда, когда удалённое обогащение недоступно или ошиблось.
package fallback

import (
	"fmt"
	"path"
	"strings"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

// Фиксированная таблица расширение → теги. Одинаковое расширение всегда
// даёт одинаковый набор.
var tagsByExt = map[string][]string{
	".pdf":  {"document", "report", "important"},
	".jpg":  {"image", "photo", "media"},
	".png":  {"image", "graphic", "media"},
	".doc":  {"document", "text", "work"},
	".docx": {"document", "text", "work"},
	".xlsx": {"spreadsheet", "data", "finance"},
	".csv":  {"data", "analytics", "report"},
	".zip":  {"archive", "backup", "compressed"},
	".mp4":  {"video", "media", "content"},
	".mp3":  {"audio", "music", "media"},
}

var defaultTags = []string{"file", "document", "data"}

// Classify никогда не ошибается и никогда не возвращает пустые теги.
func Classify(filename string) domain.FileMeta {
	ext := strings.ToLower(path.Ext(filename))

	tags, ok := tagsByExt[ext]
	if !ok {
		tags = defaultTags
	}
	// копия, чтобы вызывающий не мог испортить таблицу
	out := make([]string, len(tags))
	copy(out, tags)

	return domain.FileMeta{
		Summary: fmt.Sprintf("File: %s - Uploaded to CloudVault storage system", filename),
		Tags:    out,
	}
}
