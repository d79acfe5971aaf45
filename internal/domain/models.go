package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type FileID = uuid.UUID

// Запись каталога: метаданные одного загруженного файла (без тела).
// Запись неизменяема после коммита; обновлений по полям нет, только удаление целиком.
type FileRecord struct {
	ID           FileID    `json:"id"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Summary      string    `json:"summary"`
	Tags         []string  `json:"tags"`
	UploadedAt   time.Time `json:"uploaded_at"`

	// Где лежит контент (S3/MinIO). Ключ принадлежит записи и не переиспользуется.
	StorageKey string `json:"-"`
}

// Результат обогащения: краткое описание + теги.
// Контракт: Summary непустой, Tags содержит минимум один элемент.
type FileMeta struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Представление для списков и поиска
type FileView struct {
	ID          FileID    `json:"id"`
	Name        string    `json:"name"`
	Summary     string    `json:"summary"`
	Tags        []string  `json:"tags"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Полная карточка файла (включая путь в сторидже)
type FileDetail struct {
	ID          FileID    `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Summary     string    `json:"summary"`
	Tags        []string  `json:"tags"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
}

// Агрегат по типу контента (строка GROUP BY из репозитория)
type TypeUsage struct {
	ContentType string
	Count       int64
	Bytes       int64
}

// Сводка хранилища
type StorageStats struct {
	TotalFiles     int64            `json:"total_files"`
	TotalMBUsed    float64          `json:"total_mb_used"`
	FileTypeCounts map[string]int64 `json:"file_type_counts"`
}

func (r FileRecord) View() FileView {
	return FileView{
		ID: r.ID, Name: r.OriginalName, Summary: r.Summary, Tags: r.Tags,
		ContentType: r.ContentType, SizeBytes: r.SizeBytes, UploadedAt: r.UploadedAt,
	}
}

func (r FileRecord) Detail() FileDetail {
	return FileDetail{
		ID: r.ID, Name: r.OriginalName, Path: r.StorageKey, Summary: r.Summary,
		Tags: r.Tags, UploadedAt: r.UploadedAt, ContentType: r.ContentType, SizeBytes: r.SizeBytes,
	}
}
