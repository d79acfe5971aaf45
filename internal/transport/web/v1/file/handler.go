package file

import (
	"log"
	"time"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

type Handler struct {
	Log      *log.Logger
	Files    domain.FilesRepo
	Storage  domain.BlobStorage
	Cache    domain.Cache
	Enricher domain.Enricher

	// Потолок ожидания удалённого обогащения; дальше — локальный fallback
	EnrichTimeout time.Duration

	ListTTL  int // секунд
	StatsTTL int // секунд
}

// Форма ответа загрузки
type uploadResponse struct {
	ID      domain.FileID `json:"id"`
	Summary string        `json:"summary"`
	Tags    []string      `json:"tags"`
}

// Форма ответа удаления
type deleteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
