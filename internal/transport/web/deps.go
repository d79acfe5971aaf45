package web

import "github.com/EgorLis/cloud-vault/internal/domain"

// Зависимости сервера: всё конструируется один раз в internal/app и
// передаётся явно — никаких ambient-синглтонов, в тестах подменяется фейками.
type Deps struct {
	Files    domain.FilesRepo
	Storage  domain.BlobStorage
	Cache    domain.Cache
	Enricher domain.Enricher
}
