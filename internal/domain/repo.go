package domain

import "context"

// Каталог файлов — system of record. Реализация — Postgres.
//
// Записи создаются только конвейером загрузки (после успешной записи блоба),
// удаляются только конвейером удаления. Чтения — одиночные запросы,
// «полусозданную» запись прочитать нельзя.
type FilesRepo interface {
	Close()
	Ping(context.Context) error

	CreateFile(ctx context.Context, rec FileRecord) (FileRecord, error)
	FileByID(ctx context.Context, id FileID) (FileRecord, error)
	FilesList(ctx context.Context) ([]FileRecord, error)
	// Регистронезависимый substring-поиск по имени, summary и тегам (OR).
	FilesSearch(ctx context.Context, query string) ([]FileRecord, error)
	// Возвращает ErrNotFound, если записи нет (в т.ч. при повторном удалении).
	DeleteFile(ctx context.Context, id FileID) error
	// Агрегат по content_type для /stats
	UsageByType(ctx context.Context) ([]TypeUsage, error)
}
