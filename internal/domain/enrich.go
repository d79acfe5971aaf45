package domain

import "context"

// Обогащение метаданных: по имени файла (и опционально контенту) получить
// summary + теги. Реализации: удалённая (OpenAI) и локальный детерминированный
// fallback. Удалённая считается ненадёжной: любая её ошибка гасится fallback-ом,
// до вызывающего не доходит.
type Enricher interface {
	Enrich(ctx context.Context, filename string, content []byte) (FileMeta, error)
}
