package domain

import (
	"context"
	"io"
)

// Хранилище бинарного контента (S3/MinIO). Байты — opaque, без семантики.
//
// Put атомарен с точки зрения вызывающего: либо объект записан целиком и
// доступен по key, либо объекта нет. Ключ выбирает вызывающий (конвейер
// загрузки), ключи между записями каталога не переиспользуются.
type BlobStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, mime string) error
	// Возвращает поток, длину и content-type объекта.
	Get(ctx context.Context, key string) (rc io.ReadCloser, size int64, contentType string, err error)
	// Идемпотентно: удаление отсутствующего объекта — не ошибка.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}
