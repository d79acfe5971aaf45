package file

import (
	"context"
	"math"
	"mime"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/h2non/filetype"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

const genericContentType = "application/octet-stream"

// objectKey строит ключ блоба новой записи: "files/<id>_<имя>".
// id уникален, поэтому ключи между записями не переиспользуются;
// дедупликации по контенту нет намеренно.
func objectKey(id domain.FileID, filename string) string {
	return "files/" + id.String() + "_" + sanitize(filename)
}

func sanitize(name string) string {
	u := url.PathEscape(name)
	return strings.ReplaceAll(u, "%2F", "_")
}

// resolveContentType: клиентский hint, если он конкретный; иначе по
// расширению имени; иначе сниффинг по magic-байтам; иначе octet-stream.
func resolveContentType(hint, filename string, content []byte) string {
	if hint != "" && hint != genericContentType {
		return hint
	}
	if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); byExt != "" {
		return byExt
	}
	if kind, err := filetype.Match(content); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return genericContentType
}

// foldStats сводит сырые агрегаты репозитория в ответ /stats:
// категория — верхний уровень MIME ("image/png" → "image"), пусто → "unknown",
// total_mb_used — мегабайты с округлением до 2 знаков, без файлов — 0.0.
func foldStats(usage []domain.TypeUsage) domain.StorageStats {
	stats := domain.StorageStats{FileTypeCounts: map[string]int64{}}
	var totalBytes int64
	for _, u := range usage {
		stats.TotalFiles += u.Count
		totalBytes += u.Bytes

		category := "unknown"
		if u.ContentType != "" {
			category = strings.SplitN(u.ContentType, "/", 2)[0]
		}
		stats.FileTypeCounts[category] += u.Count
	}
	stats.TotalMBUsed = math.Round(float64(totalBytes)/(1024*1024)*100) / 100
	return stats
}

// catalogVer читает текущую версию каталога из кеша; ошибки кеша не
// влияют на ответ — просто промах.
func (h *Handler) catalogVer(ctx context.Context) int64 {
	b, err := h.Cache.Get(ctx, domain.CacheKeyCatalogVer())
	if err != nil || len(b) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// bumpCatalogVer инвалидирует кешированные списки/сводку после записи
func (h *Handler) bumpCatalogVer(ctx context.Context) {
	if _, err := h.Cache.Incr(ctx, domain.CacheKeyCatalogVer()); err != nil {
		h.Log.Printf("catalog version bump failed: %v", err)
	}
}
