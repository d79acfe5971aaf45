package file

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// Stats godoc
// @Summary     Storage statistics
// @Description Всего файлов, занятые мегабайты (2 знака) и счётчики по
// @Description верхнеуровневым MIME-категориям
// @Tags        files
// @Produce     json
// @Success     200 {object} domain.StorageStats
// @Failure     500 {object} domain.ErrorEnvelope
// @Router      /api/v1/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "files.stats"
	reqID := mw.RequestIDFromCtx(r.Context())

	ckey := domain.CacheKeyStats(h.catalogVer(r.Context()))
	if b, err := h.Cache.Get(r.Context(), ckey); err == nil && len(b) > 0 {
		logx.Info(h.Log, reqID, op, "cache hit")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
		return
	}

	usage, err := h.Files.UsageByType(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db aggregate failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	stats := foldStats(usage)

	if buf, err := json.Marshal(stats); err == nil {
		_ = h.Cache.Set(r.Context(), ckey, buf, h.StatsTTL)
	}

	logx.Info(h.Log, reqID, op, "ok", "total_files", stats.TotalFiles, "total_mb", stats.TotalMBUsed)
	v1.WriteJSON(w, r, http.StatusOK, stats)
}
