package file

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// List godoc
// @Summary     List all files
// @Tags        files
// @Produce     json
// @Success     200 {array} domain.FileView
// @Failure     500 {object} domain.ErrorEnvelope
// @Router      /api/v1/files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "files.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	// кэш: ключ версионируется счётчиком каталога
	ckey := domain.CacheKeyFilesList(h.catalogVer(r.Context()))
	if b, err := h.Cache.Get(r.Context(), ckey); err == nil && len(b) > 0 {
		logx.Info(h.Log, reqID, op, "cache hit")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
		return
	}

	recs, err := h.Files.FilesList(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	out := make([]domain.FileView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.View())
	}

	if buf, err := json.Marshal(out); err == nil {
		_ = h.Cache.Set(r.Context(), ckey, buf, h.ListTTL)
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(out))
	v1.WriteJSON(w, r, http.StatusOK, out)
}
