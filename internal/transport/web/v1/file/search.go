package file

import (
	"net/http"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// Search godoc
// @Summary     Search files
// @Description Регистронезависимый substring-поиск по имени, summary и тегам (OR)
// @Tags        files
// @Produce     json
// @Param       q query string true "search query"
// @Success     200 {array} domain.FileView
// @Failure     400 {object} domain.ErrorEnvelope
// @Failure     500 {object} domain.ErrorEnvelope
// @Router      /api/v1/files/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "files.search"
	reqID := mw.RequestIDFromCtx(r.Context())

	query := r.URL.Query().Get("q")
	if query == "" {
		logx.Error(h.Log, reqID, op, "empty query", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	recs, err := h.Files.FilesSearch(r.Context(), query)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db search failed", err, "q", query)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	out := make([]domain.FileView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.View())
	}

	logx.Info(h.Log, reqID, op, "ok", "q", query, "count", len(out))
	v1.WriteJSON(w, r, http.StatusOK, out)
}
