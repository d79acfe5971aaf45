package file

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// Download godoc
// @Summary     Download file content
// @Description 404 и когда нет записи каталога, и когда мета есть, а блоба нет
// @Description (в логах эти случаи различимы)
// @Tags        files
// @Produce     octet-stream
// @Param       id path string true "file id"
// @Success     200 {file} []byte
// @Failure     400 {object} domain.ErrorEnvelope
// @Failure     404 {object} domain.ErrorEnvelope
// @Router      /api/v1/files/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "files.download"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad file id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	rec, err := h.Files.FileByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "record not found", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	rc, size, _, err := h.Storage.Get(r.Context(), rec.StorageKey)
	if err != nil {
		// ErrBlobMissing: запись есть, байтов нет — наружу тот же 404
		logx.Error(h.Log, reqID, op, "blob fetch failed", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", rec.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.OriginalName))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		logx.Error(h.Log, reqID, op, "stream interrupted", err, "file_id", id)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "file_id", id, "size", size)
}
