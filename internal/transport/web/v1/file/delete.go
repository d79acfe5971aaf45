package file

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete file
// @Description Сносит блоб и запись каталога. Ошибка удаления блоба логируется,
// @Description но запись каталога удаляется всё равно: болтающаяся запись хуже
// @Description блоба-сироты (обратный приоритет относительно загрузки).
// @Tags        files
// @Produce     json
// @Param       id path string true "file id"
// @Success     200 {object} object{status=string,message=string}
// @Failure     400 {object} domain.ErrorEnvelope
// @Failure     404 {object} domain.ErrorEnvelope
// @Router      /api/v1/files/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "files.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad file id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	rec, err := h.Files.FileByID(r.Context(), id)
	if err != nil {
		// повторное удаление того же id честно отвечает 404
		logx.Error(h.Log, reqID, op, "record not found", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	// Сначала блоб. Отсутствующий объект — успех (идемпотентность),
	// прочие ошибки не блокируют удаление записи.
	if err := h.Storage.Delete(r.Context(), rec.StorageKey); err != nil {
		logx.Error(h.Log, reqID, op, "blob delete failed, removing record anyway", err, "file_id", id)
	}

	if err := h.Files.DeleteFile(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "catalog delete failed", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.bumpCatalogVer(r.Context())

	logx.Info(h.Log, reqID, op, "ok", "file_id", id, "name", rec.OriginalName)
	v1.WriteJSON(w, r, http.StatusOK, deleteResponse{
		Status:  "success",
		Message: fmt.Sprintf("File '%s' deleted", rec.OriginalName),
	})
}
