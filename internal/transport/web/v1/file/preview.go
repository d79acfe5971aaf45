package file

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// Preview godoc
// @Summary     Preview image file
// @Description Отдаёт сырые байты только для content_type семейства image/*
// @Tags        files
// @Produce     octet-stream
// @Param       id path string true "file id"
// @Success     200 {file} []byte
// @Failure     400 {object} domain.ErrorEnvelope "не картинка или плохой id"
// @Failure     404 {object} domain.ErrorEnvelope
// @Router      /api/v1/files/{id}/preview [get]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	const op = "files.preview"
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

	ok, err := h.Storage.Exists(r.Context(), rec.StorageKey)
	if err != nil {
		logx.Error(h.Log, reqID, op, "blob stat failed", err, "file_id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if !ok {
		logx.Error(h.Log, reqID, op, "blob missing", domain.ErrBlobMissing, "file_id", id)
		v1.WriteDomainError(w, r, domain.ErrBlobMissing)
		return
	}

	// превью только для картинок
	if !strings.HasPrefix(rec.ContentType, "image/") {
		logx.Error(h.Log, reqID, op, "unsupported media type", domain.ErrNotAnImage, "file_id", id, "content_type", rec.ContentType)
		v1.WriteDomainError(w, r, domain.ErrNotAnImage)
		return
	}

	rc, size, _, err := h.Storage.Get(r.Context(), rec.StorageKey)
	if err != nil {
		logx.Error(h.Log, reqID, op, "blob fetch failed", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", rec.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		logx.Error(h.Log, reqID, op, "stream interrupted", err, "file_id", id)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "file_id", id, "size", size)
}
