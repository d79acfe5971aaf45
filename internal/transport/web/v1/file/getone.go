package file

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Get file details
// @Tags        files
// @Produce     json
// @Param       id path string true "file id"
// @Success     200 {object} domain.FileDetail
// @Failure     400 {object} domain.ErrorEnvelope
// @Failure     404 {object} domain.ErrorEnvelope
// @Router      /api/v1/files/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "files.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad file id", err, "raw", r.PathValue("id"))
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	rec, err := h.Files.FileByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "file_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "file_id", rec.ID)
	v1.WriteJSON(w, r, http.StatusOK, rec.Detail())
}
