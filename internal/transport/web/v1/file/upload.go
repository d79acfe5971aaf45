package file

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/enrich/fallback"
	"github.com/EgorLis/cloud-vault/internal/transport/web/logx"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	v1 "github.com/EgorLis/cloud-vault/internal/transport/web/v1"
)

// Upload godoc
// @Summary     Upload new file
// @Description Принимает файл в multipart/form-data, пишет контент в S3,
// @Description обогащает метаданные (OpenAI, при сбое — локальный классификатор)
// @Description и коммитит запись каталога.
// @Tags        files
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Файл для загрузки"
// @Success     200 {object} object{id=string,summary=string,tags=[]string}
// @Failure     400 {object} domain.ErrorEnvelope
// @Failure     500 {object} domain.ErrorEnvelope
// @Router      /api/v1/files [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "files.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	fh, hdr, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing file field", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer fh.Close()

	content, err := io.ReadAll(fh)
	if err != nil {
		logx.Error(h.Log, reqID, op, "read file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	filename := hdr.Filename
	if filename == "" {
		filename = "file"
	}
	contentType := resolveContentType(hdr.Header.Get("Content-Type"), filename, content)

	// Свежий id — ключ блоба принадлежит именно этой записи
	id := uuid.New()
	key := objectKey(id, filename)

	// Блоб пишем строго до записи каталога: упал сторидж — записи нет,
	// читатели частичного состояния не видят.
	if err := h.Storage.Put(r.Context(), key, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		logx.Error(h.Log, reqID, op, "blob write failed", err, "name", filename)
		v1.WriteDomainError(w, r, domain.ErrStorageWrite)
		return
	}

	meta := h.enrich(r.Context(), reqID, filename, content)

	rec, err := h.Files.CreateFile(r.Context(), domain.FileRecord{
		ID:           id,
		OriginalName: filename,
		StorageKey:   key,
		SizeBytes:    int64(len(content)),
		ContentType:  contentType,
		Summary:      meta.Summary,
		Tags:         meta.Tags,
	})
	if err != nil {
		// Блоб уже записан — остаётся сиротой до внешней сверки.
		// Ключ пишем в лог, чтобы сверке было с чем работать.
		logx.Error(h.Log, reqID, op, "catalog commit failed, orphan blob", err, "storage_key", key)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	h.bumpCatalogVer(r.Context())

	logx.Info(h.Log, reqID, op, "ok", "file_id", rec.ID, "name", filename, "size", rec.SizeBytes, "tags", meta.Tags)
	v1.WriteJSON(w, r, http.StatusOK, uploadResponse{ID: rec.ID, Summary: rec.Summary, Tags: rec.Tags})
}

// enrich пробует удалённый сервис с дедлайном; ЛЮБАЯ его ошибка гасится
// детерминированным классификатором. Это обязательный fallback, наружу
// ошибки обогащения не выходят, загрузка из-за них не падает.
func (h *Handler) enrich(ctx context.Context, reqID, filename string, content []byte) domain.FileMeta {
	ectx, cancel := context.WithTimeout(ctx, h.EnrichTimeout)
	defer cancel()

	meta, err := h.Enricher.Enrich(ectx, filename, content)
	if err != nil {
		logx.Info(h.Log, reqID, "files.enrich", "remote enrichment failed, using fallback", "name", filename, "reason", err)
		return fallback.Classify(filename)
	}
	return meta
}
