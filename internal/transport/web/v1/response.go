package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EgorLis/cloud-vault/internal/domain"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + error.code/text конверта.
// Все «не найдено» (нет записи, нет блоба) снаружи — один статус 404;
// валидационные ошибки (preview не-картинки) отличимы по коду и статусу 400.
func MapDomainError(err error) (httpStatus int, env domain.ErrorEnvelope) {
	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeBadParams, "bad params")
	case errors.Is(err, domain.ErrNotAnImage):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeNotAnImage, "file is not an image")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrBlobMissing):
		return http.StatusNotFound, domain.Fail(domain.ErrCodeNotFound, "file not found")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, domain.Fail(domain.ErrCodeMethodNotAllowed, "method not allowed")
	case errors.Is(err, domain.ErrStorageWrite):
		return http.StatusInternalServerError, domain.Fail(domain.ErrCodeStorageWrite, "storage write failed")
	default:
		// Таймауты/отмены — как 500
		return http.StatusInternalServerError, domain.Fail(domain.ErrCodeUnexpected, "unexpected")
	}
}

// WriteJSON пишет успешный ответ как есть (без конверта); для HEAD — без тела
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// WriteDomainError пишет конверт ошибки со стабильным кодом
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
