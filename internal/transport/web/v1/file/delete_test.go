package file

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

func TestDelete_RemovesRecordAndBlob(t *testing.T) {
	env := newTestEnv(t)

	out := env.upload(t, "old.zip", "application/zip", []byte("zip"))
	rec, err := env.files.FileByID(context.Background(), out.ID)
	require.NoError(t, err)

	resp := env.do(httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+out.ID.String(), nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var dr deleteResponse
	decode(t, resp, &dr)
	assert.Equal(t, "success", dr.Status)
	assert.Contains(t, dr.Message, "old.zip")

	_, err = env.files.FileByID(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := env.storage.Exists(context.Background(), rec.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok, "blob must be removed together with the record")
}

func TestDelete_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDelete_SecondCallIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	out := env.upload(t, "once.txt", "text/plain", []byte("x"))

	first := env.do(httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+out.ID.String(), nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := env.do(httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+out.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, second.Code, "repeat delete answers 404, not a crash")
}

func TestDelete_BlobAlreadyGone(t *testing.T) {
	env := newTestEnv(t)

	out := env.upload(t, "gone.txt", "text/plain", []byte("x"))
	rec, err := env.files.FileByID(context.Background(), out.ID)
	require.NoError(t, err)

	// блоб уже отсутствует — целевое состояние достигнуто, удаление проходит
	require.NoError(t, env.storage.Delete(context.Background(), rec.StorageKey))

	resp := env.do(httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+out.ID.String(), nil))
	assert.Equal(t, http.StatusOK, resp.Code)

	_, err = env.files.FileByID(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
