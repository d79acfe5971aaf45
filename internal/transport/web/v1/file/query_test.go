package file

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

func TestList_ReflectsUploads(t *testing.T) {
	env := newTestEnv(t)

	env.upload(t, "a.pdf", "application/pdf", []byte("aaa"))
	env.upload(t, "b.png", "image/png", []byte("bbbb"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
	rec := env.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var views []domain.FileView
	decode(t, rec, &views)
	require.Len(t, views, 2)

	names := []string{views[0].Name, views[1].Name}
	assert.ElementsMatch(t, []string{"a.pdf", "b.png"}, names)
	for _, v := range views {
		assert.NotEmpty(t, v.Summary)
		assert.NotEmpty(t, v.Tags)
		assert.False(t, v.UploadedAt.IsZero())
	}
}

func TestList_CacheInvalidatedByUpload(t *testing.T) {
	env := newTestEnv(t)

	env.upload(t, "a.pdf", "application/pdf", []byte("aaa"))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// вторая загрузка двигает версию каталога — кеш первого списка не отдаётся
	env.upload(t, "b.png", "image/png", []byte("bbbb"))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var views []domain.FileView
	decode(t, rec, &views)
	assert.Len(t, views, 2)
}

func TestSearch_MatchesSummaryOnly(t *testing.T) {
	env := newTestEnv(t)

	// summary содержит "report", имя и теги — нет
	env.enricher.meta = domain.FileMeta{Summary: "Quarterly revenue report analysis", Tags: []string{"finance"}}
	env.upload(t, "q3.xlsx", "application/vnd.ms-excel", []byte("xlsx"))

	env.enricher.meta = domain.FileMeta{Summary: "Holiday picture", Tags: []string{"photo"}}
	env.upload(t, "beach.png", "image/png", []byte("png"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/search?q=REPORT", nil)
	rec := env.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var views []domain.FileView
	decode(t, rec, &views)
	require.Len(t, views, 1, "only the summary match, not unrelated records")
	assert.Equal(t, "q3.xlsx", views[0].Name)
}

func TestSearch_MatchesTag(t *testing.T) {
	env := newTestEnv(t)

	env.enricher.meta = domain.FileMeta{Summary: "some file", Tags: []string{"backup", "archive"}}
	env.upload(t, "data.zip", "application/zip", []byte("zip"))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files/search?q=backup", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var views []domain.FileView
	decode(t, rec, &views)
	assert.Len(t, views, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/files/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats_SumsAndRounds(t *testing.T) {
	env := newTestEnv(t)

	env.upload(t, "one.bin", "application/octet-stream", make([]byte, 1048576))
	env.upload(t, "two.bin", "application/octet-stream", make([]byte, 2097152))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.StorageStats
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.TotalFiles)
	assert.Equal(t, 3.0, stats.TotalMBUsed)
	assert.Equal(t, int64(2), stats.FileTypeCounts["application"])
}

func TestStats_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.StorageStats
	decode(t, rec, &stats)
	assert.Zero(t, stats.TotalFiles)
	assert.Equal(t, 0.0, stats.TotalMBUsed)
	assert.Empty(t, stats.FileTypeCounts)
}

func TestStats_CategoriesByTopLevelMIME(t *testing.T) {
	env := newTestEnv(t)

	env.upload(t, "a.png", "image/png", []byte("png"))
	env.upload(t, "b.jpg", "image/jpeg", []byte("jpg"))
	env.upload(t, "c.pdf", "application/pdf", []byte("pdf"))

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.StorageStats
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.FileTypeCounts["image"])
	assert.Equal(t, int64(1), stats.FileTypeCounts["application"])

	// категории — только верхний уровень, полных MIME в ключах нет
	for k := range stats.FileTypeCounts {
		assert.False(t, strings.Contains(k, "/"), "unexpected raw mime key %q", k)
	}
}
