package file

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

func TestResolveContentType(t *testing.T) {
	pngMagic := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

	tests := []struct {
		name     string
		hint     string
		filename string
		content  []byte
		want     string
	}{
		{"hint wins", "application/pdf", "whatever.bin", nil, "application/pdf"},
		{"generic hint falls to extension", "application/octet-stream", "doc.pdf", nil, "application/pdf"},
		{"empty hint falls to extension", "", "pic.png", nil, "image/png"},
		{"no extension sniffs magic bytes", "", "noext", pngMagic, "image/png"},
		{"nothing to go on", "", "noext", []byte("plain data"), "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveContentType(tt.hint, tt.filename, tt.content))
		})
	}
}

func TestObjectKey(t *testing.T) {
	id := uuid.New()

	key := objectKey(id, "my report.pdf")
	assert.Contains(t, key, id.String())
	assert.NotContains(t, key, " ", "key must be path-safe")

	// слэши в имени не создают вложенных «каталогов» в бакете
	key = objectKey(id, "a/b.txt")
	assert.Equal(t, "files/"+id.String()+"_a_b.txt", key)
}

func TestFoldStats(t *testing.T) {
	usage := []domain.TypeUsage{
		{ContentType: "image/png", Count: 2, Bytes: 1048576},
		{ContentType: "image/jpeg", Count: 1, Bytes: 524288},
		{ContentType: "application/pdf", Count: 3, Bytes: 1572864},
		{ContentType: "", Count: 1, Bytes: 100},
	}

	stats := foldStats(usage)
	assert.Equal(t, int64(7), stats.TotalFiles)
	assert.Equal(t, int64(3), stats.FileTypeCounts["image"])
	assert.Equal(t, int64(3), stats.FileTypeCounts["application"])
	assert.Equal(t, int64(1), stats.FileTypeCounts["unknown"])
	assert.InDelta(t, 3.0, stats.TotalMBUsed, 0.001)
}

func TestFoldStats_Empty(t *testing.T) {
	stats := foldStats(nil)
	assert.Zero(t, stats.TotalFiles)
	assert.Equal(t, 0.0, stats.TotalMBUsed)
	assert.NotNil(t, stats.FileTypeCounts)
	assert.Empty(t, stats.FileTypeCounts)
}
