package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

// ---- In-memory фейки зависимостей (вместо Postgres/MinIO/Redis/OpenAI) ----

type memFiles struct {
	mu         sync.Mutex
	recs       map[domain.FileID]domain.FileRecord
	failCreate error
}

func newMemFiles() *memFiles {
	return &memFiles{recs: map[domain.FileID]domain.FileRecord{}}
}

func (m *memFiles) Close()                     {}
func (m *memFiles) Ping(context.Context) error { return nil }

func (m *memFiles) CreateFile(_ context.Context, rec domain.FileRecord) (domain.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return domain.FileRecord{}, m.failCreate
	}
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now().UTC()
	}
	m.recs[rec.ID] = rec
	return rec, nil
}

func (m *memFiles) FileByID(_ context.Context, id domain.FileID) (domain.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return domain.FileRecord{}, domain.ErrNotFound
	}
	return rec, nil
}

func (m *memFiles) FilesList(_ context.Context) ([]domain.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.FileRecord, 0, len(m.recs))
	for _, rec := range m.recs {
		out = append(out, rec)
	}
	return out, nil
}

// Зеркалит SQL-семантику: substring без регистра по имени, summary и тегам (OR)
func (m *memFiles) FilesSearch(_ context.Context, query string) ([]domain.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	var out []domain.FileRecord
	for _, rec := range m.recs {
		if strings.Contains(strings.ToLower(rec.OriginalName), q) ||
			strings.Contains(strings.ToLower(rec.Summary), q) ||
			strings.Contains(strings.ToLower(strings.Join(rec.Tags, ",")), q) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memFiles) DeleteFile(_ context.Context, id domain.FileID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.recs, id)
	return nil
}

func (m *memFiles) UsageByType(_ context.Context) ([]domain.TypeUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byType := map[string]*domain.TypeUsage{}
	for _, rec := range m.recs {
		u, ok := byType[rec.ContentType]
		if !ok {
			u = &domain.TypeUsage{ContentType: rec.ContentType}
			byType[rec.ContentType] = u
		}
		u.Count++
		u.Bytes += rec.SizeBytes
	}
	var out []domain.TypeUsage
	for _, u := range byType {
		out = append(out, *u)
	}
	return out, nil
}

type memStorage struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	failPut error
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: map[string][]byte{}}
}

func (m *memStorage) Put(_ context.Context, key string, r io.Reader, size int64, _ string) error {
	if m.failPut != nil {
		return m.failPut
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return fmt.Errorf("size mismatch: declared %d, read %d", size, len(b))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = b
	return nil
}

func (m *memStorage) Get(_ context.Context, key string) (io.ReadCloser, int64, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[key]
	if !ok {
		return nil, 0, "", domain.ErrBlobMissing
	}
	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), "", nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key) // отсутствующий объект — тоже успех
	return nil
}

func (m *memStorage) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.blobs[key]
	return ok, nil
}

func (m *memStorage) Ping(context.Context) error { return nil }

func (m *memStorage) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}

type memCache struct {
	mu   sync.Mutex
	vals map[string][]byte
	ctrs map[string]int64
}

func newMemCache() *memCache {
	return &memCache{vals: map[string][]byte{}, ctrs: map[string]int64{}}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.ctrs[key]; ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return m.vals[key], nil
}

func (m *memCache) Set(_ context.Context, key string, val []byte, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = val
	return nil
}

func (m *memCache) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.vals, k)
		delete(m.ctrs, k)
	}
	return nil
}

func (m *memCache) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctrs[key]++
	return m.ctrs[key], nil
}

func (m *memCache) Ping(context.Context) error { return nil }
func (m *memCache) Close()                     {}

// fakeEnricher управляется из теста: фиксированный ответ, ошибка или зависание
type fakeEnricher struct {
	meta  domain.FileMeta
	err   error
	delay time.Duration
}

func (f *fakeEnricher) Enrich(ctx context.Context, _ string, _ []byte) (domain.FileMeta, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.FileMeta{}, ctx.Err()
		}
	}
	if f.err != nil {
		return domain.FileMeta{}, f.err
	}
	return f.meta, nil
}

// ---- Сборка окружения ----

type testEnv struct {
	handler  *Handler
	files    *memFiles
	storage  *memStorage
	cache    *memCache
	enricher *fakeEnricher
	mux      *http.ServeMux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		files:   newMemFiles(),
		storage: newMemStorage(),
		cache:   newMemCache(),
		enricher: &fakeEnricher{
			meta: domain.FileMeta{Summary: "remote summary", Tags: []string{"remote"}},
		},
	}
	env.handler = &Handler{
		Log:           log.New(io.Discard, "", 0),
		Files:         env.files,
		Storage:       env.storage,
		Cache:         env.cache,
		Enricher:      env.enricher,
		EnrichTimeout: 100 * time.Millisecond,
		ListTTL:       60,
		StatsTTL:      30,
	}

	// те же маршруты, что и в transport/web
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/files", env.handler.Upload)
	mux.HandleFunc("GET /api/v1/files", env.handler.List)
	mux.HandleFunc("GET /api/v1/files/search", env.handler.Search)
	mux.HandleFunc("GET /api/v1/files/{id}", env.handler.GetOne)
	mux.HandleFunc("DELETE /api/v1/files/{id}", env.handler.Delete)
	mux.HandleFunc("GET /api/v1/files/{id}/download", env.handler.Download)
	mux.HandleFunc("GET /api/v1/files/{id}/preview", env.handler.Preview)
	mux.HandleFunc("GET /api/v1/stats", env.handler.Stats)
	env.mux = mux

	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	return rec
}

// multipartBody собирает multipart/form-data с одним полем file и
// заданным Content-Type части
func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func (env *testEnv) upload(t *testing.T, filename, contentType string, content []byte) uploadResponse {
	t.Helper()

	body, ct := multipartBody(t, filename, contentType, content)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", body)
	req.Header.Set("Content-Type", ct)

	rec := env.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload %q: status %d body %s", filename, rec.Code, rec.Body.String())
	}
	var out uploadResponse
	decode(t, rec, &out)
	return out
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

var errBoom = errors.New("boom")
