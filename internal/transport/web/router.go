package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/EgorLis/cloud-vault/internal/docs"
	"github.com/EgorLis/cloud-vault/internal/transport/web/mw"
	"github.com/EgorLis/cloud-vault/internal/transport/web/v1/file"
	"github.com/EgorLis/cloud-vault/internal/transport/web/v1/health"
)

func newRouter(hh *health.Handler, fh *file.Handler, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /api/v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /api/v1/readyz", hh.Readiness)

	// files
	mux.HandleFunc("POST /api/v1/files", limitBody(64<<20, fh.Upload)) // 64MB лимит
	mux.HandleFunc("GET /api/v1/files", fh.List)
	mux.HandleFunc("GET /api/v1/files/search", fh.Search)
	mux.HandleFunc("GET /api/v1/files/{id}", fh.GetOne)
	mux.HandleFunc("DELETE /api/v1/files/{id}", fh.Delete)
	mux.HandleFunc("GET /api/v1/files/{id}/download", fh.Download)
	mux.HandleFunc("GET /api/v1/files/{id}/preview", fh.Preview)
	mux.HandleFunc("GET /api/v1/stats", fh.Stats)

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
