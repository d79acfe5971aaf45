package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

// Put загружает поток целиком под заданным ключом. Размер известен заранее
// (тело уже прочитано конвейером), поэтому отдаём его minio явно.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, mime string) error {
	start := time.Now()
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		s.logger.Printf("PUT %q failed after %s: %v", key, time.Since(start), err)
		return err
	}
	s.logger.Printf("PUT %q ok in %s size=%d", key, time.Since(start), info.Size)
	return nil
}

// Get открывает поток для чтения и отдаёт размер и content-type объекта.
// Отсутствующий объект — domain.ErrBlobMissing: мета в каталоге есть, байтов нет.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, int64, string, error) {
	// HEAD: базовая мета (размер, content-type) + проверка существования
	info, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			s.logger.Printf("GET %q: object missing", key)
			return nil, 0, "", fmt.Errorf("%w: %s", domain.ErrBlobMissing, "object not in bucket")
		}
		s.logger.Printf("GET %q stat failed: %v", key, err)
		return nil, 0, "", err
	}

	obj, err := s.cl.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Printf("GET %q failed: %v", key, err)
		return nil, 0, "", err
	}
	s.logger.Printf("GET %q ok size=%d", key, info.Size)
	return obj, info.Size, info.ContentType, nil
}

// Delete идемпотентен: удаление отсутствующего объекта — успех,
// целевое состояние «блоба нет» уже достигнуто.
func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		s.logger.Printf("DELETE %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("DELETE %q ok", key)
	return nil
}

func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Printf("PING failed: %v", err)
		return err
	}
	if !ok {
		s.logger.Printf("PING: bucket %q does not exist", s.bucket)
		return errors.New("bucket does not exist")
	}
	return nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || strings.EqualFold(resp.Code, "NotFound")
}
