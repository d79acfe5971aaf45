package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

const fileColumns = "id, original_name, storage_key, size_bytes, content_type, summary, tags, uploaded_at"

func (r *PGRepo) files() string { return fmt.Sprintf("%s.files", r.schema) }

func (r *PGRepo) CreateFile(ctx context.Context, rec domain.FileRecord) (domain.FileRecord, error) {
	// uploaded_at выставляет БД (now()), запись после этого не мутируется
	q := r.qb().Insert(r.files()).
		Columns("id", "original_name", "storage_key", "size_bytes", "content_type", "summary", "tags").
		Values(rec.ID, rec.OriginalName, rec.StorageKey, rec.SizeBytes, rec.ContentType, rec.Summary, rec.Tags).
		Suffix("RETURNING " + fileColumns)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreateFile", sqlStr, args)

	start := time.Now()
	out, err := scanFile(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreateFile scan error after %s: %v", time.Since(start), err)
		return domain.FileRecord{}, err
	}
	r.logger.Printf("CreateFile ok in %s id=%s name=%q size=%d", time.Since(start), out.ID, out.OriginalName, out.SizeBytes)
	return out, nil
}

func (r *PGRepo) FileByID(ctx context.Context, id domain.FileID) (domain.FileRecord, error) {
	q := r.qb().Select(fileColumns).
		From(r.files()).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FileByID", sqlStr, args)

	start := time.Now()
	out, err := scanFile(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("FileByID not found in %s id=%s", time.Since(start), id)
			return domain.FileRecord{}, domain.ErrNotFound
		}
		r.logger.Printf("FileByID scan error after %s: %v", time.Since(start), err)
		return domain.FileRecord{}, err
	}
	r.logger.Printf("FileByID ok in %s id=%s", time.Since(start), out.ID)
	return out, nil
}

func (r *PGRepo) FilesList(ctx context.Context) ([]domain.FileRecord, error) {
	q := r.qb().Select(fileColumns).
		From(r.files()).
		OrderBy("uploaded_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FilesList", sqlStr, args)

	return r.queryFiles(ctx, "FilesList", sqlStr, args)
}

// Регистронезависимый substring-поиск: имя ИЛИ summary ИЛИ любой тег.
func (r *PGRepo) FilesSearch(ctx context.Context, query string) ([]domain.FileRecord, error) {
	pattern := "%" + query + "%"
	q := r.qb().Select(fileColumns).
		From(r.files()).
		Where(sq.Or{
			sq.ILike{"original_name": pattern},
			sq.ILike{"summary": pattern},
			sq.Expr("array_to_string(tags, ',') ILIKE ?", pattern),
		}).
		OrderBy("uploaded_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("FilesSearch", sqlStr, args)

	return r.queryFiles(ctx, "FilesSearch", sqlStr, args)
}

func (r *PGRepo) DeleteFile(ctx context.Context, id domain.FileID) error {
	q := r.qb().Delete(r.files()).
		Where(sq.Eq{"id": id})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("DeleteFile", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("DeleteFile exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("DeleteFile no rows affected in %s id=%s", time.Since(start), id)
		return domain.ErrNotFound
	}
	r.logger.Printf("DeleteFile ok in %s id=%s", time.Since(start), id)
	return nil
}

// UsageByType отдаёт сырые агрегаты по content_type; сведение в категории
// (image/application/...) делает слой запросов.
func (r *PGRepo) UsageByType(ctx context.Context) ([]domain.TypeUsage, error) {
	q := r.qb().Select("content_type", "COUNT(id)", "COALESCE(SUM(size_bytes), 0)").
		From(r.files()).
		GroupBy("content_type")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("UsageByType", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("UsageByType query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.TypeUsage
	for rows.Next() {
		var u domain.TypeUsage
		if err := rows.Scan(&u.ContentType, &u.Count, &u.Bytes); err != nil {
			r.logger.Printf("UsageByType scan error: %v", err)
			return nil, err
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("UsageByType rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("UsageByType ok in %s groups=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) queryFiles(ctx context.Context, op, sqlStr string, args []any) ([]domain.FileRecord, error) {
	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("%s query error after %s: %v", op, time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.FileRecord
	for rows.Next() {
		rec, err := scanFile(rows)
		if err != nil {
			r.logger.Printf("%s scan error: %v", op, err)
			return nil, err
		}
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("%s rows error: %v", op, err)
		return nil, err
	}
	r.logger.Printf("%s ok in %s count=%d", op, time.Since(start), len(res))
	return res, nil
}

func scanFile(row pgx.Row) (domain.FileRecord, error) {
	var rec domain.FileRecord
	err := row.Scan(
		&rec.ID, &rec.OriginalName, &rec.StorageKey, &rec.SizeBytes,
		&rec.ContentType, &rec.Summary, &rec.Tags, &rec.UploadedAt,
	)
	return rec, err
}
