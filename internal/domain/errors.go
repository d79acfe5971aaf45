package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrNotFound         = errors.New("not_found")          // 404: нет записи в каталоге
	ErrBlobMissing      = errors.New("blob_missing")       // 404 наружу, но отличимо в логах: мета есть, байтов нет
	ErrNotAnImage       = errors.New("not_an_image")       // 400: preview не для image/*
	ErrStorageWrite     = errors.New("storage_write")      // 500: запись блоба не удалась, записи каталога нет
	ErrEnrichment       = errors.New("enrichment_failed")  // наружу не выходит никогда — гасится fallback-классификатором
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Стабильные коды для конверта ошибки
const (
	ErrCodeBadParams        = 1000
	ErrCodeNotFound         = 1404
	ErrCodeNotAnImage       = 1415
	ErrCodeMethodNotAllowed = 1405
	ErrCodeStorageWrite     = 1500
	ErrCodeUnexpected       = 1999
)
