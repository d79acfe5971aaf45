package domain

// Конверт ошибки: стабильный код + человекочитаемый текст.
// Успешные ответы отдаются как есть (формы из API), без конверта.
// Внутренние storage-ключи в text не попадают.
type APIError struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func Fail(code int, text string) ErrorEnvelope {
	return ErrorEnvelope{Error: APIError{Code: code, Text: text}}
}
