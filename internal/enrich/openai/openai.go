// Package openai — удалённое обогащение метаданных через chat completions.
// Сервис считается ненадёжным: любая ошибка здесь — recoverable, конвейер
// загрузки гасит её локальным классификатором.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/EgorLis/cloud-vault/internal/domain"
)

const defaultModel = openai.ChatModelGPT4oMini

type Config struct {
	APIKey string
	Model  string
}

type Enricher struct {
	cl     openai.Client
	model  openai.ChatModel
	logger *log.Logger
}

func New(cfg Config, logger *log.Logger) *Enricher {
	model := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = defaultModel
	}
	return &Enricher{
		cl:     openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  model,
		logger: logger,
	}
}

// Enrich запрашивает у модели строгий JSON {"summary": ..., "tags": [...]}.
// Контент в промпт не кладём — модели достаточно имени файла, а байты могут
// быть бинарными и большими.
func (e *Enricher) Enrich(ctx context.Context, filename string, _ []byte) (domain.FileMeta, error) {
	prompt := fmt.Sprintf(
		`Generate a brief summary and 3 relevant tags for a file named: %s. `+
			`Respond with JSON only: {"summary": "...", "tags": ["...", "...", "..."]}`,
		filename,
	)

	start := time.Now()
	completion, err := e.cl.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: e.model,
	})
	if err != nil {
		e.logger.Printf("enrich %q failed after %s: %v", filename, time.Since(start), err)
		return domain.FileMeta{}, fmt.Errorf("%w: %v", domain.ErrEnrichment, err)
	}
	if len(completion.Choices) == 0 {
		return domain.FileMeta{}, fmt.Errorf("%w: empty choices", domain.ErrEnrichment)
	}

	meta, err := parseMeta(completion.Choices[0].Message.Content)
	if err != nil {
		e.logger.Printf("enrich %q unparsable response: %v", filename, err)
		return domain.FileMeta{}, err
	}
	e.logger.Printf("enrich %q ok in %s tags=%v", filename, time.Since(start), meta.Tags)
	return meta, nil
}

// parseMeta разбирает ответ модели. Модели любят заворачивать JSON в
// markdown-ограждения — срезаем их перед Unmarshal.
func parseMeta(raw string) (domain.FileMeta, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var meta domain.FileMeta
	if err := json.Unmarshal([]byte(s), &meta); err != nil {
		return domain.FileMeta{}, fmt.Errorf("%w: malformed response: %v", domain.ErrEnrichment, err)
	}
	if meta.Summary == "" || len(meta.Tags) == 0 {
		return domain.FileMeta{}, fmt.Errorf("%w: incomplete metadata", domain.ErrEnrichment)
	}
	return meta, nil
}
