package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

const (
	MsgUnavailable = "AI サービスが利用できません。GEMINI_API_KEY を設定してください。"
	MsgUnparsable  = "AI からの応答を解析できませんでした"
	msgFailed      = "エラーが発生しました: %s"
)

const promptTemplate = `
以下の企業について、日本の就職活動で役立つ情報をJSON形式で提供してください。
実在する企業の場合は正確な情報を、不明な場合は一般的な推測を記載してください。

企業名: %s

以下のJSON形式で回答してください（コードブロックなし、JSONのみ）:
{
  "industry": "業界（例: IT・ソフトウェア、金融、製造、コンサルティングなど）",
  "job_type": "主な職種（例: エンジニア、営業、企画、コンサルタントなど）",
  "location": "主な勤務地（例: 東京、大阪、全国など）",
  "salary": "初任給の目安（例: 25万円、30万円など）",
  "website_url": "企業の公式ウェブサイトURL（推測可能な場合）"
}

不明な項目は null としてください。
`

// Service pede ao LLM os metadados de uma empresa. Model nil = indisponível.
type Service struct {
	Model   llms.Model
	Timeout time.Duration
}

// NewGemini cria o Service sobre o Gemini. Sem chave o Service responde "indisponível".
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Service, error) {
	s := &Service{Timeout: timeout}
	if apiKey == "" {
		slog.Warn("ai_disabled", "reason", "GEMINI_API_KEY not set")
		return s, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return s, fmt.Errorf("gemini client: %w", err)
	}
	s.Model = llm
	return s, nil
}

func (s *Service) Available() bool { return s != nil && s.Model != nil }

func (s *Service) CompanyInfo(ctx context.Context, name string) models.CompanyInfo {
	if !s.Available() {
		return failure(MsgUnavailable)
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(promptTemplate, name)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Model, prompt)
	if err != nil {
		slog.Error("ai_generate_error", "company", name, "err", err)
		return failure(fmt.Sprintf(msgFailed, err.Error()))
	}

	info, err := Parse(resp)
	if err != nil {
		slog.Warn("ai_parse_error", "company", name, "err", err, "response", resp)
		return failure(MsgUnparsable)
	}
	return info
}

var errNotObject = errors.New("response is not a JSON object")

// Parse extrai o JSON da resposta, com ou sem bloco de código.
func Parse(text string) (models.CompanyInfo, error) {
	text = StripFences(text)

	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return models.CompanyInfo{}, err
	}
	if raw == nil {
		return models.CompanyInfo{}, errNotObject
	}
	return models.CompanyInfo{
		Industry:   str(raw["industry"]),
		JobType:    str(raw["job_type"]),
		Location:   str(raw["location"]),
		Salary:     str(raw["salary"]),
		WebsiteURL: str(raw["website_url"]),
	}, nil
}

// StripFences remove ```json ... ``` ou ``` ... ``` em volta do JSON.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if _, after, ok := strings.Cut(text, "```json"); ok {
		text = after
	} else if _, after, ok := strings.Cut(text, "```"); ok {
		text = after
	} else {
		return text
	}
	if before, _, ok := strings.Cut(text, "```"); ok {
		text = before
	}
	return strings.TrimSpace(text)
}

// vazio vira null
func str(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		t = strings.TrimSpace(t)
		if t == "" || t == "null" {
			return nil
		}
		return &t
	default:
		s := fmt.Sprint(t)
		return &s
	}
}

func failure(msg string) models.CompanyInfo {
	return models.CompanyInfo{Error: &msg}
}
