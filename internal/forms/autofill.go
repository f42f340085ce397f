package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

var ErrInFlight = errors.New("AI による自動入力を実行中です")

// AutofillError carrega o texto do erro vindo da API ou da rede.
type AutofillError struct {
	Reason string
}

func (e *AutofillError) Error() string {
	return fmt.Sprintf("AI による自動入力に失敗しました: %s", e.Reason)
}

type InfoSource interface {
	CompanyInfo(ctx context.Context, name string) (models.CompanyInfo, error)
}

// Autofiller permite uma chamada por formulário de cada vez.
type Autofiller struct {
	Source   InfoSource
	inflight sync.Map // form key -> struct{}
}

func NewAutofiller(src InfoSource) *Autofiller {
	return &Autofiller{Source: src}
}

func (a *Autofiller) Busy(key string) bool {
	_, ok := a.inflight.Load(key)
	return ok
}

// Fill completa v com a sugestão da IA. Em erro v não é alterado.
func (a *Autofiller) Fill(ctx context.Context, key string, v *Values) ([]string, error) {
	name := strings.TrimSpace(v.CompanyName)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, loaded := a.inflight.LoadOrStore(key, struct{}{}); loaded {
		return nil, ErrInFlight
	}
	defer a.inflight.Delete(key)

	info, err := a.Source.CompanyInfo(ctx, name)
	if err != nil {
		return nil, &AutofillError{Reason: err.Error()}
	}
	if info.Error != nil {
		return nil, &AutofillError{Reason: *info.Error}
	}
	return MergeAutofill(v, info), nil
}

// MergeAutofill só preenche campos vazios; devolve os nomes preenchidos.
func MergeAutofill(v *Values, info models.CompanyInfo) []string {
	var filled []string
	set := func(name string, dst *string, src *string) {
		if src == nil || strings.TrimSpace(*src) == "" || strings.TrimSpace(*dst) != "" {
			return
		}
		*dst = strings.TrimSpace(*src)
		filled = append(filled, name)
	}
	set("industry", &v.Industry, info.Industry)
	set("job_type", &v.JobType, info.JobType)
	set("location", &v.Location, info.Location)
	set("salary", &v.Salary, info.Salary)
	set("website_url", &v.WebsiteURL, info.WebsiteURL)
	return filled
}
