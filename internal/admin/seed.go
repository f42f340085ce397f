package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
	"github.com/Werneck0live/shukatsu-tracker/internal/repository"
)

//go:embed seeds/companies.json
var companiesJSON []byte

type Store interface {
	Search(ctx context.Context, keyword string) ([]models.Company, error)
	Create(ctx context.Context, c *models.Company) error
}

type seedItem struct {
	CompanyName    string  `json:"company_name"`
	Industry       *string `json:"industry"`
	JobType        *string `json:"job_type"`
	Location       *string `json:"location"`
	Salary         *string `json:"salary"`
	Status         string  `json:"status"`
	Priority       int     `json:"priority"`
	ESDeadline     *string `json:"es_deadline"`
	ESSubmitted    bool    `json:"es_submitted"`
	InterviewCount int     `json:"interview_count"`
	WebsiteURL     *string `json:"website_url"`
	Notes          *string `json:"notes"`
}

func (s seedItem) company() models.Company {
	c := models.Company{
		CompanyName:    s.CompanyName,
		Industry:       s.Industry,
		JobType:        s.JobType,
		Location:       s.Location,
		Salary:         s.Salary,
		Status:         models.Status(s.Status),
		Priority:       s.Priority,
		ESDeadline:     s.ESDeadline,
		ESSubmitted:    s.ESSubmitted,
		InterviewCount: s.InterviewCount,
		WebsiteURL:     s.WebsiteURL,
		Notes:          s.Notes,
	}
	repository.ApplyDefaults(&c)
	return c
}

// Idempotente: cria se não existir (mesmo company_name); se já existir, ignora.
func SeedCompanies(ctx context.Context, store Store, log *slog.Logger) error {
	return seed(ctx, store, log, companiesJSON)
}

func seed(ctx context.Context, store Store, log *slog.Logger, raw []byte) error {
	var items []seedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode seeds: %w", err)
	}

	created := 0
	for _, s := range items {
		if s.CompanyName == "" {
			log.Warn("seed_skip_empty_name")
			continue
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		ok, err := seedOne(ictx, store, s)
		cancel()
		if err != nil {
			return fmt.Errorf("seed %q: %w", s.CompanyName, err)
		}
		if !ok {
			log.Info("seed_company_exists", "name", s.CompanyName)
			continue
		}
		created++
		log.Info("seed_company_created", "name", s.CompanyName)
	}

	log.Info("seed_companies_done", "count", len(items), "created", created)
	return nil
}

func seedOne(ctx context.Context, store Store, s seedItem) (bool, error) {
	exists, err := hasName(ctx, store, s.CompanyName)
	if err != nil || exists {
		return false, err
	}
	c := s.company()
	return true, store.Create(ctx, &c)
}

// Search é por substring; aqui só vale o nome exato.
func hasName(ctx context.Context, store Store, name string) (bool, error) {
	list, err := store.Search(ctx, name)
	if err != nil {
		return false, err
	}
	for _, c := range list {
		if c.CompanyName == name {
			return true, nil
		}
	}
	return false, nil
}
