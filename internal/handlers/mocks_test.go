package handlers

import (
	"context"
	"errors"

	"github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
	"github.com/Werneck0live/shukatsu-tracker/internal/repository"
)

type repoMock struct {
	ListFn       func(ctx context.Context, q repository.ListQuery) ([]models.Company, error)
	SearchFn     func(ctx context.Context, keyword string) ([]models.Company, error)
	CreateFn     func(ctx context.Context, c *models.Company) error
	GetByIDFn    func(ctx context.Context, id int64) (*models.Company, error)
	UpdateFn     func(ctx context.Context, id int64, ch repository.Changes) (*models.Company, error)
	DeleteFn     func(ctx context.Context, id int64) error
	StatisticsFn func(ctx context.Context) (models.Statistics, error)
	PingFn       func(ctx context.Context) error
}

func (m *repoMock) List(ctx context.Context, q repository.ListQuery) ([]models.Company, error) {
	if m.ListFn == nil {
		return nil, errors.New("ListFn not set")
	}
	return m.ListFn(ctx, q)
}
func (m *repoMock) Search(ctx context.Context, keyword string) ([]models.Company, error) {
	if m.SearchFn == nil {
		return nil, errors.New("SearchFn not set")
	}
	return m.SearchFn(ctx, keyword)
}
func (m *repoMock) Create(ctx context.Context, c *models.Company) error {
	if m.CreateFn == nil {
		return errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, c)
}
func (m *repoMock) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, id int64, ch repository.Changes) (*models.Company, error) {
	if m.UpdateFn == nil {
		return nil, errors.New("UpdateFn not set")
	}
	return m.UpdateFn(ctx, id, ch)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}
func (m *repoMock) Statistics(ctx context.Context) (models.Statistics, error) {
	if m.StatisticsFn == nil {
		return models.Statistics{}, errors.New("StatisticsFn not set")
	}
	return m.StatisticsFn(ctx)
}
func (m *repoMock) Ping(ctx context.Context) error {
	if m.PingFn == nil {
		return nil
	}
	return m.PingFn(ctx)
}

type pubMock struct {
	PublishFn func(ctx context.Context, body []byte, headers amqp091.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body []byte, headers amqp091.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

type aiMock struct {
	CompanyInfoFn func(ctx context.Context, name string) models.CompanyInfo
}

func (a *aiMock) CompanyInfo(ctx context.Context, name string) models.CompanyInfo {
	return a.CompanyInfoFn(ctx, name)
}
