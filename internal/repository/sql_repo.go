package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

// SQLCompanyRepository guarda companies via gorm (SQLite ou Postgres).
type SQLCompanyRepository struct {
	db *gorm.DB
}

func NewSQLCompanyRepository(db *gorm.DB) *SQLCompanyRepository {
	return &SQLCompanyRepository{db: db}
}

func (r *SQLCompanyRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&models.Company{})
}

func (r *SQLCompanyRepository) Create(ctx context.Context, c *models.Company) error {
	ApplyDefaults(c)
	now := time.Now().UTC()
	c.ID = 0
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *SQLCompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	var c models.Company
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SQLCompanyRepository) List(ctx context.Context, q ListQuery) ([]models.Company, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Model(&models.Company{})
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Industry != "" {
		tx = tx.Where("industry = ?", q.Industry)
	}
	if q.Priority != 0 {
		tx = tx.Where("priority = ?", q.Priority)
	}
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy}, Desc: q.Desc()})
	if q.SortBy != "id" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: q.Desc()})
	}

	list := []models.Company{}
	if err := tx.Offset(q.Skip).Limit(q.Limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SQLCompanyRepository) Search(ctx context.Context, keyword string) ([]models.Company, error) {
	list := []models.Company{}
	err := r.db.WithContext(ctx).
		Where(`company_name LIKE ? ESCAPE '\'`, "%"+escapeLike(keyword)+"%").
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SQLCompanyRepository) Update(ctx context.Context, id int64, ch Changes) (*models.Company, error) {
	var out models.Company
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur models.Company
		if err := tx.First(&cur, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		set := make(map[string]any, len(ch)+1)
		for k, v := range ch {
			set[k] = v
		}
		set["updated_at"] = time.Now().UTC()

		if err := tx.Model(&cur).Updates(set).Error; err != nil {
			return fmt.Errorf("update company %d: %w", id, err)
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SQLCompanyRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Company{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLCompanyRepository) Statistics(ctx context.Context) (models.Statistics, error) {
	st := NewStatistics()

	var rows []struct {
		Status string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&models.Company{}).
		Select("status, count(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return st, err
	}
	for _, row := range rows {
		st.Total += row.N
		if _, ok := st.ByStatus[row.Status]; ok {
			st.ByStatus[row.Status] = row.N
		}
	}
	return st, nil
}

func (r *SQLCompanyRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
