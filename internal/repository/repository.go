package repository

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

var ErrNotFound = errors.New("company not found")

var ErrUnknownSortColumn = errors.New("unknown sort column")

// SortColumns são as colunas aceitas em sort_by.
var SortColumns = []string{
	"id", "company_name", "industry", "job_type", "location", "salary",
	"status", "priority", "es_deadline", "es_submitted", "interview_count",
	"next_interview_date", "created_at", "updated_at",
}

const (
	DefaultLimit  = 100
	DefaultSortBy = "created_at"
)

type ListQuery struct {
	Skip     int
	Limit    int
	Status   string
	Industry string
	Priority int
	SortBy   string
	Order    string // asc | desc
}

// Normalize aplica os defaults e valida sort_by.
func (q ListQuery) Normalize() (ListQuery, error) {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if !slices.Contains(SortColumns, q.SortBy) {
		return q, ErrUnknownSortColumn
	}
	if strings.ToLower(q.Order) == "asc" {
		q.Order = "asc"
	} else {
		q.Order = "desc"
	}
	return q, nil
}

func (q ListQuery) Desc() bool { return q.Order != "asc" }

// Changes maps column -> new value; a nil value clears the column.
type Changes map[string]any

// BuildChanges converts a tri-state update into column assignments.
// Unset fields are left out; null fields become nil.
func BuildChanges(u models.CompanyUpdate, loc *time.Location) (Changes, error) {
	ch := Changes{}
	setValue(ch, "company_name", u.CompanyName)
	setString(ch, "industry", u.Industry)
	setString(ch, "job_type", u.JobType)
	setString(ch, "location", u.Location)
	setString(ch, "salary", u.Salary)
	setValue(ch, "status", u.Status)
	setValue(ch, "priority", u.Priority)
	setString(ch, "es_deadline", u.ESDeadline)
	setValue(ch, "es_submitted", u.ESSubmitted)
	setValue(ch, "interview_count", u.InterviewCount)
	setString(ch, "website_url", u.WebsiteURL)
	setString(ch, "recruit_url", u.RecruitURL)
	setString(ch, "mypage_id", u.MypageID)
	setString(ch, "mypage_password", u.MypagePassword)
	setString(ch, "notes", u.Notes)
	setString(ch, "interview_notes", u.InterviewNotes)

	if f := u.NextInterviewDate; f.Set {
		if f.Null || strings.TrimSpace(f.Value) == "" {
			ch["next_interview_date"] = nil
		} else {
			t, err := models.ParseInterviewTime(f.Value, loc)
			if err != nil {
				return nil, err
			}
			ch["next_interview_date"] = t.UTC()
		}
	}
	return ch, nil
}

func setValue[T any](ch Changes, col string, f models.Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		ch[col] = nil
		return
	}
	ch[col] = f.Value
}

// colunas opcionais: string vazia é tratada como null
func setString(ch Changes, col string, f models.Field[string]) {
	if !f.Set {
		return
	}
	if f.Null || strings.TrimSpace(f.Value) == "" {
		ch[col] = nil
		return
	}
	ch[col] = strings.TrimSpace(f.Value)
}

// ApplyDefaults preenche status/prioridade e normaliza o registro antes do insert.
func ApplyDefaults(c *models.Company) {
	if c.Status == "" {
		c.Status = models.DefaultStatus
	}
	if c.Priority == 0 {
		c.Priority = models.DefaultPriority
	}
}

// NewStatistics returns a Statistics with every status present.
func NewStatistics() models.Statistics {
	st := models.Statistics{ByStatus: make(map[string]int64, len(models.Statuses))}
	for _, s := range models.Statuses {
		st.ByStatus[string(s)] = 0
	}
	return st
}
