// Package forms converte os formulários de criação/edição em payloads da API.
package forms

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

var ErrNameRequired = errors.New("企業名を入力してください")

// Values é o conteúdo cru do formulário, como o navegador envia.
type Values struct {
	CompanyName       string
	Industry          string
	JobType           string
	Location          string
	Salary            string
	Status            string
	Priority          string
	ESDeadline        string
	ESSubmitted       bool
	InterviewCount    string
	NextInterviewDate string
	WebsiteURL        string
	RecruitURL        string
	MypageID          string
	MypagePassword    string
	Notes             string
	InterviewNotes    string
}

func FromURLValues(f url.Values) Values {
	return Values{
		CompanyName:       f.Get("company_name"),
		Industry:          f.Get("industry"),
		JobType:           f.Get("job_type"),
		Location:          f.Get("location"),
		Salary:            f.Get("salary"),
		Status:            f.Get("status"),
		Priority:          f.Get("priority"),
		ESDeadline:        f.Get("es_deadline"),
		ESSubmitted:       checked(f.Get("es_submitted")),
		InterviewCount:    f.Get("interview_count"),
		NextInterviewDate: f.Get("next_interview_date"),
		WebsiteURL:        f.Get("website_url"),
		RecruitURL:        f.Get("recruit_url"),
		MypageID:          f.Get("mypage_id"),
		MypagePassword:    f.Get("mypage_password"),
		Notes:             f.Get("notes"),
		InterviewNotes:    f.Get("interview_notes"),
	}
}

func checked(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// FromCompany pré-preenche o formulário de edição; datas saem no fuso loc.
func FromCompany(c models.Company, loc *time.Location) Values {
	v := Values{
		CompanyName:    c.CompanyName,
		Industry:       deref(c.Industry),
		JobType:        deref(c.JobType),
		Location:       deref(c.Location),
		Salary:         deref(c.Salary),
		Status:         string(c.Status),
		Priority:       strconv.Itoa(c.Priority),
		ESDeadline:     deref(c.ESDeadline),
		ESSubmitted:    c.ESSubmitted,
		InterviewCount: strconv.Itoa(c.InterviewCount),
		WebsiteURL:     deref(c.WebsiteURL),
		RecruitURL:     deref(c.RecruitURL),
		MypageID:       deref(c.MypageID),
		MypagePassword: deref(c.MypagePassword),
		Notes:          deref(c.Notes),
		InterviewNotes: deref(c.InterviewNotes),
	}
	if c.NextInterviewDate != nil {
		v.NextInterviewDate = models.FormatInterviewInput(*c.NextInterviewDate, loc)
	}
	return v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (v Values) trimmed() Values {
	for _, p := range v.texts() {
		*p = strings.TrimSpace(*p)
	}
	return v
}

func (v *Values) texts() []*string {
	return []*string{
		&v.CompanyName, &v.Industry, &v.JobType, &v.Location, &v.Salary, &v.Status, &v.Priority,
		&v.ESDeadline, &v.InterviewCount, &v.NextInterviewDate, &v.WebsiteURL, &v.RecruitURL,
		&v.MypageID, &v.MypagePassword, &v.Notes, &v.InterviewNotes,
	}
}

// optional: vazio vira ausente.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// interviewCount: valor inválido vira 0.
func interviewCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// interviewDate: datetime-local do formulário, lido em loc, vai como RFC3339.
func interviewDate(s string, loc *time.Location) *string {
	if s == "" {
		return nil
	}
	v := models.InterviewInstant(s, loc)
	return &v
}

// ToCreate apara tudo e omite os opcionais vazios.
func ToCreate(raw Values, loc *time.Location) (models.CompanyCreate, error) {
	v := raw.trimmed()
	if v.CompanyName == "" {
		return models.CompanyCreate{}, ErrNameRequired
	}

	c := models.CompanyCreate{
		CompanyName:       v.CompanyName,
		Industry:          optional(v.Industry),
		JobType:           optional(v.JobType),
		Location:          optional(v.Location),
		Salary:            optional(v.Salary),
		ESDeadline:        optional(v.ESDeadline),
		NextInterviewDate: interviewDate(v.NextInterviewDate, loc),
		WebsiteURL:        optional(v.WebsiteURL),
		RecruitURL:        optional(v.RecruitURL),
		MypageID:          optional(v.MypageID),
		MypagePassword:    optional(v.MypagePassword),
		Notes:             optional(v.Notes),
		InterviewNotes:    optional(v.InterviewNotes),
		ESSubmitted:       models.Ptr(v.ESSubmitted),
		InterviewCount:    models.Ptr(interviewCount(v.InterviewCount)),
	}
	if v.Status != "" {
		c.Status = models.Ptr(models.Status(v.Status))
	}
	if p, err := strconv.Atoi(v.Priority); err == nil {
		c.Priority = &p
	}
	return c, nil
}

// ToUpdate compara com o registro carregado: igual fica de fora,
// apagado vira null e alterado leva o valor. Nunca envia string vazia.
func ToUpdate(orig models.Company, raw Values, loc *time.Location) (models.CompanyUpdate, error) {
	v := raw.trimmed()
	o := FromCompany(orig, loc).trimmed()
	if v.CompanyName == "" {
		return models.CompanyUpdate{}, ErrNameRequired
	}

	var u models.CompanyUpdate
	if v.CompanyName != o.CompanyName {
		u.CompanyName = models.Value(v.CompanyName)
	}

	text := []struct {
		dst       *models.Field[string]
		old, next string
	}{
		{&u.Industry, o.Industry, v.Industry},
		{&u.JobType, o.JobType, v.JobType},
		{&u.Location, o.Location, v.Location},
		{&u.Salary, o.Salary, v.Salary},
		{&u.ESDeadline, o.ESDeadline, v.ESDeadline},
		{&u.WebsiteURL, o.WebsiteURL, v.WebsiteURL},
		{&u.RecruitURL, o.RecruitURL, v.RecruitURL},
		{&u.MypageID, o.MypageID, v.MypageID},
		{&u.MypagePassword, o.MypagePassword, v.MypagePassword},
		{&u.Notes, o.Notes, v.Notes},
		{&u.InterviewNotes, o.InterviewNotes, v.InterviewNotes},
	}
	for _, f := range text {
		switch {
		case f.next == f.old:
		case f.next == "":
			*f.dst = models.Null[string]()
		default:
			*f.dst = models.Value(f.next)
		}
	}

	switch next := v.NextInterviewDate; {
	case next == o.NextInterviewDate:
	case next == "":
		u.NextInterviewDate = models.Null[string]()
	default:
		u.NextInterviewDate = models.Value(models.InterviewInstant(next, loc))
	}

	// status vazio não é null: a coluna é NOT NULL
	if v.Status != "" && v.Status != o.Status {
		u.Status = models.Value(models.Status(v.Status))
	}
	if p, err := strconv.Atoi(v.Priority); err == nil && p != orig.Priority {
		u.Priority = models.Value(p)
	}
	if n := interviewCount(v.InterviewCount); n != orig.InterviewCount {
		u.InterviewCount = models.Value(n)
	}
	if v.ESSubmitted != orig.ESSubmitted {
		u.ESSubmitted = models.Value(v.ESSubmitted)
	}
	return u, nil
}
