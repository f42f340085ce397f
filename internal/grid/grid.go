// Package grid guarda o estado da lista de companies: ordenação, filtro por
// status, seleção, modo de exibição e colunas visíveis.
package grid

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

type View string

const (
	ViewTable View = "table"
	ViewCard  View = "card"
)

type Column struct {
	Key    string
	Label  string
	Locked bool // não pode ser escondida
}

var Columns = []Column{
	{Key: "company_name", Label: "企業名", Locked: true},
	{Key: "industry", Label: "業界"},
	{Key: "job_type", Label: "職種"},
	{Key: "location", Label: "勤務地"},
	{Key: "status", Label: "状態"},
	{Key: "priority", Label: "優先度"},
	{Key: "es_deadline", Label: "ES締切"},
	{Key: "es_submitted", Label: "ES提出"},
	{Key: "interview_count", Label: "面接回数"},
	{Key: "next_interview_date", Label: "次回面接"},
	{Key: "salary", Label: "給与"},
	{Key: "created_at", Label: "登録日"},
}

func column(key string) (Column, bool) {
	for _, c := range Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

type State struct {
	Status   string // filtro exato; vazio = todos
	SortKey  string // vazio = ordem do servidor
	Desc     bool
	View     View
	Hidden   map[string]bool
	Selected map[int64]bool
}

func New() *State {
	return &State{View: ViewTable, Hidden: map[string]bool{}, Selected: map[int64]bool{}}
}

// ToggleSort: mesma coluna inverte a direção, outra coluna começa ascendente.
func (s *State) ToggleSort(key string) {
	if _, ok := column(key); !ok {
		return
	}
	if s.SortKey == key {
		s.Desc = !s.Desc
		return
	}
	s.SortKey = key
	s.Desc = false
}

// Visible ordena e depois filtra por status.
func (s *State) Visible(records []models.Company) []models.Company {
	out := Sort(records, s.SortKey, s.Desc)
	if s.Status == "" {
		return out
	}
	return slices.DeleteFunc(out, func(c models.Company) bool {
		return string(c.Status) != s.Status
	})
}

func (s *State) ToggleRow(id int64) {
	if s.Selected[id] {
		delete(s.Selected, id)
		return
	}
	s.Selected[id] = true
}

// ToggleAll seleciona exatamente visible; se todos já estão selecionados, limpa tudo.
func (s *State) ToggleAll(visible []models.Company) {
	if s.AllSelected(visible) {
		clear(s.Selected)
		return
	}
	clear(s.Selected)
	for _, c := range visible {
		s.Selected[c.ID] = true
	}
}

func (s *State) AllSelected(visible []models.Company) bool {
	if len(visible) == 0 {
		return false
	}
	for _, c := range visible {
		if !s.Selected[c.ID] {
			return false
		}
	}
	return true
}

// SelectedIDs em ordem crescente.
func (s *State) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reconcile descarta da seleção ids que não estão mais em records.
func (s *State) Reconcile(records []models.Company) {
	present := make(map[int64]bool, len(records))
	for _, c := range records {
		present[c.ID] = true
	}
	for id := range s.Selected {
		if !present[id] {
			delete(s.Selected, id)
		}
	}
}

func (s *State) ToggleColumn(key string) {
	col, ok := column(key)
	if !ok || col.Locked {
		return
	}
	if s.Hidden[key] {
		delete(s.Hidden, key)
		return
	}
	s.Hidden[key] = true
}

func (s *State) VisibleColumns() []Column {
	out := make([]Column, 0, len(Columns))
	for _, c := range Columns {
		if c.Locked || !s.Hidden[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// Sort devolve uma cópia ordenada de forma estável. Nulos ficam no fim nas duas direções.
func Sort(records []models.Company, key string, desc bool) []models.Company {
	out := slices.Clone(records)
	if key == "" {
		return out
	}
	if _, ok := column(key); !ok {
		return out
	}

	coll := collate.New(language.Japanese)
	slices.SortStableFunc(out, func(a, b models.Company) int {
		va, vb := sortValue(a, key), sortValue(b, key)
		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}
		c := compare(coll, va, vb)
		if desc {
			return -c
		}
		return c
	})
	return out
}

func compare(coll *collate.Collator, a, b any) int {
	switch x := a.(type) {
	case string:
		return coll.CompareString(x, b.(string))
	case int:
		return cmp.Compare(x, b.(int))
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case time.Time:
		return x.Compare(b.(time.Time))
	}
	return 0
}

// sortValue devolve nil para campo ausente.
func sortValue(c models.Company, key string) any {
	str := func(p *string) any {
		if p == nil || *p == "" {
			return nil
		}
		return *p
	}
	switch key {
	case "company_name":
		return c.CompanyName
	case "industry":
		return str(c.Industry)
	case "job_type":
		return str(c.JobType)
	case "location":
		return str(c.Location)
	case "salary":
		return str(c.Salary)
	case "status":
		return string(c.Status)
	case "priority":
		return c.Priority
	case "es_deadline":
		// YYYY-MM-DD ordena como texto
		return str(c.ESDeadline)
	case "es_submitted":
		return c.ESSubmitted
	case "interview_count":
		return c.InterviewCount
	case "next_interview_date":
		if c.NextInterviewDate == nil {
			return nil
		}
		return *c.NextInterviewDate
	case "created_at":
		return c.CreatedAt
	}
	return nil
}
