package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Werneck0live/shukatsu-tracker/internal/client"
	"github.com/Werneck0live/shukatsu-tracker/internal/detail"
	"github.com/Werneck0live/shukatsu-tracker/internal/grid"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

// pageSize das chamadas de List; a página busca todas até vir uma página curta.
const pageSize = 500

// fetchAll traz a lista inteira: filtro e ordenação são locais.
func fetchAll(ctx context.Context, api API) ([]models.Company, error) {
	var all []models.Company
	for skip := 0; ; skip += pageSize {
		page, err := api.List(ctx, client.ListParams{Skip: skip, Limit: pageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

type listAPI struct{ API }

func (a listAPI) List(ctx context.Context) ([]models.Company, error) {
	return fetchAll(ctx, a.API)
}

type listView struct {
	State    *grid.State
	Rows     []models.Company
	Columns  []grid.Column
	All      []grid.Column
	Statuses []models.Status
	Total    int
	Confirm  string
}

// Link monta a URL de uma ação sobre o estado atual.
func (v listView) Link(action, arg string) string {
	q := v.State.Encode()
	q.Set("action", action)
	if arg != "" {
		q.Set("arg", arg)
	}
	return "/companies?" + q.Encode()
}

func (v listView) StateQuery() string { return v.State.Encode().Encode() }

func (v listView) Selected(id int64) bool { return v.State.Selected[id] }

func (v listView) Hidden(key string) bool { return v.State.Hidden[key] }

func (v listView) AllSelected() bool { return v.State.AllSelected(v.Rows) }

func (v listView) SortMark(key string) string {
	if v.State.SortKey != key {
		return ""
	}
	if v.State.Desc {
		return "▼"
	}
	return "▲"
}

func (v listView) Cell(c models.Company, key string) string {
	return cell(c, key)
}

func cell(c models.Company, key string) string {
	str := func(p *string) string {
		if p == nil {
			return "-"
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
		return detail.Stars(c.Priority)
	case "es_deadline":
		return str(c.ESDeadline)
	case "es_submitted":
		if c.ESSubmitted {
			return "✓"
		}
		return "-"
	case "interview_count":
		return strconv.Itoa(c.InterviewCount)
	case "next_interview_date":
		if c.NextInterviewDate == nil {
			return "-"
		}
		return c.NextInterviewDate.Local().Format("01/02 15:04")
	case "created_at":
		return c.CreatedAt.Local().Format("2006/01/02")
	}
	return ""
}

func canonical(st *grid.State, extra url.Values) string {
	q := st.Encode()
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if len(q) == 0 {
		return "/companies"
	}
	return "/companies?" + q.Encode()
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	st := grid.Decode(q)

	ctx, cancel := s.ctx(r)
	defer cancel()
	records, err := fetchAll(ctx, s.API)

	// ação: aplica uma transição e volta para a URL canônica
	if action := q.Get("action"); action != "" {
		if err == nil {
			st.Reconcile(records)
			st.Apply(action, q.Get("arg"), records)
		}
		http.Redirect(w, r, canonical(st, nil), http.StatusFound)
		return
	}

	p := page{Title: "企業一覧", LiveURL: s.LiveURL}
	if err != nil {
		slog.Error("company_list_error", "err", err)
		p.Flash = msgLoadFailed
		records = nil
	} else {
		st.Reconcile(records)
	}
	if msg, ok := flashes[q.Get("flash")]; ok {
		p.Flash = msg
	}

	p.Data = listView{
		State:    st,
		Rows:     st.Visible(records),
		Columns:  st.VisibleColumns(),
		All:      grid.Columns,
		Statuses: models.Statuses,
		Total:    len(records),
		Confirm:  msgConfirm,
	}
	s.render(w, http.StatusOK, "list.html", p)
}

func (s *Server) bulkDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, _ := url.ParseQuery(r.PostForm.Get("state"))
	st := grid.Decode(state)
	if len(st.Selected) == 0 {
		http.Redirect(w, r, canonical(st, nil), http.StatusSeeOther)
		return
	}

	ctx, cancel := s.ctx(r)
	defer cancel()
	n := len(st.Selected)
	if _, err := grid.DeleteSelected(ctx, listAPI{s.API}, st); err != nil {
		slog.Warn("bulk_delete_failed", "selected", n, "err", err)
		http.Redirect(w, r, canonical(st, url.Values{"flash": {"delete_failed"}}), http.StatusSeeOther)
		return
	}
	slog.Info("bulk_delete_done", "deleted", n)
	http.Redirect(w, r, canonical(st, nil), http.StatusSeeOther)
}
