package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Werneck0live/shukatsu-tracker/internal/detail"
	"github.com/Werneck0live/shukatsu-tracker/internal/forms"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

const actionAutofill = "autofill"

type formView struct {
	Action   string // URL do POST
	Cancel   string
	Token    string // identifica o formulário para o guard do autofill
	Busy     bool
	Edit     bool
	V        forms.Values
	Statuses []models.Status
	Filled   []string
}

func (f formView) Priorities() []string { return []string{"1", "2", "3", "4", "5"} }

func (f formView) Stars(p string) string {
	n, _ := strconv.Atoi(p)
	return detail.Stars(n)
}

func newToken(r *http.Request) string {
	if t := r.PostFormValue("form_token"); t != "" {
		return t
	}
	return uuid.NewString()
}

func (s *Server) renderForm(w http.ResponseWriter, code int, title string, fv formView, flash, notice string) {
	fv.Statuses = models.Statuses
	fv.Busy = s.Autofill.Busy(fv.Token)
	s.render(w, code, "form.html", page{Title: title, Flash: flash, Notice: notice, Data: fv})
}

// autofill preenche fv.V em lugar; devolve flash e notice para a página.
func (s *Server) autofill(r *http.Request, fv *formView) (string, string) {
	ctx, cancel := s.ctx(r)
	defer cancel()
	filled, err := s.Autofill.Fill(ctx, fv.Token, &fv.V)
	if err != nil {
		slog.Warn("autofill_error", "token", fv.Token, "err", err)
		return err.Error(), ""
	}
	fv.Filled = filled
	if len(filled) == 0 {
		return "", "自動入力できる項目はありませんでした"
	}
	return "", fmt.Sprintf("%d 項目を自動入力しました", len(filled))
}

func saveFailed(err error) string {
	if errors.Is(err, forms.ErrNameRequired) {
		return err.Error()
	}
	return fmt.Sprintf(msgSaveFailed, detailOf(err))
}

func (s *Server) createForm(w http.ResponseWriter, r *http.Request) {
	const title = "企業を追加"
	switch r.Method {
	case http.MethodGet:
		fv := formView{
			Action: "/companies/new",
			Cancel: "/companies",
			Token:  uuid.NewString(),
			V: forms.Values{
				Status:         string(models.DefaultStatus),
				Priority:       strconv.Itoa(models.DefaultPriority),
				InterviewCount: "0",
			},
		}
		s.renderForm(w, http.StatusOK, title, fv, "", "")

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fv := formView{Action: "/companies/new", Cancel: "/companies", Token: newToken(r), V: forms.FromURLValues(r.PostForm)}

		if r.PostForm.Get("action") == actionAutofill {
			flash, notice := s.autofill(r, &fv)
			s.renderForm(w, http.StatusOK, title, fv, flash, notice)
			return
		}

		in, err := forms.ToCreate(fv.V, s.loc())
		if err != nil {
			s.renderForm(w, http.StatusBadRequest, title, fv, saveFailed(err), "")
			return
		}
		ctx, cancel := s.ctx(r)
		defer cancel()
		c, err := s.API.Create(ctx, in)
		if err != nil {
			slog.Warn("company_create_error", "err", err)
			s.renderForm(w, http.StatusOK, title, fv, saveFailed(err), "")
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/companies/%d?saved=1", c.ID), http.StatusSeeOther)

	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) editForm(w http.ResponseWriter, r *http.Request, id int64) {
	const title = "企業を編集"
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// o registro é sempre recarregado: o diff do update é contra ele
	ctx, cancel := s.ctx(r)
	defer cancel()
	orig, err := s.API.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.notFound(w)
			return
		}
		slog.Error("company_get_error", "id", id, "err", err)
		s.render(w, http.StatusBadGateway, "error.html", page{Title: title, Flash: detailOf(err)})
		return
	}

	fv := formView{
		Action: fmt.Sprintf("/companies/%d/edit", id),
		Cancel: fmt.Sprintf("/companies/%d", id),
		Edit:   true,
	}
	if r.Method == http.MethodGet {
		fv.Token = uuid.NewString()
		fv.V = forms.FromCompany(*orig, s.loc())
		s.renderForm(w, http.StatusOK, title, fv, "", "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fv.Token = newToken(r)
	fv.V = forms.FromURLValues(r.PostForm)

	if r.PostForm.Get("action") == actionAutofill {
		flash, notice := s.autofill(r, &fv)
		s.renderForm(w, http.StatusOK, title, fv, flash, notice)
		return
	}

	u, err := forms.ToUpdate(*orig, fv.V, s.loc())
	if err != nil {
		s.renderForm(w, http.StatusBadRequest, title, fv, saveFailed(err), "")
		return
	}
	if !u.Empty() {
		if _, err := s.API.Update(ctx, id, u); err != nil {
			slog.Warn("company_update_error", "id", id, "err", err)
			s.renderForm(w, http.StatusOK, title, fv, saveFailed(err), "")
			return
		}
	}
	http.Redirect(w, r, fmt.Sprintf("/companies/%d?saved=1", id), http.StatusSeeOther)
}
