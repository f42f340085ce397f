// Package web serve as páginas HTML (lista, detalhe e formulários) em cima do client da API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Werneck0live/shukatsu-tracker/internal/client"
	"github.com/Werneck0live/shukatsu-tracker/internal/detail"
	"github.com/Werneck0live/shukatsu-tracker/internal/forms"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgLoadFailed   = "企業一覧の取得に失敗しました"
	msgSaveFailed   = "保存に失敗しました: %s"
	msgDeleteFailed = "削除に失敗しました"
	msgNotFound     = "企業が見つかりません"
	msgConfirm      = "本当に削除しますか?"
	msgSaved        = "保存しました"
)

// flash vem na query como código; o texto nunca vem do usuário.
var flashes = map[string]string{
	"delete_failed": msgDeleteFailed,
}

// API é o que as páginas precisam do client.
type API interface {
	List(ctx context.Context, p client.ListParams) ([]models.Company, error)
	Get(ctx context.Context, id int64) (*models.Company, error)
	Create(ctx context.Context, in models.CompanyCreate) (*models.Company, error)
	Update(ctx context.Context, id int64, in models.CompanyUpdate) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
	CompanyInfo(ctx context.Context, name string) (models.CompanyInfo, error)
}

type Server struct {
	API      API
	Autofill *forms.Autofiller
	LiveURL  string         // vazio = sem auto-reload
	Timeout  time.Duration  // por chamada à API; 0 = 15s
	Location *time.Location // fuso dos campos datetime-local; nil = Local

	tmpl *template.Template
}

func New(api API, liveURL string) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"stars": detail.Stars,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		API:      api,
		Autofill: forms.NewAutofiller(api),
		LiveURL:  liveURL,
		tmpl:     tmpl,
	}, nil
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			s.notFound(w)
			return
		}
		http.Redirect(w, r, "/companies", http.StatusFound)
	})
	mux.HandleFunc("/companies", s.routes)
	mux.HandleFunc("/companies/", s.routes)
}

func (s *Server) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	d := s.Timeout
	if d <= 0 {
		d = 15 * time.Second
	}
	return context.WithTimeout(r.Context(), d)
}

func (s *Server) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

// routes despacha /companies, /companies/new, /companies/delete,
// /companies/{id}, /companies/{id}/edit e /companies/{id}/delete.
func (s *Server) routes(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 1:
		s.only(w, r, http.MethodGet, s.list)
		return
	case len(parts) == 2 && parts[1] == "new":
		s.createForm(w, r)
		return
	case len(parts) == 2 && parts[1] == "delete":
		s.only(w, r, http.MethodPost, s.bulkDelete)
		return
	}

	if len(parts) > 3 {
		s.notFound(w)
		return
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		s.notFound(w)
		return
	}
	switch {
	case len(parts) == 2:
		s.only(w, r, http.MethodGet, func(w http.ResponseWriter, r *http.Request) { s.show(w, r, id) })
	case parts[2] == "edit":
		s.editForm(w, r, id)
	case parts[2] == "delete":
		s.only(w, r, http.MethodPost, func(w http.ResponseWriter, r *http.Request) { s.deleteOne(w, r, id) })
	default:
		s.notFound(w)
	}
}

func (s *Server) only(w http.ResponseWriter, r *http.Request, method string, h http.HandlerFunc) {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h(w, r)
}

type page struct {
	Title   string
	Flash   string // erro bloqueante: banner + alert()
	Notice  string
	LiveURL string
	Data    any
}

func (s *Server) render(w http.ResponseWriter, code int, name string, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := s.tmpl.ExecuteTemplate(w, name, p); err != nil {
		slog.Error("template_error", "template", name, "err", err)
	}
}

func (s *Server) notFound(w http.ResponseWriter) {
	s.render(w, http.StatusNotFound, "error.html", page{Title: msgNotFound, Flash: msgNotFound})
}

// detailOf prefere o detail devolvido pela API.
func detailOf(err error) string {
	var he *client.HTTPError
	if errors.As(err, &he) && he.Detail != "" {
		return he.Detail
	}
	return err.Error()
}

func isNotFound(err error) bool {
	var he *client.HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

func (s *Server) show(w http.ResponseWriter, r *http.Request, id int64) {
	ctx, cancel := s.ctx(r)
	defer cancel()
	c, err := s.API.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			s.notFound(w)
			return
		}
		slog.Error("company_get_error", "id", id, "err", err)
		s.render(w, http.StatusBadGateway, "error.html", page{Title: msgNotFound, Flash: detailOf(err)})
		return
	}
	p := page{Title: c.CompanyName, Data: detail.Build(*c)}
	if r.URL.Query().Get("saved") != "" {
		p.Notice = msgSaved
	}
	s.render(w, http.StatusOK, "detail.html", p)
}

func (s *Server) deleteOne(w http.ResponseWriter, r *http.Request, id int64) {
	ctx, cancel := s.ctx(r)
	defer cancel()
	if err := s.API.Delete(ctx, id); err != nil {
		slog.Warn("company_delete_error", "id", id, "err", err)
		http.Redirect(w, r, "/companies?flash=delete_failed", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/companies", http.StatusSeeOther)
}
