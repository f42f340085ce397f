package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/shukatsu-tracker/internal/apierror"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
	"github.com/Werneck0live/shukatsu-tracker/internal/repository"
	"github.com/Werneck0live/shukatsu-tracker/internal/utils"
)

type Repository interface {
	List(ctx context.Context, q repository.ListQuery) ([]models.Company, error)
	Search(ctx context.Context, keyword string) ([]models.Company, error)
	Create(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	Update(ctx context.Context, id int64, ch repository.Changes) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (models.Statistics, error)
	Ping(ctx context.Context) error
}

type Publisher interface {
	Publish(ctx context.Context, body []byte, headers amqp.Table) error
	Close() error
}

// CompanyInfoProvider sugere metadados a partir do nome; falhas vêm em CompanyInfo.Error.
type CompanyInfoProvider interface {
	CompanyInfo(ctx context.Context, name string) models.CompanyInfo
}

type CompanyHandler struct {
	Repo Repository
	Pub  Publisher // nil desliga os eventos
	AI   CompanyInfoProvider

	Timeout  time.Duration  // por request no repositório; 0 = 5s
	Location *time.Location // fuso para datas sem offset; nil = Local
}

func NewCompanyHandler(repo Repository, pub Publisher, ai CompanyInfoProvider) *CompanyHandler {
	return &CompanyHandler{Repo: repo, Pub: pub, AI: ai}
}

func (h *CompanyHandler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	d := h.Timeout
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(r.Context(), d)
}

func (h *CompanyHandler) loc() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.Local
}

// CompanyRoutes despacha tudo que está sob /companies/.
func (h *CompanyHandler) CompanyRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(r.URL.Path, "/")
	switch {
	case path == "companies":
		h.Companies(w, r)
	case path == "companies/search":
		h.Search(w, r)
	default:
		h.CompanyByID(w, r)
	}
}

// garantir que a requisição venha no padrão /companies/{id}
func parseIDFromPath(path string) (int64, bool, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "companies" || parts[1] == "" {
		return 0, false, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, true, false
	}
	return id, true, true
}

func (h *CompanyHandler) Companies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		utils.WriteError(w, apierror.MethodNotAllowed)
	}
}

func listQueryFromRequest(r *http.Request) (repository.ListQuery, apierror.ErrorResponse) {
	q := r.URL.Query()
	lq := repository.ListQuery{
		Status:   q.Get("status"),
		Industry: q.Get("industry"),
		SortBy:   q.Get("sort_by"),
		Order:    q.Get("order"),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"skip", &lq.Skip},
		{"limit", &lq.Limit},
		{"priority", &lq.Priority},
	}
	for _, p := range ints {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return lq, apierror.BadRequest("%s must be an integer", p.name)
		}
		*p.dst = v
	}

	lq, err := lq.Normalize()
	if err != nil {
		return lq, apierror.BadRequest("invalid sort_by %q", lq.SortBy)
	}
	return lq, nil
}

func (h *CompanyHandler) list(w http.ResponseWriter, r *http.Request) {
	lq, apiErr := listQueryFromRequest(r)
	if apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	list, err := h.Repo.List(ctx, lq)
	if err != nil {
		utils.Internal(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *CompanyHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.CompanyCreate
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	utils.Sanitize(&dto)
	if apiErr := validateStruct(dto); apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	c, err := companyFromCreate(dto, h.loc())
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	if err := h.Repo.Create(ctx, &c); err != nil {
		utils.Internal(w, r, err)
		return
	}

	slog.Info("company_created", "id", c.ID, "name", c.CompanyName)
	h.publishEvent(models.ActionCreated, &c)
	utils.WriteJSON(w, http.StatusCreated, c)
}

func companyFromCreate(d models.CompanyCreate, loc *time.Location) (models.Company, error) {
	c := models.Company{
		CompanyName:    d.CompanyName,
		Industry:       d.Industry,
		JobType:        d.JobType,
		Location:       d.Location,
		Salary:         d.Salary,
		Status:         models.DefaultStatus,
		Priority:       models.DefaultPriority,
		ESDeadline:     d.ESDeadline,
		WebsiteURL:     d.WebsiteURL,
		RecruitURL:     d.RecruitURL,
		MypageID:       d.MypageID,
		MypagePassword: d.MypagePassword,
		Notes:          d.Notes,
		InterviewNotes: d.InterviewNotes,
	}
	if d.Status != nil {
		c.Status = *d.Status
	}
	if d.Priority != nil {
		c.Priority = *d.Priority
	}
	if d.ESSubmitted != nil {
		c.ESSubmitted = *d.ESSubmitted
	}
	if d.InterviewCount != nil {
		c.InterviewCount = *d.InterviewCount
	}
	if d.NextInterviewDate != nil {
		t, err := models.ParseInterviewTime(*d.NextInterviewDate, loc)
		if err != nil {
			return c, err
		}
		t = t.UTC()
		c.NextInterviewDate = &t
	}
	return c, nil
}

func (h *CompanyHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, apierror.MethodNotAllowed)
		return
	}
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		utils.WriteError(w, apierror.MissingKeyword)
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	list, err := h.Repo.Search(ctx, keyword)
	if err != nil {
		utils.Internal(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *CompanyHandler) CompanyByID(w http.ResponseWriter, r *http.Request) {
	id, matched, ok := parseIDFromPath(r.URL.Path)
	if !matched {
		utils.WriteError(w, apierror.NotFound)
		return
	}
	if !ok {
		utils.WriteError(w, apierror.InvalidID)
		return
	}

	switch r.Method {
	case http.MethodGet:
		ctx, cancel := h.ctx(r)
		defer cancel()
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			h.repoError(w, r, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, c)

	case http.MethodPut, http.MethodPatch:
		h.update(w, r, id)

	case http.MethodDelete:
		ctx, cancel := h.ctx(r)
		defer cancel()

		// Busca antes de deletar para publicar o nome
		c, err := h.Repo.GetByID(ctx, id)
		if err != nil {
			h.repoError(w, r, err)
			return
		}
		if err := h.Repo.Delete(ctx, id); err != nil {
			h.repoError(w, r, err)
			return
		}

		slog.Info("company_deleted", "id", id)
		h.publishEvent(models.ActionDeleted, c)
		w.WriteHeader(http.StatusNoContent)

	default:
		utils.WriteError(w, apierror.MethodNotAllowed)
	}
}

func (h *CompanyHandler) update(w http.ResponseWriter, r *http.Request, id int64) {
	var dto models.CompanyUpdate
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	trimUpdate(&dto)
	if apiErr := checkNonNullable(dto); apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}
	if apiErr := validateStruct(dto); apiErr != nil {
		utils.WriteError(w, apiErr)
		return
	}

	ch, err := repository.BuildChanges(dto, h.loc())
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()
	c, err := h.Repo.Update(ctx, id, ch)
	if err != nil {
		h.repoError(w, r, err)
		return
	}

	slog.Info("company_updated", "id", id, "fields", len(ch))
	h.publishEvent(models.ActionUpdated, c)
	utils.WriteJSON(w, http.StatusOK, c)
}

// trimUpdate apara os textos; opcional em branco vira null.
func trimUpdate(u *models.CompanyUpdate) {
	if u.CompanyName.Present() {
		u.CompanyName.Value = strings.TrimSpace(u.CompanyName.Value)
	}
	for _, f := range []*models.Field[string]{
		&u.Industry, &u.JobType, &u.Location, &u.Salary, &u.ESDeadline, &u.NextInterviewDate,
		&u.WebsiteURL, &u.RecruitURL, &u.MypageID, &u.MypagePassword, &u.Notes, &u.InterviewNotes,
	} {
		if !f.Present() {
			continue
		}
		f.Value = strings.TrimSpace(f.Value)
		if f.Value == "" {
			*f = models.Null[string]()
		}
	}
}

func (h *CompanyHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, apierror.MethodNotAllowed)
		return
	}
	ctx, cancel := h.ctx(r)
	defer cancel()
	st, err := h.Repo.Statistics(ctx)
	if err != nil {
		utils.Internal(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, st)
}

func (h *CompanyHandler) repoError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteError(w, apierror.CompanyNotFound)
		return
	}
	utils.Internal(w, r, err)
}
