package repository

/*

go test -v ./internal/repository -count=1

*/

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Werneck0live/shukatsu-tracker/internal/db"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

func newSQLRepo(t *testing.T) *SQLCompanyRepository {
	t.Helper()
	gdb, err := db.OpenSQL("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewSQLCompanyRepository(gdb)
}

func mustCreate(t *testing.T, r *SQLCompanyRepository, c models.Company) models.Company {
	t.Helper()
	if err := r.Create(context.Background(), &c); err != nil {
		t.Fatalf("create %s: %v", c.CompanyName, err)
	}
	return c
}

func TestSQLRepository_CreateAppliesDefaults(t *testing.T) {
	r := newSQLRepo(t)
	c := mustCreate(t, r, models.Company{CompanyName: "トヨタ自動車"})

	if c.ID == 0 {
		t.Fatal("id not assigned")
	}
	got, err := r.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusEntered || got.Priority != 3 || got.ESSubmitted || got.InterviewCount != 0 {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if got.Industry != nil || got.NextInterviewDate != nil {
		t.Fatalf("optional fields should be absent: %+v", got)
	}
	if got.CreatedAt.IsZero() || !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Fatalf("timestamps: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestSQLRepository_GetByID_NotFound(t *testing.T) {
	r := newSQLRepo(t)
	if _, err := r.GetByID(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestSQLRepository_ListFiltersAndOrder(t *testing.T) {
	r := newSQLRepo(t)
	ctx := context.Background()
	it := "IT"
	mustCreate(t, r, models.Company{CompanyName: "A", Industry: &it, Priority: 1})
	mustCreate(t, r, models.Company{CompanyName: "B", Status: models.StatusOffer, Priority: 2})
	mustCreate(t, r, models.Company{CompanyName: "C", Industry: &it, Priority: 5})

	// default: created_at desc, desempate por id
	list, err := r.List(ctx, ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].CompanyName != "C" || list[2].CompanyName != "A" {
		t.Fatalf("default order: %v", names(list))
	}

	list, _ = r.List(ctx, ListQuery{Industry: "IT", SortBy: "priority", Order: "asc"})
	if len(list) != 2 || list[0].CompanyName != "A" || list[1].CompanyName != "C" {
		t.Fatalf("industry filter: %v", names(list))
	}

	list, _ = r.List(ctx, ListQuery{Status: string(models.StatusOffer)})
	if len(list) != 1 || list[0].CompanyName != "B" {
		t.Fatalf("status filter: %v", names(list))
	}

	list, _ = r.List(ctx, ListQuery{Priority: 5})
	if len(list) != 1 || list[0].CompanyName != "C" {
		t.Fatalf("priority filter: %v", names(list))
	}

	list, _ = r.List(ctx, ListQuery{SortBy: "id", Order: "asc", Skip: 1, Limit: 1})
	if len(list) != 1 || list[0].CompanyName != "B" {
		t.Fatalf("paging: %v", names(list))
	}

	if _, err := r.List(ctx, ListQuery{SortBy: "mypage_password; drop table companies"}); !errors.Is(err, ErrUnknownSortColumn) {
		t.Fatalf("err=%v want ErrUnknownSortColumn", err)
	}
}

func TestSQLRepository_SearchContains(t *testing.T) {
	r := newSQLRepo(t)
	mustCreate(t, r, models.Company{CompanyName: "ソニーグループ"})
	mustCreate(t, r, models.Company{CompanyName: "ソフトバンク"})
	mustCreate(t, r, models.Company{CompanyName: "100%_Tech"})

	list, err := r.Search(context.Background(), "ソ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2, got %v", names(list))
	}

	// curingas do LIKE são literais
	list, _ = r.Search(context.Background(), "%_")
	if len(list) != 1 || list[0].CompanyName != "100%_Tech" {
		t.Fatalf("escaped search: %v", names(list))
	}

	list, _ = r.Search(context.Background(), "任天堂")
	if len(list) != 0 {
		t.Fatalf("want none, got %v", names(list))
	}
}

func TestSQLRepository_UpdateTriState(t *testing.T) {
	r := newSQLRepo(t)
	ctx := context.Background()
	c := mustCreate(t, r, models.Company{
		CompanyName: "任天堂",
		Industry:    models.Ptr("ゲーム"),
		Location:    models.Ptr("京都"),
	})
	time.Sleep(5 * time.Millisecond)

	u := models.CompanyUpdate{
		Industry: models.Null[string](),
		Priority: models.Value(1),
		Status:   models.Value(models.StatusInterviewing),
	}
	ch, err := BuildChanges(u, time.UTC)
	if err != nil {
		t.Fatalf("changes: %v", err)
	}
	got, err := r.Update(ctx, c.ID, ch)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.Industry != nil {
		t.Fatalf("industry should be cleared, got %q", *got.Industry)
	}
	if got.Location == nil || *got.Location != "京都" {
		t.Fatalf("location should be untouched: %v", got.Location)
	}
	if got.Priority != 1 || got.Status != models.StatusInterviewing || got.CompanyName != "任天堂" {
		t.Fatalf("unexpected: %+v", got)
	}
	if !got.UpdatedAt.After(c.UpdatedAt) {
		t.Fatalf("updated_at not advanced: before=%v after=%v", c.UpdatedAt, got.UpdatedAt)
	}

	if _, err := r.Update(ctx, 12345, ch); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestSQLRepository_DeleteAndStatistics(t *testing.T) {
	r := newSQLRepo(t)
	ctx := context.Background()
	a := mustCreate(t, r, models.Company{CompanyName: "A"})
	mustCreate(t, r, models.Company{CompanyName: "B", Status: models.StatusOffer})
	mustCreate(t, r, models.Company{CompanyName: "C", Status: models.StatusOffer})

	st, err := r.Statistics(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 3 || st.ByStatus[string(models.StatusOffer)] != 2 || st.ByStatus[string(models.StatusEntered)] != 1 {
		t.Fatalf("stats: %+v", st)
	}
	if len(st.ByStatus) != len(models.Statuses) || st.ByStatus[string(models.StatusRejected)] != 0 {
		t.Fatalf("every status must be reported: %+v", st.ByStatus)
	}

	if err := r.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err=%v want ErrNotFound", err)
	}
	if err := r.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestBuildChanges(t *testing.T) {
	u := models.CompanyUpdate{
		CompanyName:       models.Value("新名称"),
		Salary:            models.Value("  "),
		Notes:             models.Null[string](),
		ESSubmitted:       models.Value(false),
		NextInterviewDate: models.Value("2025-03-01T10:30"),
	}
	ch, err := BuildChanges(u, time.UTC)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if ch["company_name"] != "新名称" || ch["es_submitted"] != false {
		t.Fatalf("values: %v", ch)
	}
	for _, col := range []string{"salary", "notes"} {
		if v, ok := ch[col]; !ok || v != nil {
			t.Fatalf("%s should be cleared: %v", col, ch)
		}
	}
	if _, ok := ch["industry"]; ok {
		t.Fatalf("unset field leaked: %v", ch)
	}
	want := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	if got, _ := ch["next_interview_date"].(time.Time); !got.Equal(want) {
		t.Fatalf("next_interview_date=%v want %v", ch["next_interview_date"], want)
	}

	if _, err := BuildChanges(models.CompanyUpdate{NextInterviewDate: models.Value("amanhã")}, time.UTC); err == nil {
		t.Fatal("expected parse error")
	}
}

func names(list []models.Company) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.CompanyName
	}
	return out
}
