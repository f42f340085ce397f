//go:build integration
// +build integration

package repository

/*
	Para Rodar: go test -tags=integration -v ./internal/repository -run TestMongoCompanyRepository_Integration -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"errors"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Werneck0live/shukatsu-tracker/internal/db"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

// Exercita: Create -> GetByID -> List -> Search -> Update -> Statistics -> Delete
func TestMongoCompanyRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Sobe Mongo real
	mongoC, err := mongodb.RunContainer(ctx, tc.WithImage("mongo:7"))
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() { _ = mongoC.Terminate(ctx) })

	uri, err := mongoC.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("conn string: %v", err)
	}

	client, err := db.NewMongoClient(uri)
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo := NewMongoCompanyRepository(client.Database("testdb"))
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("indexes: %v", err)
	}

	// 1) Create: ids sequenciais
	a := models.Company{CompanyName: "ソニーグループ", Industry: models.Ptr("電機")}
	b := models.Company{CompanyName: "ソフトバンク", Status: models.StatusOffer, Priority: 1}
	if err := repo.Create(ctx, &a); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := repo.Create(ctx, &b); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids: a=%d b=%d", a.ID, b.ID)
	}

	// 2) GetByID
	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Status != models.StatusEntered || got.Priority != 3 || got.Industry == nil {
		t.Fatalf("get mismatch: %#v", got)
	}

	// 3) List / Search
	list, err := repo.List(ctx, ListQuery{SortBy: "priority", Order: "asc"})
	if err != nil || len(list) != 2 || list[0].ID != b.ID {
		t.Fatalf("list: %v err=%v", list, err)
	}
	list, err = repo.Search(ctx, "ソニー")
	if err != nil || len(list) != 1 || list[0].ID != a.ID {
		t.Fatalf("search: %v err=%v", list, err)
	}

	// 4) Update (parcial, com null)
	time.Sleep(5 * time.Millisecond)
	ch, _ := BuildChanges(models.CompanyUpdate{
		Industry:    models.Null[string](),
		ESSubmitted: models.Value(true),
	}, time.UTC)
	upd, err := repo.Update(ctx, a.ID, ch)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if upd.Industry != nil || !upd.ESSubmitted || upd.CompanyName != "ソニーグループ" {
		t.Fatalf("after update mismatch: %#v", upd)
	}
	if !upd.UpdatedAt.After(got.UpdatedAt) {
		t.Fatalf("updated_at not advanced")
	}

	// 5) Statistics
	st, err := repo.Statistics(ctx)
	if err != nil || st.Total != 2 || st.ByStatus[string(models.StatusOffer)] != 1 {
		t.Fatalf("stats: %+v err=%v", st, err)
	}

	// 6) Delete
	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
