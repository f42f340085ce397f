package grid

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

type Lister interface {
	List(ctx context.Context) ([]models.Company, error)
}

// BulkDeleteError lista os ids que falharam; os demais foram removidos.
type BulkDeleteError struct {
	Failed []int64
}

func (e *BulkDeleteError) Error() string {
	return fmt.Sprintf("failed to delete %d companies: %v", len(e.Failed), e.Failed)
}

// BulkDelete dispara um delete por id em paralelo e espera todos terminarem.
func BulkDelete(ctx context.Context, d Deleter, ids []int64) error {
	var (
		mu     sync.Mutex
		failed []int64
	)
	// sem WithContext: uma falha não cancela os outros deletes
	var g errgroup.Group
	g.SetLimit(8)
	for _, id := range ids {
		g.Go(func() error {
			if err := d.Delete(ctx, id); err != nil {
				slog.Warn("bulk_delete_error", "id", id, "err", err)
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) == 0 {
		return nil
	}
	slices.Sort(failed)
	return &BulkDeleteError{Failed: failed}
}

// DeleteSelected apaga a seleção e recarrega a lista.
// Sucesso limpa a seleção; em falha fica só o que ainda existe.
func DeleteSelected(ctx context.Context, api interface {
	Deleter
	Lister
}, s *State) ([]models.Company, error) {
	delErr := BulkDelete(ctx, api, s.SelectedIDs())

	records, err := api.List(ctx)
	if err != nil {
		if delErr != nil {
			return nil, delErr
		}
		clear(s.Selected)
		return nil, err
	}
	if delErr == nil {
		clear(s.Selected)
	} else {
		s.Reconcile(records)
	}
	return records, delErr
}
