package formula

import (
	"context"
	"fmt"

	"github.com/genshinsim/gcsim/apps/damage_table/internal/domain"
	"github.com/genshinsim/gcsim/apps/damage_table/internal/table"

	"golang.org/x/sync/errgroup"
)

// EvaluateEnemies evaluates f against every enemy concurrently, at most limit at a time
// (limit <= 0 means unbounded). Tables are returned in enemy order.
func (e *Evaluator) EvaluateEnemies(ctx context.Context, f Formula, artifacts domain.Artifacts, cfg domain.ConfigObject, enemies []domain.Enemy, limit int) ([]table.Table, error) {
	out := make([]table.Table, len(enemies))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, enemy := range enemies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := e.Evaluate(f, artifacts, cfg, enemy)
			if err != nil {
				return fmt.Errorf("enemy %q: %w", enemy.Name, err)
			}
			out[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
