package seeder

import (
	"context"
	"fmt"

	"careerpath/internal/domain/store"
	"careerpath/internal/pkg/logger"
)

type Runner struct {
	Seeders []Seeder
	Log     *logger.Logger
}

func (r Runner) Run(ctx context.Context, tables store.Tables) error {
	if tables == nil {
		return fmt.Errorf("nil tables")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, tables); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		r.Log.Info("seeder done", "seeder", s.Name())
	}
	return nil
}
