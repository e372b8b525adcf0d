package seeder

import (
	"context"

	"careerpath/internal/domain/store"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, tables store.Tables) error
}
