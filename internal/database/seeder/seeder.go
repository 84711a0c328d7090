package seeder

import (
	"context"

	"resume-match/internal/database"
)

// Seeder loads reference data. Running a seeder twice must not duplicate rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int, error)
}
