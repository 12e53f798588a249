// Package screener scores candidate profiles against a fixed rubric using an
// external reasoning service.
package screener

import (
	"context"

	"hiring-pipeline/pkg/models"
)

// Screener evaluates a candidate's normalized profile document and returns a
// verdict. The qualified flag is always recomputed locally from the score and
// threshold; the remote service's own judgment is ignored.
type Screener interface {
	Evaluate(ctx context.Context, candidateName, document string, threshold int) (*models.Evaluation, error)
}
