package service

import (
	"context"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
)

// DatasetProvider loads labeled text records for a named dataset and split.
// Split accepts "test", "train[:10]" and "test[100:300]".
type DatasetProvider interface {
	Load(ctx context.Context, name, split string) (*entity.Dataset, error)
}
