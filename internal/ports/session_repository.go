package ports

import (
	"context"

	"github.com/bnema/roombook-cli/internal/domain"
)

type SessionRepository interface {
	Save(ctx context.Context, snapshot domain.SessionSnapshot) error
	// GetByOrderID also resolves ids that were replaced by the supplier.
	GetByOrderID(ctx context.Context, orderID string) (domain.SessionSnapshot, error)
	List(ctx context.Context) ([]domain.SessionSnapshot, error)
}
