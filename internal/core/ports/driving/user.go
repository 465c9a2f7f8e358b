package driving

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// UserService manages accounts. All operations are admin-only.
type UserService interface {
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) error
	SetRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error)
}
