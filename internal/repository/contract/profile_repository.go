package contract

import (
	"context"

	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ProfileRepository is the profile store boundary. Update must persist the
// whole profile row in one write so a quota check's read-modify-write is
// atomic from the store's point of view.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	Update(ctx context.Context, profile *entity.UserProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserProfile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
