// FILE: internal/repository/memory/profile_repository.go
// In-memory profile store used by service-level tests. Mirrors the GORM
// repository's copy-in/copy-out behavior so a profile mutated by a caller is
// only visible after Update, like a real store write.
package memory

import (
	"context"
	"sync"

	"ai-nutricoach-be/internal/entity"
	"ai-nutricoach-be/internal/repository/contract"
	"ai-nutricoach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*entity.UserProfile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[uuid.UUID]*entity.UserProfile),
	}
}

var _ contract.ProfileRepository = (*ProfileRepository)(nil)

func cloneCounts(src map[string]int) map[string]int {
	if src == nil {
		return nil
	}
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneProfile(p *entity.UserProfile) *entity.UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Daily.Counts = cloneCounts(p.Daily.Counts)
	c.Weekly.Counts = cloneCounts(p.Weekly.Counts)
	c.PurchasedCredits = cloneCounts(p.PurchasedCredits)
	return &c
}

func (r *ProfileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.Id == uuid.Nil {
		profile.Id = uuid.New()
	}
	r.profiles[profile.Id] = cloneProfile(profile)
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.Id] = cloneProfile(profile)
	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, id)
	return nil
}

// FindOne only understands the ByID and ByEmail specifications; that is all
// the services use against the profile store.
func (r *ProfileRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			return cloneProfile(r.profiles[s.ID]), nil
		case specification.ByEmail:
			for _, p := range r.profiles {
				if p.Email == s.Email {
					return cloneProfile(p), nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *ProfileRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*entity.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		result = append(result, cloneProfile(p))
	}
	return result, nil
}

func (r *ProfileRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.profiles)), nil
}
