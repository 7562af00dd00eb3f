package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kompox/mcstack/domain"
	"github.com/kompox/mcstack/domain/model"
)

// BuildRepository is a thread-safe in-memory implementation.
type BuildRepository struct {
	mu     sync.RWMutex
	builds map[string]*model.Build
	seq    int64
}

func NewBuildRepository() *BuildRepository {
	return &BuildRepository{
		builds: make(map[string]*model.Build),
	}
}

func (r *BuildRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("build-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *BuildRepository) Create(_ context.Context, b *model.Build) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = r.nextID()
	}
	if _, exists := r.builds[b.ID]; exists {
		return fmt.Errorf("build %q already exists", b.ID)
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	// Copy to avoid external mutation.
	cp := *b
	r.builds[b.ID] = &cp
	return nil
}

func (r *BuildRepository) Get(_ context.Context, id string) (*model.Build, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builds[id]
	if !ok {
		return nil, model.ErrBuildNotFound
	}
	cp := *b
	return &cp, nil
}

// List returns builds oldest first.
func (r *BuildRepository) List(_ context.Context) ([]*model.Build, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Build, 0, len(r.builds))
	for _, v := range r.builds {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *BuildRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.builds[id]; !ok {
		return model.ErrBuildNotFound
	}
	delete(r.builds, id)
	return nil
}

var _ domain.BuildRepository = (*BuildRepository)(nil)
