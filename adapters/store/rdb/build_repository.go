package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kompox/mcstack/domain"
	"github.com/kompox/mcstack/domain/model"
	"gorm.io/gorm"
)

// BuildRepository is a GORM-backed implementation of domain.BuildRepository.
type BuildRepository struct {
	db *gorm.DB
}

func NewBuildRepository(db *gorm.DB) *BuildRepository {
	return &BuildRepository{db: db}
}

func toRecord(b *model.Build) (*BuildRecord, error) {
	rec := &BuildRecord{ID: b.ID, StackName: b.StackName, CreatedAt: b.CreatedAt}
	if b.Graph != nil {
		data, err := json.Marshal(b.Graph)
		if err != nil {
			return nil, fmt.Errorf("encode graph: %w", err)
		}
		rec.Graph = string(data)
	}
	if b.Environment != nil {
		data, err := json.Marshal(b.Environment)
		if err != nil {
			return nil, fmt.Errorf("encode environment: %w", err)
		}
		rec.Environment = string(data)
	}
	return rec, nil
}

func toModel(r *BuildRecord) (*model.Build, error) {
	b := &model.Build{ID: r.ID, StackName: r.StackName, CreatedAt: r.CreatedAt}
	if r.Graph != "" {
		b.Graph = &model.ResourceGraph{}
		if err := json.Unmarshal([]byte(r.Graph), b.Graph); err != nil {
			return nil, fmt.Errorf("decode graph of build %s: %w", r.ID, err)
		}
	}
	if r.Environment != "" {
		b.Environment = &model.DerivedEnvironment{}
		if err := json.Unmarshal([]byte(r.Environment), b.Environment); err != nil {
			return nil, fmt.Errorf("decode environment of build %s: %w", r.ID, err)
		}
	}
	return b, nil
}

func (r *BuildRepository) Create(ctx context.Context, b *model.Build) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	rec, err := toRecord(b)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		// Generate a unique ID if not provided
		rec.ID = "build-" + uuid.NewString()
		b.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *BuildRepository) Get(ctx context.Context, id string) (*model.Build, error) {
	var rec BuildRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrBuildNotFound
		}
		return nil, err
	}
	return toModel(&rec)
}

func (r *BuildRepository) List(ctx context.Context) ([]*model.Build, error) {
	var recs []BuildRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Build, 0, len(recs))
	for i := range recs {
		b, err := toModel(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BuildRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&BuildRecord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrBuildNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.BuildRepository = (*BuildRepository)(nil)
