package inmem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kompox/mcstack/domain/model"
)

func TestBuildRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().BuildRepo

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b1 := &model.Build{ID: "b1", StackName: "survival", CreatedAt: t0.Add(time.Minute)}
	b2 := &model.Build{StackName: "creative", CreatedAt: t0}
	for _, b := range []*model.Build{b1, b2} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if b2.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}
	if err := repo.Create(ctx, &model.Build{ID: "b1"}); err == nil {
		t.Error("Create() duplicate error = nil, want error")
	}

	got, err := repo.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	got.StackName = "mutated"
	again, _ := repo.Get(ctx, "b1")
	if again.StackName != "survival" {
		t.Errorf("stored build mutated through returned copy: %q", again.StackName)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != b2.ID || list[1].ID != "b1" {
		t.Errorf("List() order = %v, want [%s b1]", ids(list), b2.ID)
	}

	if err := repo.Delete(ctx, "b1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, "b1"); !errors.Is(err, model.ErrBuildNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrBuildNotFound", err)
	}
	if err := repo.Delete(ctx, "b1"); !errors.Is(err, model.ErrBuildNotFound) {
		t.Errorf("Delete() missing error = %v, want ErrBuildNotFound", err)
	}
}

func ids(bs []*model.Build) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}
