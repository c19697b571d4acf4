package category

import (
	"context"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	categories []domain.Category
}

func (s *stubRepo) ListAll(context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}

func strPtr(v string) *string { return &v }

func TestListBuildsTree(t *testing.T) {
	// Children listed before their parents must still attach correctly.
	repo := &stubRepo{categories: []domain.Category{
		{ID: "3", Key: "standing-desks", Name: "Standing Desks", ParentID: strPtr("2")},
		{ID: "2", Key: "desks", Name: "Desks", ParentID: strPtr("1")},
		{ID: "1", Key: "furniture", Name: "Furniture"},
		{ID: "4", Key: "lighting", Name: "Lighting"},
	}}
	svc := New(repo)

	tree, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}

	var furniture *domain.Category
	for i := range tree {
		if tree[i].Key == "furniture" {
			furniture = &tree[i]
		}
	}
	if furniture == nil || len(furniture.Children) != 1 {
		t.Fatalf("expected furniture with one child, got %+v", furniture)
	}
	desks := furniture.Children[0]
	if desks.Key != "desks" || len(desks.Children) != 1 || desks.Children[0].Key != "standing-desks" {
		t.Fatalf("unexpected nested tree %+v", desks)
	}
}

func TestListOrphanBecomesRoot(t *testing.T) {
	repo := &stubRepo{categories: []domain.Category{
		{ID: "1", Key: "chairs", Name: "Chairs", ParentID: strPtr("missing")},
	}}
	svc := New(repo)

	tree, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tree) != 1 || tree[0].Key != "chairs" {
		t.Fatalf("expected unknown parent to fall back to root, got %+v", tree)
	}
}
