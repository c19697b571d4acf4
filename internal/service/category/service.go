package category

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

// List returns all categories with children nested under their parents.
func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	flat, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildTree(flat), nil
}

func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	return s.repo.Upsert(ctx, c)
}

func buildTree(flat []domain.Category) []domain.Category {
	children := make(map[string][]domain.Category)
	known := make(map[string]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}
	var roots []domain.Category
	for _, c := range flat {
		if c.ParentID != nil && known[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		} else {
			roots = append(roots, c)
		}
	}
	var attach func(c domain.Category) domain.Category
	attach = func(c domain.Category) domain.Category {
		c.Children = nil
		for _, child := range children[c.ID] {
			c.Children = append(c.Children, attach(child))
		}
		return c
	}
	for i := range roots {
		roots[i] = attach(roots[i])
	}
	return roots
}
