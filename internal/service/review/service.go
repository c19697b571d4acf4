package review

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	reviewrepo "storefront/internal/repository/review"
)

// Service handles review submission and moderation. New reviews start
// pending; only approved reviews are publicly listed.
type Service struct {
	repo reviewrepo.Repository
}

func New(repo reviewrepo.Repository) *Service {
	return &Service{repo: repo}
}

type SubmitInput struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (s *Service) Submit(ctx context.Context, customerID, author string, in SubmitInput) (*domain.Review, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, errors.New("productId required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	rv, err := s.repo.Create(ctx, domain.Review{
		ProductID:  in.ProductID,
		CustomerID: customerID,
		Author:     author,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
		Status:     domain.ReviewPending,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, errors.New("you have already reviewed this product")
		}
		return nil, err
	}
	return rv, nil
}

// ListApproved returns the public reviews for a product.
func (s *Service) ListApproved(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews, err := s.repo.ListApprovedByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

// ListPending returns the moderation queue, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]domain.Review, error) {
	return s.repo.ListByStatus(ctx, domain.ReviewPending)
}

// Moderate approves or rejects a pending review.
func (s *Service) Moderate(ctx context.Context, id, decision string) error {
	switch decision {
	case domain.ReviewApproved, domain.ReviewRejected:
	default:
		return errors.New("decision must be approved or rejected")
	}
	return s.repo.UpdateStatus(ctx, id, decision)
}
