package listings

import (
	"context"
	"time"

	"foodshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	DonorID    uuid.UUID
	ItemName   string
	Quantity   string
	ExpiryDate time.Time
	Location   datatypes.JSON
}

// DonorRef is the joined donor projection on a listing.
type DonorRef struct {
	ID               uuid.UUID `json:"id"`
	OrganizationName string    `json:"organizationName"`
}

// ListingWithDonor is a listing annotated with its donor's organization.
type ListingWithDonor struct {
	domain.Listing
	Donor *DonorRef `json:"donor"`
}

// Create stores a new listing. Status is always Available regardless of input.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Listing, error) {
	listing := &domain.Listing{
		DonorID:    in.DonorID,
		ItemName:   in.ItemName,
		Quantity:   in.Quantity,
		ExpiryDate: in.ExpiryDate,
		Status:     domain.ListingAvailable,
		Location:   in.Location,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// Available returns listings with status Available, newest first, with the
// donor organization joined in.
func (s *Service) Available(ctx context.Context) ([]ListingWithDonor, error) {
	var rows []domain.Listing
	err := s.DB.WithContext(ctx).
		Where("status = ?", domain.ListingAvailable).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.withDonors(ctx, rows)
}

// All returns every listing regardless of status, donor organization joined in.
func (s *Service) All(ctx context.Context) ([]ListingWithDonor, error) {
	var rows []domain.Listing
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return s.withDonors(ctx, rows)
}

// ByDonor returns all of a donor's listings (any status), newest first.
func (s *Service) ByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Listing, error) {
	var rows []domain.Listing
	err := s.DB.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// withDonors resolves donor organizations in one query and annotates each row.
// A dangling donor reference leaves the donor field null rather than failing
// the whole read.
func (s *Service) withDonors(ctx context.Context, rows []domain.Listing) ([]ListingWithDonor, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, l := range rows {
		if !seen[l.DonorID] {
			seen[l.DonorID] = true
			ids = append(ids, l.DonorID)
		}
	}

	donors := make(map[uuid.UUID]*DonorRef, len(ids))
	if len(ids) > 0 {
		var users []domain.User
		if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			donors[u.ID] = &DonorRef{ID: u.ID, OrganizationName: u.OrganizationName}
		}
	}

	out := make([]ListingWithDonor, len(rows))
	for i, l := range rows {
		out[i] = ListingWithDonor{Listing: l, Donor: donors[l.DonorID]}
	}
	return out, nil
}
