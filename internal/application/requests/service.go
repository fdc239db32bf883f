package requests

import (
	"context"
	"errors"

	"foodshare-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	ListingID    uuid.UUID
	RecipientID  uuid.UUID
	ContactName  string
	ContactPhone string
	Notes        string
}

// ListingRef is the joined listing projection on a request.
type ListingRef struct {
	ID       uuid.UUID `json:"id"`
	ItemName string    `json:"itemName"`
}

// UserRef is the joined counterparty projection on a request.
type UserRef struct {
	ID               uuid.UUID `json:"id"`
	OrganizationName string    `json:"organizationName"`
}

// RequestWithRefs is a request annotated with its listing and, depending on the
// view, the recipient or donor organization.
type RequestWithRefs struct {
	domain.DonationRequest
	Listing   *ListingRef `json:"listing"`
	Recipient *UserRef    `json:"recipient,omitempty"`
	Donor     *UserRef    `json:"donor,omitempty"`
}

// Create stores a new Pending request against an existing listing. The
// listing's donor is denormalized onto the request at creation time.
//
// The listing's availability is deliberately not checked: two recipients may
// both request the same listing. That race is in the source design.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.DonationRequest, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", in.ListingID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	request := &domain.DonationRequest{
		ListingID:    in.ListingID,
		RecipientID:  in.RecipientID,
		DonorID:      listing.DonorID,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		Notes:        in.Notes,
		Status:       domain.RequestPending,
	}
	if err := s.DB.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// UpdateStatus moves a request through the workflow. Illegal transitions are
// rejected. When the target is Claimed, the linked listing flips to Claimed in
// the same transaction, so the two writes cannot diverge.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.DonationRequest, error) {
	if !domain.IsRequestStatus(status) {
		return nil, ErrUnknownStatus
	}

	var request domain.DonationRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if !domain.CanTransition(request.Status, status) {
			return ErrIllegalTransition
		}
		if err := tx.Model(&request).Update("status", status).Error; err != nil {
			return err
		}
		if status == domain.RequestClaimed {
			err := tx.Model(&domain.Listing{}).
				Where("id = ?", request.ListingID).
				Update("status", domain.ListingClaimed).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	request.Status = status
	return &request, nil
}

// ForDonor returns a donor's incoming requests, newest first, with the listing
// item name and recipient organization joined in.
func (s *Service) ForDonor(ctx context.Context, donorID uuid.UUID) ([]RequestWithRefs, error) {
	var rows []domain.DonationRequest
	err := s.DB.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.withRefs(ctx, rows, true, false)
}

// ForRecipient returns a recipient's outgoing requests, newest first, with the
// listing item name and donor organization joined in.
func (s *Service) ForRecipient(ctx context.Context, recipientID uuid.UUID) ([]RequestWithRefs, error) {
	var rows []domain.DonationRequest
	err := s.DB.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.withRefs(ctx, rows, false, true)
}

// All returns every request with listing and recipient joined (admin view).
func (s *Service) All(ctx context.Context) ([]RequestWithRefs, error) {
	var rows []domain.DonationRequest
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return s.withRefs(ctx, rows, true, false)
}

// withRefs resolves the joined projections in two bulk queries. Dangling
// references leave the projection null rather than failing the read.
func (s *Service) withRefs(ctx context.Context, rows []domain.DonationRequest, wantRecipient, wantDonor bool) ([]RequestWithRefs, error) {
	listingIDs := make([]uuid.UUID, 0, len(rows))
	userIDs := make([]uuid.UUID, 0, len(rows))
	seenListing := make(map[uuid.UUID]bool, len(rows))
	seenUser := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		if !seenListing[r.ListingID] {
			seenListing[r.ListingID] = true
			listingIDs = append(listingIDs, r.ListingID)
		}
		if wantRecipient && !seenUser[r.RecipientID] {
			seenUser[r.RecipientID] = true
			userIDs = append(userIDs, r.RecipientID)
		}
		if wantDonor && !seenUser[r.DonorID] {
			seenUser[r.DonorID] = true
			userIDs = append(userIDs, r.DonorID)
		}
	}

	listingsByID := make(map[uuid.UUID]*ListingRef, len(listingIDs))
	if len(listingIDs) > 0 {
		var ls []domain.Listing
		if err := s.DB.WithContext(ctx).Where("id IN ?", listingIDs).Find(&ls).Error; err != nil {
			return nil, err
		}
		for _, l := range ls {
			listingsByID[l.ID] = &ListingRef{ID: l.ID, ItemName: l.ItemName}
		}
	}

	usersByID := make(map[uuid.UUID]*UserRef, len(userIDs))
	if len(userIDs) > 0 {
		var us []domain.User
		if err := s.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&us).Error; err != nil {
			return nil, err
		}
		for _, u := range us {
			usersByID[u.ID] = &UserRef{ID: u.ID, OrganizationName: u.OrganizationName}
		}
	}

	out := make([]RequestWithRefs, len(rows))
	for i, r := range rows {
		item := RequestWithRefs{DonationRequest: r, Listing: listingsByID[r.ListingID]}
		if wantRecipient {
			item.Recipient = usersByID[r.RecipientID]
		}
		if wantDonor {
			item.Donor = usersByID[r.DonorID]
		}
		out[i] = item
	}
	return out, nil
}
