package analytics

import (
	"context"

	"foodshare-backend/internal/application/listings"
	"foodshare-backend/internal/application/requests"
	"foodshare-backend/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	DB       *gorm.DB
	Listings *listings.Service
	Requests *requests.Service
}

// Summary holds the four dashboard counts. The counts are independent queries
// with no shared snapshot, so they may be mutually inconsistent under
// concurrent writes. Fine for a dashboard; do not treat as transactional.
type Summary struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalListings   int64 `json:"totalListings"`
	ClaimedListings int64 `json:"claimedListings"`
	TotalRequests   int64 `json:"totalRequests"`
}

// AllData is the admin aggregate: every user (hash stripped by serialization),
// every listing with donor org joined, every request with listing and
// recipient joined.
type AllData struct {
	Users    []domain.User               `json:"users"`
	Listings []listings.ListingWithDonor `json:"listings"`
	Requests []requests.RequestWithRefs  `json:"requests"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).Count(&out.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Listing{}).Count(&out.TotalListings).Error; err != nil {
		return nil, err
	}
	err := s.DB.WithContext(ctx).Model(&domain.Listing{}).
		Where("status = ?", domain.ListingClaimed).
		Count(&out.ClaimedListings).Error
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.DonationRequest{}).Count(&out.TotalRequests).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) AllData(ctx context.Context) (*AllData, error) {
	var users []domain.User
	if err := s.DB.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	allListings, err := s.Listings.All(ctx)
	if err != nil {
		return nil, err
	}
	allRequests, err := s.Requests.All(ctx)
	if err != nil {
		return nil, err
	}
	return &AllData{Users: users, Listings: allListings, Requests: allRequests}, nil
}
