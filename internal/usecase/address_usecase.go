package usecase

import (
	"context"
	"strings"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"
)

type AddressUsecase struct {
	addressRepo repo.AddressRepository
}

func NewAddressUsecase(addressRepo repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo}
}

type CreateAddressInput struct {
	AddressLine string
	City        string
	Pincode     string
	Label       string
	IsDefault   bool
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in CreateAddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, errUnauthorized("unauthorized")
	}
	if strings.TrimSpace(in.AddressLine) == "" {
		return model.Address{}, errValidation("address_line is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return model.Address{}, errValidation("city is required")
	}
	if strings.TrimSpace(in.Pincode) == "" {
		return model.Address{}, errValidation("pincode is required")
	}

	a, err := u.addressRepo.Create(ctx, model.Address{
		UserID:      userID,
		AddressLine: in.AddressLine,
		City:        in.City,
		Pincode:     in.Pincode,
		Label:       in.Label,
		IsDefault:   in.IsDefault,
	})
	if err != nil {
		return model.Address{}, errInternal("db error")
	}

	return a, nil
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return []model.Address{}, errUnauthorized("unauthorized")
	}

	items, err := u.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Address{}, errInternal("db error")
	}
	return items, nil
}
