// Package service validates and orchestrates profile CRUD over the
// profile store.
package service

import (
	"context"
	"errors"
	"strings"

	condomodels "condogov/internal/condo/models"
	"condogov/internal/profile/models"
	"condogov/internal/profile/store"
	dErrors "condogov/pkg/domain-errors"
)

// Service orchestrates profile lifecycle management.
type Service struct {
	profiles store.Store
}

func New(profiles store.Store) *Service {
	return &Service{profiles: profiles}
}

func validate(record models.Record) error {
	if record.Wallet.IsZero() {
		return dErrors.New(dErrors.CodeInvalidAddress, "the profile wallet must be a valid address")
	}
	if strings.TrimSpace(record.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "the profile name is required")
	}
	return nil
}

// Create registers a profile for a wallet that has none yet.
func (s *Service) Create(ctx context.Context, record models.Record) (models.Record, error) {
	if err := validate(record); err != nil {
		return models.Record{}, err
	}
	record.Wallet = record.Wallet.Normalized()
	if err := s.profiles.Create(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Record{}, dErrors.New(dErrors.CodeDuplicate, "a profile already exists for this wallet")
		}
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profile")
	}
	return record, nil
}

// Get fetches the profile for a wallet.
func (s *Service) Get(ctx context.Context, wallet condomodels.Address) (models.Record, error) {
	record, err := s.profiles.Find(ctx, wallet)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Record{}, dErrors.New(dErrors.CodeNotFound, "no profile for this wallet")
		}
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	return record, nil
}

// Update patches the stored profile; empty fields keep their current
// value.
func (s *Service) Update(ctx context.Context, wallet condomodels.Address, patch models.Record) (models.Record, error) {
	current, err := s.Get(ctx, wallet)
	if err != nil {
		return models.Record{}, err
	}
	if strings.TrimSpace(patch.Name) != "" {
		current.Name = patch.Name
	}
	if patch.Phone != "" {
		current.Phone = patch.Phone
	}
	if patch.Email != "" {
		current.Email = patch.Email
	}
	if err := s.profiles.Update(ctx, current); err != nil {
		return models.Record{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}
	return current, nil
}

// Delete removes the profile for a wallet.
func (s *Service) Delete(ctx context.Context, wallet condomodels.Address) error {
	if err := s.profiles.Delete(ctx, wallet); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "no profile for this wallet")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete profile")
	}
	return nil
}
