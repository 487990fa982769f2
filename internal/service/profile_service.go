package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/thalha/cabslip/internal/models"
	"github.com/thalha/cabslip/internal/storage"
)

// ProfileService manages the singleton operator profile.
type ProfileService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewProfileService creates a ProfileService with the given storage backend.
func NewProfileService(store storage.Store, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{store: store, logger: logger}
}

// ProfileInput carries the caller-supplied profile fields.
type ProfileInput struct {
	CabName            string
	CabAddress         string
	PrimaryContact     string
	SecondaryContact   *string
	Email              string
	LogoPath           *string
	OwnerSignaturePath *string
}

// Get returns the operator profile, or nil when first-run setup has not
// happened yet.
func (s *ProfileService) Get(ctx context.Context) (*models.CabInfo, error) {
	return s.store.CabInfo(ctx)
}

// Upsert validates and saves the profile. Creation and update are the
// same operation: CreatedAt is preserved when a profile already exists.
func (s *ProfileService) Upsert(ctx context.Context, in *ProfileInput) (*models.CabInfo, error) {
	switch {
	case strings.TrimSpace(in.CabName) == "":
		return nil, requiredError("cabName")
	case strings.TrimSpace(in.CabAddress) == "":
		return nil, requiredError("cabAddress")
	case strings.TrimSpace(in.PrimaryContact) == "":
		return nil, requiredError("primaryContact")
	case strings.TrimSpace(in.Email) == "":
		return nil, requiredError("email")
	}

	now := time.Now().UnixMilli()
	info := &models.CabInfo{
		ID:                 models.CabInfoID,
		CabName:            in.CabName,
		CabAddress:         in.CabAddress,
		PrimaryContact:     in.PrimaryContact,
		SecondaryContact:   in.SecondaryContact,
		Email:              in.Email,
		LogoPath:           in.LogoPath,
		OwnerSignaturePath: in.OwnerSignaturePath,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	existing, err := s.store.CabInfo(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		info.CreatedAt = existing.CreatedAt
	}

	if err := s.store.UpsertCabInfo(ctx, info); err != nil {
		s.logger.Error("failed to save cab info", "error", err)
		return nil, err
	}

	s.logger.Info("cab info saved", "cab_name", info.CabName)
	return info, nil
}
