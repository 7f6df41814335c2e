package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/repository"
)

type ToneService struct {
	repo *repository.ToneRepository
}

func NewToneService(repo *repository.ToneRepository) *ToneService {
	return &ToneService{repo: repo}
}

type SaveToneInput struct {
	ID      string
	UserID  domain.UserID
	Channel channel.Channel
	Prompt  string
	Example string
}

func (s *ToneService) List(ctx context.Context, userID domain.UserID) ([]domain.ToneConfig, error) {
	if userID.Empty() {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.repo.List(ctx, userID)
}

// Save is an upsert. With an id the matching tone is updated; without one the
// user's tone for the channel is updated or created.
func (s *ToneService) Save(ctx context.Context, in SaveToneInput) (domain.ToneConfig, error) {
	if in.ID != "" {
		return s.update(ctx, in)
	}
	if in.UserID.Empty() {
		return domain.ToneConfig{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Channel.String()) == "" {
		return domain.ToneConfig{}, fmt.Errorf("%w: channel is required", ErrInvalidInput)
	}
	return s.repo.Upsert(ctx, in.UserID, in.Channel, in.Prompt, in.Example)
}

// Update requires an id, matching the PUT contract.
func (s *ToneService) Update(ctx context.Context, in SaveToneInput) (domain.ToneConfig, error) {
	if in.ID == "" {
		return domain.ToneConfig{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.update(ctx, in)
}

func (s *ToneService) update(ctx context.Context, in SaveToneInput) (domain.ToneConfig, error) {
	existing, err := s.repo.Get(ctx, in.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ToneConfig{}, ErrNotFound
	}
	if err != nil {
		return domain.ToneConfig{}, err
	}
	// Tones are scoped to their owner.
	if !in.UserID.Empty() && existing.UserID != in.UserID.String() {
		return domain.ToneConfig{}, ErrNotFound
	}

	tone, err := s.repo.Update(ctx, in.ID, in.Prompt, in.Example)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ToneConfig{}, ErrNotFound
	}
	return tone, err
}
