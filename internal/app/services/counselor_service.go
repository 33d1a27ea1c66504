package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/store"
	"github.com/yigit/counselordesk/internal/pkg/apperrors"
)

// CounselorService defines the profile use cases
type CounselorService interface {
	GetProfile(ctx context.Context) (models.CounselorInfo, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateCounselorRequest) (models.CounselorInfo, error)
}

type counselorServiceImpl struct {
	store    *store.Store
	notifier Notifier
	logger   zerolog.Logger
}

// NewCounselorService creates a new CounselorService
func NewCounselorService(st *store.Store, notifier Notifier, logger zerolog.Logger) CounselorService {
	return &counselorServiceImpl{
		store:    st,
		notifier: notifierOrNop(notifier),
		logger:   logger,
	}
}

func (s *counselorServiceImpl) GetProfile(ctx context.Context) (models.CounselorInfo, error) {
	return s.store.Counselor(), nil
}

func (s *counselorServiceImpl) UpdateProfile(ctx context.Context, req *dto.UpdateCounselorRequest) (models.CounselorInfo, error) {
	if req == nil {
		return models.CounselorInfo{}, apperrors.NewBadRequestError("profile data is required")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return models.CounselorInfo{}, apperrors.NewValidationError("name cannot be empty")
	}

	info := s.store.UpdateCounselor(req.Patch())
	s.logger.Info().Str("name", info.Name).Msg("Counselor profile updated")
	s.notifier.Notify(CollectionCounselor, ActionUpdated, "", 1)
	return info, nil
}
