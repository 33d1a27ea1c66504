package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/projections"
	"github.com/yigit/counselordesk/internal/app/store"
	"github.com/yigit/counselordesk/internal/pkg/apperrors"
	"github.com/yigit/counselordesk/internal/pkg/helpers"
)

// DormService defines the dormitory use cases
type DormService interface {
	Board(ctx context.Context, q *dto.GradeMajorQuery) ([]projections.DormCard, error)
	Latest(ctx context.Context, dormID string) (*models.DormInspection, error)
	History(ctx context.Context, dormID string) ([]models.DormInspection, error)
	RecordInspection(ctx context.Context, dormID string, req *dto.RecordInspectionRequest) (models.DormInspection, error)
}

type dormServiceImpl struct {
	store    *store.Store
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDormService creates a new DormService
func NewDormService(st *store.Store, notifier Notifier, logger zerolog.Logger) DormService {
	return &dormServiceImpl{
		store:    st,
		notifier: notifierOrNop(notifier),
		logger:   logger,
		now:      time.Now,
	}
}

// Board groups the filtered students by room, each with its current status
func (s *dormServiceImpl) Board(ctx context.Context, q *dto.GradeMajorQuery) ([]projections.DormCard, error) {
	if q == nil {
		q = &dto.GradeMajorQuery{}
	}
	snap := s.store.Snapshot()
	return projections.DormBoard(snap.Students, snap.Inspections, q.Grade, q.Major), nil
}

// Latest returns the most recently recorded inspection of a room, or nil if it was never inspected
func (s *dormServiceImpl) Latest(ctx context.Context, dormID string) (*models.DormInspection, error) {
	in, ok := projections.LatestInspection(s.store.Snapshot().Inspections, dormID)
	if !ok {
		return nil, nil
	}
	return &in, nil
}

// History lists every inspection of a room, newest first
func (s *dormServiceImpl) History(ctx context.Context, dormID string) ([]models.DormInspection, error) {
	return projections.History(s.store.Snapshot().Inspections, dormID), nil
}

// RecordInspection stores a check result. A blank time is stamped with the current local time.
func (s *dormServiceImpl) RecordInspection(ctx context.Context, dormID string, req *dto.RecordInspectionRequest) (models.DormInspection, error) {
	dormID = strings.TrimSpace(dormID)
	if dormID == "" {
		return models.DormInspection{}, apperrors.NewValidationError("dormitory cannot be empty")
	}
	if req == nil {
		return models.DormInspection{}, apperrors.NewBadRequestError("inspection data is required")
	}
	if !req.Status.Valid() {
		return models.DormInspection{}, apperrors.NewValidationError("unknown inspection status " + string(req.Status))
	}

	at := strings.TrimSpace(req.Time)
	if at == "" {
		at = helpers.FormatInspectionTime(s.now())
	}

	in := s.store.RecordInspection(models.InspectionFields{
		DormID: dormID,
		Status: req.Status,
		Time:   at,
		Note:   req.Note,
	})
	s.logger.Info().Str("dormId", dormID).Str("status", string(in.Status)).Msg("Inspection recorded")
	s.notifier.Notify(CollectionInspections, ActionCreated, in.ID, 1)
	return in, nil
}
