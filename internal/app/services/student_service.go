package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/projections"
	"github.com/yigit/counselordesk/internal/app/store"
	"github.com/yigit/counselordesk/internal/pkg/apperrors"
)

// StudentService defines the roster use cases
type StudentService interface {
	ListStudents(ctx context.Context, query string) ([]models.Student, error)
	GetStudent(ctx context.Context, id string) (models.Student, error)
	PickStudents(ctx context.Context, query string) ([]models.Student, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (models.Student, error)
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (Outcome[models.Student], error)
	ToggleTag(ctx context.Context, id string, tag models.Tag) (Outcome[models.Student], error)
	SetTags(ctx context.Context, id string, tags []models.Tag) (Outcome[models.Student], error)
	AppendEvent(ctx context.Context, id string, req *dto.AppendEventRequest) (Outcome[models.StudentEvent], error)
	DeleteStudent(ctx context.Context, id string) (Outcome[store.DeleteResult], error)
}

type studentServiceImpl struct {
	store    *store.Store
	notifier Notifier
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(st *store.Store, notifier Notifier, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		store:    st,
		notifier: notifierOrNop(notifier),
		logger:   logger,
	}
}

// ListStudents returns the roster in store order, narrowed by query when it is not blank
func (s *studentServiceImpl) ListStudents(ctx context.Context, query string) ([]models.Student, error) {
	return projections.SearchStudents(s.store.Snapshot().Students, query), nil
}

// GetStudent returns one student or a not-found error
func (s *studentServiceImpl) GetStudent(ctx context.Context, id string) (models.Student, error) {
	st, ok := s.store.Student(id)
	if !ok {
		return models.Student{}, apperrors.NewCustomError(apperrors.ErrStudentNotFound, fmt.Sprintf("student %s not found", id))
	}
	return st, nil
}

// PickStudents feeds the student picker of the talk and honor forms
func (s *studentServiceImpl) PickStudents(ctx context.Context, query string) ([]models.Student, error) {
	return projections.PickStudents(s.store.Snapshot().Students, query, projections.PickerLimit), nil
}

// CreateStudent adds a hand-entered student at the head of the roster
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (models.Student, error) {
	if req == nil {
		return models.Student{}, apperrors.NewBadRequestError("student data is required")
	}
	fields := req.Fields()
	fields.Name = strings.TrimSpace(fields.Name)
	if fields.Name == "" {
		return models.Student{}, apperrors.NewValidationError("name cannot be empty")
	}

	st := s.store.CreateStudent(fields)
	s.logger.Info().Str("studentId", st.ID).Str("name", st.Name).Msg("Student created")
	s.notifier.Notify(CollectionStudents, ActionCreated, st.ID, 1)
	return st, nil
}

// UpdateStudent merges the provided fields onto the student
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (Outcome[models.Student], error) {
	if req == nil {
		return notApplied[models.Student](), apperrors.NewBadRequestError("update data is required")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return notApplied[models.Student](), apperrors.NewValidationError("name cannot be empty")
	}

	st, ok := s.store.UpdateStudent(id, req.Patch())
	if !ok {
		s.logger.Debug().Str("studentId", id).Msg("Update skipped, no such student")
		return notApplied[models.Student](), nil
	}
	s.notifier.Notify(CollectionStudents, ActionUpdated, id, 1)
	return applied(st), nil
}

// ToggleTag adds the tag when missing and removes it when present
func (s *studentServiceImpl) ToggleTag(ctx context.Context, id string, tag models.Tag) (Outcome[models.Student], error) {
	st, ok, err := s.store.ToggleTag(id, tag)
	return s.tagOutcome(id, st, ok, err)
}

// SetTags replaces the student's tag set
func (s *studentServiceImpl) SetTags(ctx context.Context, id string, tags []models.Tag) (Outcome[models.Student], error) {
	st, ok, err := s.store.SetTags(id, tags)
	return s.tagOutcome(id, st, ok, err)
}

func (s *studentServiceImpl) tagOutcome(id string, st models.Student, ok bool, err error) (Outcome[models.Student], error) {
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTag) {
			return notApplied[models.Student](), err
		}
		return notApplied[models.Student](), fmt.Errorf("updating tags of student %s: %w", id, err)
	}
	if !ok {
		return notApplied[models.Student](), nil
	}
	s.notifier.Notify(CollectionStudents, ActionUpdated, id, 1)
	return applied(st), nil
}

// AppendEvent puts a new entry at the top of the student's timeline
func (s *studentServiceImpl) AppendEvent(ctx context.Context, id string, req *dto.AppendEventRequest) (Outcome[models.StudentEvent], error) {
	if req == nil {
		return notApplied[models.StudentEvent](), apperrors.NewBadRequestError("event data is required")
	}
	if !req.Category.Valid() {
		return notApplied[models.StudentEvent](), apperrors.NewValidationError(fmt.Sprintf("unknown event type %q", req.Category))
	}

	ev, ok := s.store.AppendEvent(id, req.Fields())
	if !ok {
		return notApplied[models.StudentEvent](), nil
	}
	s.notifier.Notify(CollectionStudents, ActionUpdated, id, 1)
	return applied(ev), nil
}

// DeleteStudent removes the student with its talks and honors. For an id that
// is not on the roster the outcome is not applied, but leftover records under
// that id are still purged and announced.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) (Outcome[store.DeleteResult], error) {
	res, ok := s.store.DeleteStudent(id)
	if !ok {
		if res.TalksRemoved > 0 || res.HonorsRemoved > 0 {
			s.logger.Warn().Str("studentId", id).
				Int("talks", res.TalksRemoved).
				Int("honors", res.HonorsRemoved).
				Msg("Purged records of a student no longer on the roster")
		}
		if res.TalksRemoved > 0 {
			s.notifier.Notify(CollectionTalks, ActionDeleted, "", res.TalksRemoved)
		}
		if res.HonorsRemoved > 0 {
			s.notifier.Notify(CollectionHonors, ActionDeleted, "", res.HonorsRemoved)
		}
		return notApplied[store.DeleteResult](), nil
	}

	s.logger.Info().Str("studentId", id).
		Int("talks", res.TalksRemoved).
		Int("honors", res.HonorsRemoved).
		Msg("Student deleted")
	s.notifier.Notify(CollectionStudents, ActionDeleted, id, 1)
	return applied(res), nil
}
