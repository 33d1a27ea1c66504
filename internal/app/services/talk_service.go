package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/projections"
	"github.com/yigit/counselordesk/internal/app/store"
	"github.com/yigit/counselordesk/internal/pkg/apperrors"
)

// TalkService defines the counseling use cases
type TalkService interface {
	ListStudentsWithTalks(ctx context.Context, q *dto.TalkListQuery) ([]models.Student, error)
	TalksForStudent(ctx context.Context, studentID string) ([]models.TalkRecord, error)
	RecordTalk(ctx context.Context, req *dto.RecordTalkRequest) (models.TalkRecord, error)
}

type talkServiceImpl struct {
	store    *store.Store
	notifier Notifier
	logger   zerolog.Logger
}

// NewTalkService creates a new TalkService
func NewTalkService(st *store.Store, notifier Notifier, logger zerolog.Logger) TalkService {
	return &talkServiceImpl{
		store:    st,
		notifier: notifierOrNop(notifier),
		logger:   logger,
	}
}

// ListStudentsWithTalks returns the students shown on the counseling overview
func (s *talkServiceImpl) ListStudentsWithTalks(ctx context.Context, q *dto.TalkListQuery) ([]models.Student, error) {
	if q == nil {
		q = &dto.TalkListQuery{}
	}
	snap := s.store.Snapshot()
	return projections.StudentsWithTalks(snap.Students, snap.Talks, projections.StudentFilter{
		Grade: q.Grade,
		Major: q.Major,
		Text:  q.Q,
	}), nil
}

// TalksForStudent lists one student's talks, newest first
func (s *talkServiceImpl) TalksForStudent(ctx context.Context, studentID string) ([]models.TalkRecord, error) {
	return projections.TalksForStudent(s.store.Snapshot().Talks, studentID), nil
}

// RecordTalk stores a counseling conversation. The student's current name is
// copied onto the record; the name in the request is used only for students
// that are not on the roster.
func (s *talkServiceImpl) RecordTalk(ctx context.Context, req *dto.RecordTalkRequest) (models.TalkRecord, error) {
	if req == nil {
		return models.TalkRecord{}, apperrors.NewBadRequestError("talk data is required")
	}
	if !req.Category.Valid() {
		return models.TalkRecord{}, apperrors.NewValidationError("unknown talk type " + string(req.Category))
	}
	if strings.TrimSpace(req.Content) == "" {
		return models.TalkRecord{}, apperrors.NewValidationError("content cannot be empty")
	}

	name := strings.TrimSpace(req.StudentName)
	if st, ok := s.store.Student(req.StudentID); ok {
		name = st.Name
	} else {
		s.logger.Warn().Str("studentId", req.StudentID).Msg("Talk recorded for a student not on the roster")
	}

	talk := s.store.RecordTalk(models.TalkFields{
		StudentID:   req.StudentID,
		StudentName: name,
		Category:    req.Category,
		Date:        req.Date,
		Location:    req.Location,
		Content:     req.Content,
		FollowUp:    req.FollowUp,
		Image:       req.Image,
	})
	s.logger.Info().Str("talkId", talk.ID).Str("studentId", talk.StudentID).Msg("Talk recorded")
	s.notifier.Notify(CollectionTalks, ActionCreated, talk.ID, 1)
	return talk, nil
}
