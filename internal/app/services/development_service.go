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

// DefaultStoryImage is shown for stories posted without a picture
const DefaultStoryImage = "https://picsum.photos/id/102/400/300"

// HonorResult is a recorded honor and the timeline entry it produced, if any
type HonorResult struct {
	Honor models.HonorRecord   `json:"honor"`
	Event *models.StudentEvent `json:"event"`
}

// DevelopmentService defines the honor and story use cases
type DevelopmentService interface {
	ListHonors(ctx context.Context, q *dto.GradeMajorQuery) ([]models.HonorRecord, error)
	RecordHonor(ctx context.Context, req *dto.RecordHonorRequest) (HonorResult, error)
	ListStories(ctx context.Context) ([]models.StoryRecord, error)
	RecordStory(ctx context.Context, req *dto.RecordStoryRequest) (models.StoryRecord, error)
}

type developmentServiceImpl struct {
	store    *store.Store
	notifier Notifier
	logger   zerolog.Logger
}

// NewDevelopmentService creates a new DevelopmentService
func NewDevelopmentService(st *store.Store, notifier Notifier, logger zerolog.Logger) DevelopmentService {
	return &developmentServiceImpl{
		store:    st,
		notifier: notifierOrNop(notifier),
		logger:   logger,
	}
}

// ListHonors returns the honors of students in the selected grade and major
func (s *developmentServiceImpl) ListHonors(ctx context.Context, q *dto.GradeMajorQuery) ([]models.HonorRecord, error) {
	if q == nil {
		q = &dto.GradeMajorQuery{}
	}
	snap := s.store.Snapshot()
	return projections.FilterHonors(snap.Honors, snap.Students, q.Grade, q.Major), nil
}

// RecordHonor stores an award and adds it to the winner's timeline
func (s *developmentServiceImpl) RecordHonor(ctx context.Context, req *dto.RecordHonorRequest) (HonorResult, error) {
	if req == nil {
		return HonorResult{}, apperrors.NewBadRequestError("honor data is required")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Level) == "" {
		return HonorResult{}, apperrors.NewValidationError("title and level are required")
	}

	name := strings.TrimSpace(req.StudentName)
	if st, ok := s.store.Student(req.StudentID); ok {
		name = st.Name
	}

	honor, event, attached := s.store.RecordHonor(models.HonorFields{
		Title:       req.Title,
		Level:       req.Level,
		StudentID:   req.StudentID,
		StudentName: name,
		Date:        req.Date,
		Image:       req.Image,
	})

	res := HonorResult{Honor: honor}
	if attached {
		res.Event = &event
		s.notifier.Notify(CollectionStudents, ActionUpdated, req.StudentID, 1)
	} else {
		s.logger.Warn().Str("studentId", req.StudentID).Msg("Honor recorded for a student not on the roster")
	}
	s.logger.Info().Str("honorId", honor.ID).Str("title", honor.Title).Msg("Honor recorded")
	s.notifier.Notify(CollectionHonors, ActionCreated, honor.ID, 1)
	return res, nil
}

// ListStories returns every story, newest first
func (s *developmentServiceImpl) ListStories(ctx context.Context) ([]models.StoryRecord, error) {
	return s.store.Snapshot().Stories, nil
}

// RecordStory stores a growth story. Tags arrive as one comma separated string.
func (s *developmentServiceImpl) RecordStory(ctx context.Context, req *dto.RecordStoryRequest) (models.StoryRecord, error) {
	if req == nil {
		return models.StoryRecord{}, apperrors.NewBadRequestError("story data is required")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" {
		return models.StoryRecord{}, apperrors.NewValidationError("title and author are required")
	}

	image := req.Image
	if image == "" {
		image = DefaultStoryImage
	}

	story := s.store.RecordStory(models.StoryFields{
		Title:   req.Title,
		Author:  req.Author,
		Tags:    store.SplitStoryTags(req.Tags),
		Image:   image,
		Summary: req.Summary,
	})
	s.logger.Info().Str("storyId", story.ID).Msg("Story recorded")
	s.notifier.Notify(CollectionStories, ActionCreated, story.ID, 1)
	return story, nil
}
