package services

import (
	"context"

	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/models/dto"
	"github.com/yigit/counselordesk/internal/app/projections"
	"github.com/yigit/counselordesk/internal/app/store"
)

// OverviewService defines the read-only views spanning the whole roster
type OverviewService interface {
	Dashboard(ctx context.Context) (projections.DashboardStats, error)
	Facets(ctx context.Context) (dto.FacetsResponse, error)
}

type overviewServiceImpl struct {
	store *store.Store
}

// NewOverviewService creates a new OverviewService
func NewOverviewService(st *store.Store) OverviewService {
	return &overviewServiceImpl{store: st}
}

func (s *overviewServiceImpl) Dashboard(ctx context.Context) (projections.DashboardStats, error) {
	return projections.Dashboard(s.store.Snapshot().Students), nil
}

// Facets lists the grades and majors present on the roster, each led by its
// "all" sentinel, together with the closed vocabularies.
func (s *overviewServiceImpl) Facets(ctx context.Context) (dto.FacetsResponse, error) {
	students := s.store.Snapshot().Students
	return dto.FacetsResponse{
		Grades:          withSentinel(projections.AllGrades, projections.Distinct(students, projections.FieldGrade)),
		Majors:          withSentinel(projections.AllMajors, projections.Distinct(students, projections.FieldMajor)),
		Tags:            names(models.AllTags()),
		EventCategories: names(models.AllEventCategories()),
		TalkCategories:  names(models.AllTalkCategories()),
		DormStatuses:    names(models.AllDormStatuses()),
	}, nil
}

func withSentinel(sentinel string, values []string) []string {
	out := make([]string, 0, len(values)+1)
	out = append(out, sentinel)
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func names[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
