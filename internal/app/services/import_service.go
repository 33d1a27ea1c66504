package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/counselordesk/internal/app/importer"
	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/app/store"
)

// ImportResult lists the students an import added, in file order
type ImportResult struct {
	Students []models.Student
	Count    int
}

// ImportService defines the roster import use cases
type ImportService interface {
	ImportStudents(ctx context.Context, data []byte, kind importer.FileKind) (ImportResult, error)
	Preview(ctx context.Context, data []byte, kind importer.FileKind) (ImportResult, error)
}

type importServiceImpl struct {
	store    *store.Store
	notifier Notifier
	logger   zerolog.Logger
}

// NewImportService creates a new ImportService
func NewImportService(st *store.Store, notifier Notifier, logger zerolog.Logger) ImportService {
	return &importServiceImpl{
		store:    st,
		notifier: notifierOrNop(notifier),
		logger:   logger,
	}
}

// ImportStudents parses the file and appends every row to the roster at once.
// A file that cannot be parsed leaves the roster untouched.
func (s *importServiceImpl) ImportStudents(ctx context.Context, data []byte, kind importer.FileKind) (ImportResult, error) {
	rows, err := s.parse(ctx, data, kind)
	if err != nil {
		return ImportResult{}, err
	}

	created := s.store.AppendStudents(rows)
	s.logger.Info().Str("kind", kind.String()).Int("count", len(created)).Msg("Students imported")
	if len(created) > 0 {
		s.notifier.Notify(CollectionStudents, ActionImported, "", len(created))
	}
	return ImportResult{Students: created, Count: len(created)}, nil
}

// Preview parses the file without touching the roster. Preview rows carry no id.
func (s *importServiceImpl) Preview(ctx context.Context, data []byte, kind importer.FileKind) (ImportResult, error) {
	rows, err := s.parse(ctx, data, kind)
	if err != nil {
		return ImportResult{}, err
	}

	students := make([]models.Student, 0, len(rows))
	for _, f := range rows {
		students = append(students, models.NewStudent("", f))
	}
	return ImportResult{Students: students, Count: len(students)}, nil
}

func (s *importServiceImpl) parse(ctx context.Context, data []byte, kind importer.FileKind) ([]models.StudentFields, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("import cancelled: %w", err)
	}
	rows, err := importer.Parse(data, kind)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind.String()).Int("bytes", len(data)).Msg("Import rejected")
		return nil, err
	}
	return rows, nil
}
