// Package store holds the console's authoritative in-memory collections.
//
// Every collection is kept in store order: entries created one at a time are
// prepended, so index 0 is the most recently recorded entry. Bulk imports are the
// only exception and are appended at the tail. All mutations run inside a single
// write lock, which makes each of them (including the cascading student delete)
// indivisible for concurrent readers.
package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yigit/counselordesk/internal/app/models"
)

// IDGenerator returns a fresh identifier that is unique within the process
type IDGenerator func() string

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithCounselor sets the initial counselor profile
func WithCounselor(info models.CounselorInfo) Option {
	return func(s *Store) {
		s.counselor = info
	}
}

// Store owns every collection of the console
type Store struct {
	mu    sync.RWMutex
	newID IDGenerator

	students    []models.Student
	talks       []models.TalkRecord
	inspections []models.DormInspection
	honors      []models.HonorRecord
	stories     []models.StoryRecord
	counselor   models.CounselorInfo
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		newID:       uuid.NewString,
		students:    []models.Student{},
		talks:       []models.TalkRecord{},
		inspections: []models.DormInspection{},
		honors:      []models.HonorRecord{},
		stories:     []models.StoryRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is a deep copy of the store taken under one read lock
type Snapshot struct {
	Students    []models.Student
	Talks       []models.TalkRecord
	Inspections []models.DormInspection
	Honors      []models.HonorRecord
	Stories     []models.StoryRecord
	Counselor   models.CounselorInfo
}

// Snapshot copies every collection; callers may keep and modify the result freely
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Students:    make([]models.Student, len(s.students)),
		Talks:       append([]models.TalkRecord{}, s.talks...),
		Inspections: append([]models.DormInspection{}, s.inspections...),
		Honors:      append([]models.HonorRecord{}, s.honors...),
		Stories:     make([]models.StoryRecord, len(s.stories)),
		Counselor:   s.counselor,
	}
	for i, st := range s.students {
		snap.Students[i] = st.Clone()
	}
	for i, story := range s.stories {
		story.Tags = append([]string{}, story.Tags...)
		snap.Stories[i] = story
	}
	return snap
}

// Counselor returns the counselor profile
func (s *Store) Counselor() models.CounselorInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counselor
}

// UpdateCounselor merges the non-nil fields of patch into the profile
func (s *Store) UpdateCounselor(patch models.CounselorPatch) models.CounselorInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil {
		s.counselor.Name = *patch.Name
	}
	if patch.Title != nil {
		s.counselor.Title = *patch.Title
	}
	if patch.Avatar != nil {
		s.counselor.Avatar = *patch.Avatar
	}
	if patch.ThemeColor != nil {
		s.counselor.ThemeColor = *patch.ThemeColor
	}
	return s.counselor
}

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}
