package store

import (
	"github.com/yigit/counselordesk/internal/app/models"
	"github.com/yigit/counselordesk/internal/pkg/apperrors"
)

// Mutations addressed by student id never fail on an unknown id. They return
// ok == false and leave the store untouched instead.

// DeleteResult reports what a cascading delete removed
type DeleteResult struct {
	StudentID     string `json:"studentId"`
	TalksRemoved  int    `json:"talksRemoved"`
	HonorsRemoved int    `json:"honorsRemoved"`
}

// CreateStudent inserts a new student at the head of the collection.
// Student numbers and id cards are not checked for duplicates.
func (s *Store) CreateStudent(fields models.StudentFields) models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.NewStudent(s.newID(), fields)
	s.students = prepend(s.students, st)
	return st.Clone()
}

// AppendStudents adds a batch at the tail of the collection in one step,
// so readers see either none or all of the batch.
func (s *Store) AppendStudents(batch []models.StudentFields) []models.Student {
	created := make([]models.Student, 0, len(batch))
	if len(batch) == 0 {
		return created
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fields := range batch {
		st := models.NewStudent(s.newID(), fields)
		s.students = append(s.students, st)
		created = append(created, st.Clone())
	}
	return created
}

// Student returns a copy of the student with the given id
func (s *Store) Student(id string) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Student{}, false
	}
	return s.students[i].Clone(), true
}

// UpdateStudent merges patch onto the student. No-op when id is unknown.
func (s *Store) UpdateStudent(id string, patch models.StudentPatch) (models.Student, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Student{}, false
	}
	patch.Apply(&s.students[i])
	s.students[i].ID = id
	return s.students[i].Clone(), true
}

// ToggleTag flips membership of tag. No-op when id is unknown.
func (s *Store) ToggleTag(id string, tag models.Tag) (models.Student, bool, error) {
	if !tag.Valid() {
		return models.Student{}, false, apperrors.ErrInvalidTag
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Student{}, false, nil
	}
	st := &s.students[i]
	if st.HasTag(tag) {
		st.Tags = withoutTag(st.Tags, tag)
	} else {
		st.Tags = append(st.Tags, tag)
	}
	return st.Clone(), true, nil
}

// AddTag makes sure the student carries tag
func (s *Store) AddTag(id string, tag models.Tag) (models.Student, bool, error) {
	return s.setTag(id, tag, true)
}

// RemoveTag makes sure the student does not carry tag
func (s *Store) RemoveTag(id string, tag models.Tag) (models.Student, bool, error) {
	return s.setTag(id, tag, false)
}

func (s *Store) setTag(id string, tag models.Tag, present bool) (models.Student, bool, error) {
	if !tag.Valid() {
		return models.Student{}, false, apperrors.ErrInvalidTag
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Student{}, false, nil
	}
	st := &s.students[i]
	switch {
	case present && !st.HasTag(tag):
		st.Tags = append(st.Tags, tag)
	case !present && st.HasTag(tag):
		st.Tags = withoutTag(st.Tags, tag)
	}
	return st.Clone(), true, nil
}

// SetTags replaces the tag set. Duplicates collapse; order of first appearance is kept.
func (s *Store) SetTags(id string, tags []models.Tag) (models.Student, bool, error) {
	set := make([]models.Tag, 0, len(tags))
	seen := make(map[models.Tag]bool, len(tags))
	for _, t := range tags {
		if !t.Valid() {
			return models.Student{}, false, apperrors.ErrInvalidTag
		}
		if !seen[t] {
			seen[t] = true
			set = append(set, t)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Student{}, false, nil
	}
	s.students[i].Tags = set
	return s.students[i].Clone(), true, nil
}

// AppendEvent puts a new entry at index 0 of the student's timeline.
// No-op when studentID is unknown.
func (s *Store) AppendEvent(studentID string, fields models.EventFields) (models.StudentEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendEventLocked(studentID, fields)
}

func (s *Store) appendEventLocked(studentID string, fields models.EventFields) (models.StudentEvent, bool) {
	i := s.indexOf(studentID)
	if i < 0 {
		return models.StudentEvent{}, false
	}
	ev := models.StudentEvent{
		ID:       s.newID(),
		Category: fields.Category,
		Title:    fields.Title,
		Date:     fields.Date,
		Detail:   fields.Detail,
	}
	s.students[i].Events = prepend(s.students[i].Events, ev)
	return ev, true
}

// DeleteStudent removes the student together with every talk and honor that
// references it. Dormitory inspections are left alone: they belong to the room,
// not to whoever lives there. ok is false when no student had that id; dangling
// talks and honors for the id are purged either way.
func (s *Store) DeleteStudent(id string) (DeleteResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := DeleteResult{StudentID: id}
	found := false
	students := s.students[:0:0]
	for _, st := range s.students {
		if st.ID == id {
			found = true
			continue
		}
		students = append(students, st)
	}

	talks := s.talks[:0:0]
	for _, t := range s.talks {
		if t.StudentID == id {
			res.TalksRemoved++
			continue
		}
		talks = append(talks, t)
	}

	honors := s.honors[:0:0]
	for _, h := range s.honors {
		if h.StudentID == id {
			res.HonorsRemoved++
			continue
		}
		honors = append(honors, h)
	}

	s.students, s.talks, s.honors = students, talks, honors
	return res, found
}

func (s *Store) indexOf(id string) int {
	for i := range s.students {
		if s.students[i].ID == id {
			return i
		}
	}
	return -1
}

func withoutTag(tags []models.Tag, tag models.Tag) []models.Tag {
	out := make([]models.Tag, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}
