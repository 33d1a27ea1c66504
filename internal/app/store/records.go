package store

import (
	"strings"

	"github.com/yigit/counselordesk/internal/app/models"
)

// Record* operations do not check that a referenced student exists. An orphaned
// StudentID is the caller's responsibility.

// RecordTalk prepends a counseling record
func (s *Store) RecordTalk(fields models.TalkFields) models.TalkRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := models.TalkRecord{
		ID:          s.newID(),
		StudentID:   fields.StudentID,
		StudentName: fields.StudentName,
		Category:    fields.Category,
		Date:        fields.Date,
		Location:    fields.Location,
		Content:     fields.Content,
		FollowUp:    fields.FollowUp,
		Image:       fields.Image,
	}
	s.talks = prepend(s.talks, t)
	return t
}

// RecordInspection prepends an inspection, making it the latest for its dormitory
func (s *Store) RecordInspection(fields models.InspectionFields) models.DormInspection {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := models.DormInspection{
		ID:     s.newID(),
		DormID: fields.DormID,
		Status: fields.Status,
		Time:   fields.Time,
		Note:   fields.Note,
	}
	s.inspections = prepend(s.inspections, in)
	return in
}

// HonorEventDetail is the timeline detail written for honors registered on the development board
const HonorEventDetail = "从荣誉殿堂模块录入，已关联电子证书照片。"

// HonorEventTitle is the timeline title synthesized for an honor
func HonorEventTitle(title, level string) string {
	return title + " (" + level + ")"
}

// RecordHonor prepends an honor and adds a matching honor entry to the student's
// timeline in the same step. attached is false when the student does not exist;
// the honor is recorded regardless.
func (s *Store) RecordHonor(fields models.HonorFields) (honor models.HonorRecord, event models.StudentEvent, attached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	honor = models.HonorRecord{
		ID:          s.newID(),
		Title:       fields.Title,
		Level:       fields.Level,
		StudentID:   fields.StudentID,
		StudentName: fields.StudentName,
		Date:        fields.Date,
		Image:       fields.Image,
	}
	s.honors = prepend(s.honors, honor)

	event, attached = s.appendEventLocked(fields.StudentID, models.EventFields{
		Category: models.EventHonor,
		Title:    HonorEventTitle(fields.Title, fields.Level),
		Date:     fields.Date,
		Detail:   HonorEventDetail,
	})
	return honor, event, attached
}

// RecordStory prepends a story
func (s *Store) RecordStory(fields models.StoryFields) models.StoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := append([]string{}, fields.Tags...)
	story := models.StoryRecord{
		ID:      s.newID(),
		Title:   fields.Title,
		Author:  fields.Author,
		Tags:    tags,
		Image:   fields.Image,
		Summary: fields.Summary,
	}
	s.stories = prepend(s.stories, story)

	out := story
	out.Tags = append([]string{}, tags...)
	return out
}

// SplitStoryTags turns "公益, 支教，乡村" into its trimmed, non-empty parts.
// Both the ASCII and the full-width comma separate tags.
func SplitStoryTags(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '，'
	})
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
