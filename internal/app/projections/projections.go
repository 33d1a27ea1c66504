// Package projections derives the console's read views from a store snapshot.
// Nothing here is cached; callers recompute on every read.
package projections

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yigit/counselordesk/internal/app/models"
)

// Filter sentinels sent by the navigation portals
const (
	AllGrades = "全部年级"
	AllMajors = "全部专业"
)

// PickerLimit caps the student picker used by the talk and honor forms
const PickerLimit = 5

// Field names a student attribute for Distinct
type Field int

const (
	FieldGrade Field = iota
	FieldMajor
	FieldDorm
)

// DormGroup is one dormitory with the students living in it
type DormGroup struct {
	DormID   string           `json:"dormId"`
	Students []models.Student `json:"students"`
}

// StudentFilter narrows StudentsWithTalks. Empty fields (and the All* sentinels) do not filter.
type StudentFilter struct {
	Grade string
	Major string
	Text  string
}

func gradeMatches(filter, grade string) bool {
	return filter == "" || filter == AllGrades || filter == grade
}

func majorMatches(filter, major string) bool {
	return filter == "" || filter == AllMajors || filter == major
}

// newCollator returns a Chinese collator. Collators keep scratch buffers, so
// each call gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.SimplifiedChinese)
}

// GroupByDormitory buckets students by DormID, sorted by dormitory label.
// Students without a dormitory never appear.
func GroupByDormitory(students []models.Student, grade, major string) []DormGroup {
	index := make(map[string]int)
	var groups []DormGroup
	for _, s := range students {
		if s.DormID == "" || !gradeMatches(grade, s.Grade) || !majorMatches(major, s.Major) {
			continue
		}
		i, ok := index[s.DormID]
		if !ok {
			i = len(groups)
			index[s.DormID] = i
			groups = append(groups, DormGroup{DormID: s.DormID})
		}
		groups[i].Students = append(groups[i].Students, s)
	}

	c := newCollator()
	sort.SliceStable(groups, func(a, b int) bool {
		return c.CompareString(groups[a].DormID, groups[b].DormID) < 0
	})
	if groups == nil {
		groups = []DormGroup{}
	}
	return groups
}

// LatestInspection is the most recently recorded inspection of the dormitory.
// Recording order decides, not the Time field.
func LatestInspection(inspections []models.DormInspection, dormID string) (models.DormInspection, bool) {
	for _, in := range inspections {
		if in.DormID == dormID {
			return in, true
		}
	}
	return models.DormInspection{}, false
}

// History lists the dormitory's inspections, newest first
func History(inspections []models.DormInspection, dormID string) []models.DormInspection {
	out := []models.DormInspection{}
	for _, in := range inspections {
		if in.DormID == dormID {
			out = append(out, in)
		}
	}
	return out
}

// StudentsWithTalks lists students with at least one talk on record.
// Text matches a substring of the name or the student number.
func StudentsWithTalks(students []models.Student, talks []models.TalkRecord, f StudentFilter) []models.Student {
	talked := make(map[string]bool, len(talks))
	for _, t := range talks {
		talked[t.StudentID] = true
	}

	out := []models.Student{}
	for _, s := range students {
		if !talked[s.ID] || !gradeMatches(f.Grade, s.Grade) || !majorMatches(f.Major, s.Major) {
			continue
		}
		if f.Text != "" && !strings.Contains(s.Name, f.Text) && !strings.Contains(s.StudentNumber, f.Text) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Distinct returns the field's values in first-occurrence order
func Distinct(students []models.Student, field Field) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, s := range students {
		v := fieldValue(s, field)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func fieldValue(s models.Student, field Field) string {
	switch field {
	case FieldMajor:
		return s.Major
	case FieldDorm:
		return s.DormID
	default:
		return s.Grade
	}
}

// SearchStudents backs the roster search box. An empty term matches everyone.
func SearchStudents(students []models.Student, term string) []models.Student {
	out := []models.Student{}
	for _, s := range students {
		if strings.Contains(s.Name, term) ||
			strings.Contains(s.StudentNumber, term) ||
			strings.Contains(s.DormID, term) ||
			strings.Contains(s.Major, term) ||
			strings.Contains(s.Grade, term) {
			out = append(out, s)
		}
	}
	return out
}

// PickStudents backs the student pickers. A blank term picks nobody.
func PickStudents(students []models.Student, term string, limit int) []models.Student {
	out := []models.Student{}
	if strings.TrimSpace(term) == "" || limit <= 0 {
		return out
	}
	for _, s := range students {
		if strings.Contains(s.Name, term) ||
			strings.Contains(s.StudentNumber, term) ||
			strings.Contains(s.ClassName, term) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// TalksForStudent lists a student's talks, newest first
func TalksForStudent(talks []models.TalkRecord, studentID string) []models.TalkRecord {
	out := []models.TalkRecord{}
	for _, t := range talks {
		if t.StudentID == studentID {
			out = append(out, t)
		}
	}
	return out
}

// FilterHonors keeps honors whose student matches grade and major.
// Honors pointing at a student that no longer exists always pass.
func FilterHonors(honors []models.HonorRecord, students []models.Student, grade, major string) []models.HonorRecord {
	byID := make(map[string]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	out := []models.HonorRecord{}
	for _, h := range honors {
		s, ok := byID[h.StudentID]
		if ok && (!gradeMatches(grade, s.Grade) || !majorMatches(major, s.Major)) {
			continue
		}
		out = append(out, h)
	}
	return out
}
