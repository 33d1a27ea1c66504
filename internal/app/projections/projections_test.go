package projections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/counselordesk/internal/app/models"
)

func student(id, name, grade, major, dorm string, tags ...models.Tag) models.Student {
	s := models.NewStudent(id, models.StudentFields{
		Name:          name,
		Grade:         grade,
		Major:         major,
		DormID:        dorm,
		StudentNumber: "2021" + id,
		ClassName:     major + "班",
	})
	s.Tags = append(s.Tags, tags...)
	return s
}

func fixtureStudents() []models.Student {
	return []models.Student{
		student("1", "张三", "2021级", "软件工程", "南区-102", models.TagAcademicWarning),
		student("2", "李华", "2022级", "会计学", "南区-101", models.TagPartyMember),
		student("3", "王五", "2021级", "软件工程", "", models.TagPsychologicalConcern, models.TagAcademicWarning),
		student("4", "赵六", "2021级", "会计学", "南区-102"),
	}
}

func ids(students []models.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.ID)
	}
	return out
}

func TestGroupByDormitoryExcludesStudentsWithoutDorm(t *testing.T) {
	groups := GroupByDormitory(fixtureStudents(), "", "")

	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.NotEmpty(t, g.DormID)
		for _, s := range g.Students {
			assert.NotEqual(t, "3", s.ID)
		}
	}
}

func TestGroupByDormitorySortsAndFilters(t *testing.T) {
	groups := GroupByDormitory(fixtureStudents(), AllGrades, AllMajors)
	require.Len(t, groups, 2)
	assert.Equal(t, "南区-101", groups[0].DormID)
	assert.Equal(t, "南区-102", groups[1].DormID)
	assert.Equal(t, []string{"1", "4"}, ids(groups[1].Students))

	groups = GroupByDormitory(fixtureStudents(), "2021级", "软件工程")
	require.Len(t, groups, 1)
	assert.Equal(t, "南区-102", groups[0].DormID)
	assert.Equal(t, []string{"1"}, ids(groups[0].Students))

	assert.Empty(t, GroupByDormitory(fixtureStudents(), "2030级", ""))
}

func TestGroupByDormitoryCollatesLabels(t *testing.T) {
	students := []models.Student{
		student("1", "a", "", "", "C-3"),
		student("2", "b", "", "", "A-1"),
		student("3", "c", "", "", "B-2"),
	}
	groups := GroupByDormitory(students, "", "")
	require.Len(t, groups, 3)
	assert.Equal(t, "A-1", groups[0].DormID)
	assert.Equal(t, "B-2", groups[1].DormID)
	assert.Equal(t, "C-3", groups[2].DormID)
}

func TestLatestInspectionFollowsRecordingOrder(t *testing.T) {
	// Newest first, the way the store keeps them. The older record carries the later timestamp.
	inspections := []models.DormInspection{
		{ID: "b", DormID: "南区-101", Status: models.DormViolation, Time: "2024-01-01 08:00:00", Note: "bad"},
		{ID: "x", DormID: "北区-202", Status: models.DormExcellent},
		{ID: "a", DormID: "南区-101", Status: models.DormPass, Time: "2024-06-01 08:00:00", Note: "ok"},
	}

	latest, ok := LatestInspection(inspections, "南区-101")
	require.True(t, ok)
	assert.Equal(t, models.DormViolation, latest.Status)

	_, ok = LatestInspection(inspections, "东区-1")
	assert.False(t, ok)

	history := History(inspections, "南区-101")
	require.Len(t, history, 2)
	assert.Equal(t, "b", history[0].ID)
	assert.Equal(t, "a", history[1].ID)
	assert.Empty(t, History(inspections, "东区-1"))
}

func TestStudentsWithTalks(t *testing.T) {
	students := fixtureStudents()
	talks := []models.TalkRecord{
		{ID: "t1", StudentID: "1"},
		{ID: "t2", StudentID: "4"},
		{ID: "t3", StudentID: "1"},
		{ID: "t4", StudentID: "gone"},
	}

	assert.Equal(t, []string{"1", "4"}, ids(StudentsWithTalks(students, talks, StudentFilter{})))
	assert.Equal(t, []string{"4"}, ids(StudentsWithTalks(students, talks, StudentFilter{Major: "会计学"})))
	assert.Equal(t, []string{"1"}, ids(StudentsWithTalks(students, talks, StudentFilter{Text: "张"})))
	assert.Equal(t, []string{"4"}, ids(StudentsWithTalks(students, talks, StudentFilter{Text: "20214"})))
	assert.Empty(t, StudentsWithTalks(students, talks, StudentFilter{Grade: "2022级"}))
}

func TestDistinctKeepsFirstOccurrenceOrder(t *testing.T) {
	students := fixtureStudents()
	assert.Equal(t, []string{"2021级", "2022级"}, Distinct(students, FieldGrade))
	assert.Equal(t, []string{"软件工程", "会计学"}, Distinct(students, FieldMajor))
	assert.Equal(t, []string{"南区-102", "南区-101", ""}, Distinct(students, FieldDorm))
}

func TestSearchStudents(t *testing.T) {
	students := fixtureStudents()
	assert.Len(t, SearchStudents(students, ""), 4)
	assert.Equal(t, []string{"2", "4"}, ids(SearchStudents(students, "会计")))
	assert.Equal(t, []string{"2"}, ids(SearchStudents(students, "南区-101")))
	assert.Equal(t, []string{"2"}, ids(SearchStudents(students, "2022")))
}

func TestPickStudents(t *testing.T) {
	students := fixtureStudents()
	assert.Empty(t, PickStudents(students, "  ", PickerLimit))
	assert.Equal(t, []string{"2", "4"}, ids(PickStudents(students, "会计学班", PickerLimit)))

	many := make([]models.Student, 0, 8)
	for i := 0; i < 8; i++ {
		many = append(many, student(string(rune('a'+i)), "同学", "", "", ""))
	}
	assert.Len(t, PickStudents(many, "同学", PickerLimit), PickerLimit)
}

func TestTalksForStudent(t *testing.T) {
	talks := []models.TalkRecord{{ID: "t3", StudentID: "1"}, {ID: "t2", StudentID: "2"}, {ID: "t1", StudentID: "1"}}
	got := TalksForStudent(talks, "1")
	require.Len(t, got, 2)
	assert.Equal(t, "t3", got[0].ID)
	assert.Empty(t, TalksForStudent(talks, "9"))
}

func TestFilterHonorsPassesOrphans(t *testing.T) {
	honors := []models.HonorRecord{
		{ID: "h1", StudentID: "1"},
		{ID: "h2", StudentID: "2"},
		{ID: "h3", StudentID: "deleted"},
	}
	got := FilterHonors(honors, fixtureStudents(), "2022级", AllMajors)
	require.Len(t, got, 2)
	assert.Equal(t, "h2", got[0].ID)
	assert.Equal(t, "h3", got[1].ID)
}

func TestDormBoardDefaultsToPass(t *testing.T) {
	inspections := []models.DormInspection{
		{ID: "i2", DormID: "南区-102", Status: models.DormNeedsImprovement},
		{ID: "i1", DormID: "南区-102", Status: models.DormExcellent},
	}
	cards := DormBoard(fixtureStudents(), inspections, "", "")
	require.Len(t, cards, 2)

	assert.Equal(t, "南区-101", cards[0].DormID)
	assert.Equal(t, models.DormPass, cards[0].Status)
	assert.Nil(t, cards[0].Latest)

	assert.Equal(t, models.DormNeedsImprovement, cards[1].Status)
	require.NotNil(t, cards[1].Latest)
	assert.Equal(t, "i2", cards[1].Latest.ID)
}

func TestDashboard(t *testing.T) {
	stats := Dashboard(fixtureStudents())

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.AssignedDorms)
	assert.Equal(t, 2, stats.Focus)
	assert.Equal(t, 1, stats.PartyMembers)

	require.Len(t, stats.Portals, 3)
	assert.Equal(t, PortalGroup{Grade: "2022级", Major: "会计学", Count: 1}, stats.Portals[0])
	assert.Equal(t, PortalGroup{Grade: "2021级", Major: "软件工程", Count: 2}, stats.Portals[1])
	assert.Equal(t, PortalGroup{Grade: "2021级", Major: "会计学", Count: 1}, stats.Portals[2])
}

func TestDashboardEmpty(t *testing.T) {
	stats := Dashboard(nil)
	assert.Zero(t, stats.Total)
	assert.NotNil(t, stats.Portals)
}
