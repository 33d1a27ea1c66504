package projections

import (
	"sort"

	"github.com/yigit/counselordesk/internal/app/models"
)

// DormCard is a dormitory on the inspection board
type DormCard struct {
	DormID   string                 `json:"dormId"`
	Students []models.Student       `json:"students"`
	Status   models.DormStatus      `json:"status"`
	Latest   *models.DormInspection `json:"latest,omitempty"`
}

// DormBoard pairs every dormitory group with its latest status.
// Dormitories never inspected show as 合格.
func DormBoard(students []models.Student, inspections []models.DormInspection, grade, major string) []DormCard {
	groups := GroupByDormitory(students, grade, major)
	cards := make([]DormCard, 0, len(groups))
	for _, g := range groups {
		card := DormCard{DormID: g.DormID, Students: g.Students, Status: models.DormPass}
		if in, ok := LatestInspection(inspections, g.DormID); ok {
			latest := in
			card.Status = in.Status
			card.Latest = &latest
		}
		cards = append(cards, card)
	}
	return cards
}

// PortalGroup is one grade and major combination on the welcome page
type PortalGroup struct {
	Grade string `json:"grade"`
	Major string `json:"major"`
	Count int    `json:"count"`
}

// DashboardStats are the welcome page counters
type DashboardStats struct {
	Total         int           `json:"total"`
	AssignedDorms int           `json:"assignedDorms"`
	Focus         int           `json:"focus"`
	PartyMembers  int           `json:"partyMembers"`
	Portals       []PortalGroup `json:"portals"`
}

// Dashboard computes the welcome page counters. Focus counts students tagged
// 心理关注 or 学业预警; portals are ordered by grade, newest first.
func Dashboard(students []models.Student) DashboardStats {
	stats := DashboardStats{Total: len(students), Portals: []PortalGroup{}}

	dorms := make(map[string]bool)
	portalIndex := make(map[[2]string]int)
	for _, s := range students {
		if s.DormID != "" {
			dorms[s.DormID] = true
		}
		if s.HasTag(models.TagPsychologicalConcern) || s.HasTag(models.TagAcademicWarning) {
			stats.Focus++
		}
		if s.HasTag(models.TagPartyMember) {
			stats.PartyMembers++
		}

		key := [2]string{s.Grade, s.Major}
		i, ok := portalIndex[key]
		if !ok {
			i = len(stats.Portals)
			portalIndex[key] = i
			stats.Portals = append(stats.Portals, PortalGroup{Grade: s.Grade, Major: s.Major})
		}
		stats.Portals[i].Count++
	}
	stats.AssignedDorms = len(dorms)

	c := newCollator()
	sort.SliceStable(stats.Portals, func(a, b int) bool {
		return c.CompareString(stats.Portals[a].Grade, stats.Portals[b].Grade) > 0
	})
	return stats
}
