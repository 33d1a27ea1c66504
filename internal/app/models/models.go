package models

// Closed vocabularies. Wire values are the literals used by the console and by the
// spreadsheets counselors exchange with the administrative office, so they stay in Chinese.

// Gender of a student
type Gender string

const (
	GenderMale   Gender = "男"
	GenderFemale Gender = "女"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Tag is a status marker attached to a student
type Tag string

const (
	TagPsychologicalConcern Tag = "心理关注"
	TagFinancialAid         Tag = "贫困资助"
	TagAcademicWarning      Tag = "学业预警"
	TagPartyMember          Tag = "党员"
	TagPartyCandidate       Tag = "入党积极分子"
	TagClassCadre           Tag = "班委"
)

// AllTags lists the tag vocabulary in display order
func AllTags() []Tag {
	return []Tag{
		TagPsychologicalConcern,
		TagFinancialAid,
		TagAcademicWarning,
		TagPartyMember,
		TagPartyCandidate,
		TagClassCadre,
	}
}

// Valid reports whether t belongs to the tag vocabulary
func (t Tag) Valid() bool {
	for _, known := range AllTags() {
		if t == known {
			return true
		}
	}
	return false
}

// EventCategory classifies a student timeline entry
type EventCategory string

const (
	EventAccident     EventCategory = "意外事件"
	EventDisciplinary EventCategory = "违纪错误"
	EventHonor        EventCategory = "荣誉奖励"
	EventOther        EventCategory = "其他记录"
)

// AllEventCategories lists the event categories in display order
func AllEventCategories() []EventCategory {
	return []EventCategory{EventAccident, EventDisciplinary, EventHonor, EventOther}
}

// Valid reports whether c is a known event category
func (c EventCategory) Valid() bool {
	switch c {
	case EventAccident, EventDisciplinary, EventHonor, EventOther:
		return true
	}
	return false
}

// TalkCategory classifies a counseling conversation
type TalkCategory string

const (
	TalkDaily           TalkCategory = "日常谈话"
	TalkAcademicWarning TalkCategory = "学业预警"
	TalkPsychological   TalkCategory = "心理疏导"
	TalkCareer          TalkCategory = "职业规划"
	TalkDisciplinary    TalkCategory = "违纪约谈"
)

// AllTalkCategories lists the talk categories in display order
func AllTalkCategories() []TalkCategory {
	return []TalkCategory{TalkDaily, TalkAcademicWarning, TalkPsychological, TalkCareer, TalkDisciplinary}
}

// Valid reports whether c is a known talk category
func (c TalkCategory) Valid() bool {
	switch c {
	case TalkDaily, TalkAcademicWarning, TalkPsychological, TalkCareer, TalkDisciplinary:
		return true
	}
	return false
}

// DormStatus is the outcome of a dormitory inspection
type DormStatus string

const (
	DormExcellent        DormStatus = "优秀"
	DormPass             DormStatus = "合格"
	DormNeedsImprovement DormStatus = "整改"
	DormViolation        DormStatus = "违纪"
)

// AllDormStatuses lists the inspection outcomes in display order
func AllDormStatuses() []DormStatus {
	return []DormStatus{DormExcellent, DormPass, DormNeedsImprovement, DormViolation}
}

// Valid reports whether s is a known inspection outcome
func (s DormStatus) Valid() bool {
	switch s {
	case DormExcellent, DormPass, DormNeedsImprovement, DormViolation:
		return true
	}
	return false
}
