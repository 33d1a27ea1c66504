package models

// TalkRecord is one counseling conversation with a student
type TalkRecord struct {
	ID          string       `json:"id"`
	StudentID   string       `json:"studentId"`   // Store id of the student, not the student number
	StudentName string       `json:"studentName"` // Copied when the talk is recorded
	Category    TalkCategory `json:"type" example:"日常谈话"`
	Date        string       `json:"date" example:"2024-03-01"`
	Location    string       `json:"location" example:"辅导员办公室"`
	Content     string       `json:"content"`
	FollowUp    string       `json:"followUp"`
	Image       string       `json:"img,omitempty"` // Inline data URL
}

// TalkFields is a talk before the store assigns its id
type TalkFields struct {
	StudentID   string
	StudentName string
	Category    TalkCategory
	Date        string
	Location    string
	Content     string
	FollowUp    string
	Image       string
}

// DormInspection is an append-only dormitory check result.
// Dormitories are not entities of their own; DormID is the label students carry.
type DormInspection struct {
	ID     string     `json:"id"`
	DormID string     `json:"dormId" example:"南区-101"`
	Status DormStatus `json:"status" example:"合格"`
	Time   string     `json:"time" example:"2024-03-01 21:30:00"`
	Note   string     `json:"note"`
}

// InspectionFields is an inspection before the store assigns its id
type InspectionFields struct {
	DormID string
	Status DormStatus
	Time   string
	Note   string
}

// HonorRecord is an award won by a student
type HonorRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title" example:"全国数学建模"`
	Level       string `json:"level" example:"一等奖"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Date        string `json:"date" example:"2023-09"`
	Image       string `json:"img,omitempty"`
}

// HonorFields is an honor before the store assigns its id
type HonorFields struct {
	Title       string
	Level       string
	StudentID   string
	StudentName string
	Date        string
	Image       string
}

// StoryRecord is a free-standing growth story shown on the development board
type StoryRecord struct {
	ID      string   `json:"id"`
	Title   string   `json:"title" example:"支教岁月"`
	Author  string   `json:"author" example:"陈老师"`
	Tags    []string `json:"tags"`
	Image   string   `json:"img"`
	Summary string   `json:"summary"`
}

// StoryFields is a story before the store assigns its id
type StoryFields struct {
	Title   string
	Author  string
	Tags    []string
	Image   string
	Summary string
}

// CounselorInfo is the profile of the console's single user
type CounselorInfo struct {
	Name       string `json:"name" example:"陈老师"`
	Title      string `json:"title" example:"计算机学院辅导员"`
	Avatar     string `json:"avatar"`
	ThemeColor string `json:"themeColor" example:"blue"`
}

// CounselorPatch is a partial profile update
type CounselorPatch struct {
	Name       *string
	Title      *string
	Avatar     *string
	ThemeColor *string
}
