package dto

import (
	"github.com/yigit/counselordesk/internal/app/models"
)

// GradeMajorQuery carries the portal filters. Empty, 全部年级 and 全部专业 mean no filter.
type GradeMajorQuery struct {
	Grade string `form:"grade"`
	Major string `form:"major"`
}

// TalkListQuery filters the counseling overview
type TalkListQuery struct {
	GradeMajorQuery
	Q string `form:"q"`
}

// PickerQuery searches the student picker
type PickerQuery struct {
	Q string `form:"q"`
}

// RecordTalkRequest represents a counseling conversation.
// StudentName is only used when the student is not on the roster.
type RecordTalkRequest struct {
	StudentID   string              `json:"studentId" form:"studentId" binding:"required"`
	StudentName string              `json:"studentName" form:"studentName"`
	Category    models.TalkCategory `json:"type" form:"type" binding:"required,talk_category" example:"日常谈话"`
	Date        string              `json:"date" form:"date" binding:"required" example:"2024-03-01"`
	Location    string              `json:"location" form:"location"`
	Content     string              `json:"content" form:"content" binding:"required"`
	FollowUp    string              `json:"followUp" form:"followUp"`
	Image       string              `json:"img" form:"-" binding:"omitempty,image_ref"`
}

// RecordInspectionRequest represents a dormitory check. A blank Time is stamped by the server.
type RecordInspectionRequest struct {
	Status models.DormStatus `json:"status" binding:"required,dorm_status" example:"合格"`
	Note   string            `json:"note"`
	Time   string            `json:"time" example:"2024-03-01 21:30:00"`
}

// RecordHonorRequest represents an award. The certificate photo arrives as "image" in multipart requests.
type RecordHonorRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=128" example:"全国数学建模"`
	Level       string `json:"level" form:"level" binding:"required,max=64" example:"一等奖"`
	StudentID   string `json:"studentId" form:"studentId" binding:"required"`
	StudentName string `json:"studentName" form:"studentName"`
	Date        string `json:"date" form:"date" binding:"required" example:"2023-09"`
	Image       string `json:"img" form:"-" binding:"omitempty,image_ref"`
}

// RecordStoryRequest represents a growth story. Tags is the raw comma separated input.
type RecordStoryRequest struct {
	Title   string `json:"title" form:"title" binding:"required,max=128" example:"支教岁月"`
	Author  string `json:"author" form:"author" binding:"required,max=64" example:"陈老师"`
	Tags    string `json:"tags" form:"tags" example:"公益, 支教"`
	Summary string `json:"summary" form:"summary"`
	Image   string `json:"img" form:"-" binding:"omitempty,image_ref"`
}

// UpdateCounselorRequest is a partial profile update
type UpdateCounselorRequest struct {
	Name       *string `json:"name" form:"name" binding:"omitempty,max=64"`
	Title      *string `json:"title" form:"title" binding:"omitempty,max=128"`
	Avatar     *string `json:"avatar" form:"-" binding:"omitempty,image_ref"`
	ThemeColor *string `json:"themeColor" form:"themeColor" binding:"omitempty,max=32"`
}

// Patch converts the request for the store
func (r UpdateCounselorRequest) Patch() models.CounselorPatch {
	return models.CounselorPatch{
		Name:       r.Name,
		Title:      r.Title,
		Avatar:     r.Avatar,
		ThemeColor: r.ThemeColor,
	}
}
