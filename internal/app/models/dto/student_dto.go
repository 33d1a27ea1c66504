package dto

import (
	"github.com/yigit/counselordesk/internal/app/models"
)

// CreateStudentRequest represents a new student entered by hand.
// Avatar may be a data URL; multipart requests send the file as "avatar" instead.
type CreateStudentRequest struct {
	Name          string        `json:"name" form:"name" binding:"required,max=64"`
	Gender        models.Gender `json:"gender" form:"gender" binding:"omitempty,gender"`
	Department    string        `json:"department" form:"department"`
	Grade         string        `json:"grade" form:"grade"`
	Major         string        `json:"major" form:"major"`
	ClassName     string        `json:"className" form:"className"`
	StudentNumber string        `json:"studentId" form:"studentId"`
	IDCard        string        `json:"idCard" form:"idCard"`
	Address       string        `json:"address" form:"address"`
	Origin        string        `json:"origin" form:"origin"`
	Birthday      string        `json:"birthday" form:"birthday"`
	Phone         string        `json:"phone" form:"phone"`
	FatherName    string        `json:"fatherName" form:"fatherName"`
	FatherPhone   string        `json:"fatherPhone" form:"fatherPhone"`
	MotherName    string        `json:"motherName" form:"motherName"`
	MotherPhone   string        `json:"motherPhone" form:"motherPhone"`
	DormID        string        `json:"dormId" form:"dormId"`
	Avatar        string        `json:"avatar" form:"-" binding:"omitempty,image_ref"`
}

// Fields converts the request for the store
func (r CreateStudentRequest) Fields() models.StudentFields {
	return models.StudentFields{
		Name:          r.Name,
		Gender:        r.Gender,
		Department:    r.Department,
		Grade:         r.Grade,
		Major:         r.Major,
		ClassName:     r.ClassName,
		StudentNumber: r.StudentNumber,
		IDCard:        r.IDCard,
		Address:       r.Address,
		Origin:        r.Origin,
		Birthday:      r.Birthday,
		Phone:         r.Phone,
		FatherName:    r.FatherName,
		FatherPhone:   r.FatherPhone,
		MotherName:    r.MotherName,
		MotherPhone:   r.MotherPhone,
		DormID:        r.DormID,
		Avatar:        r.Avatar,
	}
}

// UpdateStudentRequest is a partial update; absent fields keep their value
type UpdateStudentRequest struct {
	Name          *string        `json:"name" binding:"omitempty,max=64"`
	Gender        *models.Gender `json:"gender" binding:"omitempty,gender"`
	Department    *string        `json:"department"`
	Grade         *string        `json:"grade"`
	Major         *string        `json:"major"`
	ClassName     *string        `json:"className"`
	StudentNumber *string        `json:"studentId"`
	IDCard        *string        `json:"idCard"`
	Address       *string        `json:"address"`
	Origin        *string        `json:"origin"`
	Birthday      *string        `json:"birthday"`
	Phone         *string        `json:"phone"`
	FatherName    *string        `json:"fatherName"`
	FatherPhone   *string        `json:"fatherPhone"`
	MotherName    *string        `json:"motherName"`
	MotherPhone   *string        `json:"motherPhone"`
	DormID        *string        `json:"dormId"`
	Avatar        *string        `json:"avatar" binding:"omitempty,image_ref"`
}

// Patch converts the request for the store
func (r UpdateStudentRequest) Patch() models.StudentPatch {
	return models.StudentPatch{
		Name:          r.Name,
		Gender:        r.Gender,
		Department:    r.Department,
		Grade:         r.Grade,
		Major:         r.Major,
		ClassName:     r.ClassName,
		StudentNumber: r.StudentNumber,
		IDCard:        r.IDCard,
		Address:       r.Address,
		Origin:        r.Origin,
		Birthday:      r.Birthday,
		Phone:         r.Phone,
		FatherName:    r.FatherName,
		FatherPhone:   r.FatherPhone,
		MotherName:    r.MotherName,
		MotherPhone:   r.MotherPhone,
		DormID:        r.DormID,
		Avatar:        r.Avatar,
	}
}

// ToggleTagRequest flips one tag on a student
type ToggleTagRequest struct {
	Tag models.Tag `json:"tag" binding:"required,student_tag" example:"党员"`
}

// SetTagsRequest replaces a student's tag set; an empty list clears it
type SetTagsRequest struct {
	Tags []models.Tag `json:"tags" binding:"dive,student_tag"`
}

// AppendEventRequest adds an entry to a student's timeline
type AppendEventRequest struct {
	Category models.EventCategory `json:"type" binding:"required,event_category" example:"荣誉奖励"`
	Title    string               `json:"title" binding:"required,max=128"`
	Date     string               `json:"date" binding:"required" example:"2023-09-15"`
	Detail   string               `json:"detail"`
}

// Fields converts the request for the store
func (r AppendEventRequest) Fields() models.EventFields {
	return models.EventFields{
		Category: r.Category,
		Title:    r.Title,
		Date:     r.Date,
		Detail:   r.Detail,
	}
}

// StudentListQuery filters the roster
type StudentListQuery struct {
	Q string `form:"q"`
}

// ImportResponse reports the students added by an import
type ImportResponse struct {
	Count    int              `json:"count" example:"42"`
	Students []models.Student `json:"students"`
}

// ImportPreviewResponse shows what an import would add without adding it
type ImportPreviewResponse struct {
	Count int              `json:"count" example:"42"`
	Rows  []models.Student `json:"rows"`
}
