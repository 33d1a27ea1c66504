package models

// Student is a counselor's record of one student
type Student struct {
	ID            string `json:"id" example:"6f1c1a52-5a43-4c52-9d5c-8f0b9a1f3e21"` // Store-assigned identifier, never changes
	Name          string `json:"name" example:"张三"`
	Gender        Gender `json:"gender" example:"男"`
	Department    string `json:"department" example:"信息工程学院"`
	Grade         string `json:"grade" example:"2021级"`
	Major         string `json:"major" example:"计算机科学与技术"`
	ClassName     string `json:"className" example:"计科2101"`
	StudentNumber string `json:"studentId" example:"20210001"` // School-issued number, not unique in the store
	IDCard        string `json:"idCard" example:"110101200301011234"`
	Address       string `json:"address"`
	Origin        string `json:"origin"`
	Birthday      string `json:"birthday" example:"2003-01-01"`
	Phone         string `json:"phone"`
	FatherName    string `json:"fatherName"`
	FatherPhone   string `json:"fatherPhone"`
	MotherName    string `json:"motherName"`
	MotherPhone   string `json:"motherPhone"`
	DormID        string `json:"dormId" example:"南区-101"` // Empty means unassigned
	Avatar        string `json:"avatar,omitempty"`

	Tags   []Tag          `json:"tags"`
	Events []StudentEvent `json:"events"` // Newest first
}

// HasTag reports whether the student carries tag
func (s *Student) HasTag(tag Tag) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// StudentEvent is one entry of a student's timeline
type StudentEvent struct {
	ID       string        `json:"id"`
	Category EventCategory `json:"type" example:"荣誉奖励"`
	Title    string        `json:"title" example:"数学竞赛一等奖"`
	Date     string        `json:"date" example:"2023-09-15"`
	Detail   string        `json:"detail"`
}

// EventFields is a timeline entry before the store assigns its id
type EventFields struct {
	Category EventCategory
	Title    string
	Date     string
	Detail   string
}

// StudentFields carries every caller-settable attribute of a new student
type StudentFields struct {
	Name          string
	Gender        Gender
	Department    string
	Grade         string
	Major         string
	ClassName     string
	StudentNumber string
	IDCard        string
	Address       string
	Origin        string
	Birthday      string
	Phone         string
	FatherName    string
	FatherPhone   string
	MotherName    string
	MotherPhone   string
	DormID        string
	Avatar        string
}

// StudentPatch is a partial update; nil fields are left unchanged
type StudentPatch struct {
	Name          *string
	Gender        *Gender
	Department    *string
	Grade         *string
	Major         *string
	ClassName     *string
	StudentNumber *string
	IDCard        *string
	Address       *string
	Origin        *string
	Birthday      *string
	Phone         *string
	FatherName    *string
	FatherPhone   *string
	MotherName    *string
	MotherPhone   *string
	DormID        *string
	Avatar        *string
}

// Apply merges the non-nil fields of p onto s
func (p StudentPatch) Apply(s *Student) {
	setString(&s.Name, p.Name)
	if p.Gender != nil {
		s.Gender = *p.Gender
	}
	setString(&s.Department, p.Department)
	setString(&s.Grade, p.Grade)
	setString(&s.Major, p.Major)
	setString(&s.ClassName, p.ClassName)
	setString(&s.StudentNumber, p.StudentNumber)
	setString(&s.IDCard, p.IDCard)
	setString(&s.Address, p.Address)
	setString(&s.Origin, p.Origin)
	setString(&s.Birthday, p.Birthday)
	setString(&s.Phone, p.Phone)
	setString(&s.FatherName, p.FatherName)
	setString(&s.FatherPhone, p.FatherPhone)
	setString(&s.MotherName, p.MotherName)
	setString(&s.MotherPhone, p.MotherPhone)
	setString(&s.DormID, p.DormID)
	setString(&s.Avatar, p.Avatar)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// NewStudent builds a student with empty tags and timeline
func NewStudent(id string, f StudentFields) Student {
	gender := f.Gender
	if !gender.Valid() {
		gender = GenderMale
	}
	return Student{
		ID:            id,
		Name:          f.Name,
		Gender:        gender,
		Department:    f.Department,
		Grade:         f.Grade,
		Major:         f.Major,
		ClassName:     f.ClassName,
		StudentNumber: f.StudentNumber,
		IDCard:        f.IDCard,
		Address:       f.Address,
		Origin:        f.Origin,
		Birthday:      f.Birthday,
		Phone:         f.Phone,
		FatherName:    f.FatherName,
		FatherPhone:   f.FatherPhone,
		MotherName:    f.MotherName,
		MotherPhone:   f.MotherPhone,
		DormID:        f.DormID,
		Avatar:        f.Avatar,
		Tags:          []Tag{},
		Events:        []StudentEvent{},
	}
}

// Clone returns a deep copy of s
func (s Student) Clone() Student {
	c := s
	c.Tags = append(make([]Tag, 0, len(s.Tags)), s.Tags...)
	c.Events = append(make([]StudentEvent, 0, len(s.Events)), s.Events...)
	return c
}
