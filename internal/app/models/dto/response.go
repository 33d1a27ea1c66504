package dto

import "time"

// NoChangeMessage is returned when a mutation addressed a student that does not exist
const NoChangeMessage = "no matching student; nothing changed"

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty" example:"Student created"`
	Data      interface{}  `json:"data"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewNoChangeResponse reports a mutation that matched nothing. It is a success.
func NewNoChangeResponse() APIResponse {
	return NewSuccessResponse(nil, NoChangeMessage)
}

// PaginationInfo describes one page of a list
type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// FacetsResponse feeds the navigation portals and every picker of the console
type FacetsResponse struct {
	Grades          []string `json:"grades"`
	Majors          []string `json:"majors"`
	Tags            []string `json:"tags"`
	EventCategories []string `json:"eventCategories"`
	TalkCategories  []string `json:"talkCategories"`
	DormStatuses    []string `json:"dormStatuses"`
}
