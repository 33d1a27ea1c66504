// Package services holds the console's use cases. Every service reads and writes
// the shared store, and every applied mutation is announced through a Notifier.
//
// Services defined in this package:
//   - StudentService: roster search, profile edits, tags, timeline and deletion
//   - TalkService: counseling records and the talk overview
//   - DormService: dormitory board and inspections
//   - DevelopmentService: honors and growth stories
//   - ImportService: tabular roster import and its dry run
//   - CounselorService: the counselor profile
//   - OverviewService: dashboard statistics and filter facets
package services

// Notifier is told about every change that reached the store
type Notifier interface {
	Notify(collection, action, id string, count int)
}

// Collections named in change notices
const (
	CollectionStudents    = "students"
	CollectionTalks       = "talks"
	CollectionInspections = "inspections"
	CollectionHonors      = "honors"
	CollectionStories     = "stories"
	CollectionCounselor   = "counselor"
)

// Actions named in change notices
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// Outcome is the result of a mutation addressed by student id.
// Applied is false when nothing matched; Value is then the zero value.
type Outcome[T any] struct {
	Value   T
	Applied bool
}

func applied[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Applied: true}
}

func notApplied[T any]() Outcome[T] {
	return Outcome[T]{}
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, string, int) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
