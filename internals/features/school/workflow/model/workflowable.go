package model

import "github.com/google/uuid"

// Status is the shared approval lifecycle. Locked is terminal; Rejected
// hands authorship back (the author's resave moves it to Draft).
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusLocked    Status = "locked"
)

// Kind discriminates the document tables the engine operates on.
type Kind string

const (
	KindCalendarEvent Kind = "calendar_event"
	KindTeachingPlan  Kind = "teaching_plan"
	KindAssessment    Kind = "assessment"
)

// Workflowable is what a document table must expose for the engine to
// drive it. Implementations are plain GORM models; the engine never
// learns their payload columns.
type Workflowable interface {
	WorkflowKind() Kind
	GetID() uuid.UUID
	GetInstitutionID() uuid.UUID
	GetAuthorTeacherID() uuid.UUID
	GetStatus() Status
	SetStatus(Status)
	SetReview(reviewerUserID uuid.UUID, note *string)

	// column names for the engine's scoped lookups
	IDColumn() string
	InstitutionColumn() string
}

// NewByKind returns an empty model for the given kind, or nil for an
// unknown one.
func NewByKind(kind Kind) Workflowable {
	switch kind {
	case KindCalendarEvent:
		return &CalendarEventModel{}
	case KindTeachingPlan:
		return &TeachingPlanModel{}
	case KindAssessment:
		return &AssessmentModel{}
	default:
		return nil
	}
}
