package dto

import (
	"time"

	"github.com/google/uuid"

	wfModel "academico_backend/internals/features/school/workflow/model"
	"academico_backend/internals/features/school/workflow/service"
)

// CreateDocumentRequest covers all three document kinds; the controller
// checks the kind-specific required fields after validation.
type CreateDocumentRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=160"`
	SubjectID   *uuid.UUID `json:"subject_id,omitempty"`
	Content     *string    `json:"content,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type TransitionRequest struct {
	Note string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

type DocumentResponse struct {
	Kind            wfModel.Kind   `json:"kind"`
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Status          wfModel.Status `json:"status"`
	AuthorTeacherID uuid.UUID      `json:"author_teacher_id"`
}

type ActionsResponse struct {
	Kind    wfModel.Kind     `json:"kind"`
	ID      uuid.UUID        `json:"id"`
	Status  wfModel.Status   `json:"status"`
	Actions []service.Action `json:"actions"`
}

func ToDocumentResponse(kind wfModel.Kind, w wfModel.Workflowable, title string) DocumentResponse {
	return DocumentResponse{
		Kind:            kind,
		ID:              w.GetID(),
		Title:           title,
		Status:          w.GetStatus(),
		AuthorTeacherID: w.GetAuthorTeacherID(),
	}
}
