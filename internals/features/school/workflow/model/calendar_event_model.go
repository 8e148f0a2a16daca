package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarEventModel struct {
	CalendarEventID              uuid.UUID `json:"calendar_event_id" gorm:"type:uuid;primaryKey;column:calendar_event_id"`
	CalendarEventInstitutionID   uuid.UUID `json:"calendar_event_institution_id" gorm:"type:uuid;not null;index;column:calendar_event_institution_id"`
	CalendarEventAuthorTeacherID uuid.UUID `json:"calendar_event_author_teacher_id" gorm:"type:uuid;not null;column:calendar_event_author_teacher_id"`

	CalendarEventTitle    string     `json:"calendar_event_title" gorm:"type:varchar(160);not null;column:calendar_event_title"`
	CalendarEventStartsAt time.Time  `json:"calendar_event_starts_at" gorm:"not null;column:calendar_event_starts_at"`
	CalendarEventEndsAt   *time.Time `json:"calendar_event_ends_at,omitempty" gorm:"column:calendar_event_ends_at"`

	CalendarEventStatus         Status     `json:"calendar_event_status" gorm:"type:varchar(20);not null;default:'draft';column:calendar_event_status"`
	CalendarEventReviewerUserID *uuid.UUID `json:"calendar_event_reviewer_user_id,omitempty" gorm:"type:uuid;column:calendar_event_reviewer_user_id"`
	CalendarEventReviewNote     *string    `json:"calendar_event_review_note,omitempty" gorm:"type:text;column:calendar_event_review_note"`

	CalendarEventCreatedAt time.Time      `json:"calendar_event_created_at" gorm:"column:calendar_event_created_at;autoCreateTime"`
	CalendarEventUpdatedAt time.Time      `json:"calendar_event_updated_at" gorm:"column:calendar_event_updated_at;autoUpdateTime"`
	CalendarEventDeletedAt gorm.DeletedAt `json:"calendar_event_deleted_at,omitempty" gorm:"column:calendar_event_deleted_at;index"`
}

func (CalendarEventModel) TableName() string { return "calendar_events" }

func (CalendarEventModel) WorkflowKind() Kind          { return KindCalendarEvent }
func (m *CalendarEventModel) GetID() uuid.UUID         { return m.CalendarEventID }
func (m *CalendarEventModel) GetInstitutionID() uuid.UUID { return m.CalendarEventInstitutionID }
func (m *CalendarEventModel) GetAuthorTeacherID() uuid.UUID { return m.CalendarEventAuthorTeacherID }
func (m *CalendarEventModel) GetStatus() Status        { return m.CalendarEventStatus }
func (m *CalendarEventModel) SetStatus(s Status)       { m.CalendarEventStatus = s }
func (m *CalendarEventModel) SetReview(reviewer uuid.UUID, note *string) {
	m.CalendarEventReviewerUserID = &reviewer
	m.CalendarEventReviewNote = note
}
func (CalendarEventModel) IDColumn() string          { return "calendar_event_id" }
func (CalendarEventModel) InstitutionColumn() string { return "calendar_event_institution_id" }
