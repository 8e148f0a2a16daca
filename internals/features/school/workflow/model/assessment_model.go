package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentModel struct {
	AssessmentID              uuid.UUID `json:"assessment_id" gorm:"type:uuid;primaryKey;column:assessment_id"`
	AssessmentInstitutionID   uuid.UUID `json:"assessment_institution_id" gorm:"type:uuid;not null;index;column:assessment_institution_id"`
	AssessmentAuthorTeacherID uuid.UUID `json:"assessment_author_teacher_id" gorm:"type:uuid;not null;column:assessment_author_teacher_id"`

	AssessmentSubjectID   uuid.UUID  `json:"assessment_subject_id" gorm:"type:uuid;not null;column:assessment_subject_id"`
	AssessmentTitle       string     `json:"assessment_title" gorm:"type:varchar(160);not null;column:assessment_title"`
	AssessmentScheduledAt *time.Time `json:"assessment_scheduled_at,omitempty" gorm:"column:assessment_scheduled_at"`

	AssessmentStatus         Status     `json:"assessment_status" gorm:"type:varchar(20);not null;default:'draft';column:assessment_status"`
	AssessmentReviewerUserID *uuid.UUID `json:"assessment_reviewer_user_id,omitempty" gorm:"type:uuid;column:assessment_reviewer_user_id"`
	AssessmentReviewNote     *string    `json:"assessment_review_note,omitempty" gorm:"type:text;column:assessment_review_note"`

	AssessmentCreatedAt time.Time      `json:"assessment_created_at" gorm:"column:assessment_created_at;autoCreateTime"`
	AssessmentUpdatedAt time.Time      `json:"assessment_updated_at" gorm:"column:assessment_updated_at;autoUpdateTime"`
	AssessmentDeletedAt gorm.DeletedAt `json:"assessment_deleted_at,omitempty" gorm:"column:assessment_deleted_at;index"`
}

func (AssessmentModel) TableName() string { return "assessments" }

func (AssessmentModel) WorkflowKind() Kind               { return KindAssessment }
func (m *AssessmentModel) GetID() uuid.UUID              { return m.AssessmentID }
func (m *AssessmentModel) GetInstitutionID() uuid.UUID   { return m.AssessmentInstitutionID }
func (m *AssessmentModel) GetAuthorTeacherID() uuid.UUID { return m.AssessmentAuthorTeacherID }
func (m *AssessmentModel) GetStatus() Status             { return m.AssessmentStatus }
func (m *AssessmentModel) SetStatus(s Status)            { m.AssessmentStatus = s }
func (m *AssessmentModel) SetReview(reviewer uuid.UUID, note *string) {
	m.AssessmentReviewerUserID = &reviewer
	m.AssessmentReviewNote = note
}
func (AssessmentModel) IDColumn() string          { return "assessment_id" }
func (AssessmentModel) InstitutionColumn() string { return "assessment_institution_id" }
