package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeachingPlanModel struct {
	TeachingPlanID              uuid.UUID `json:"teaching_plan_id" gorm:"type:uuid;primaryKey;column:teaching_plan_id"`
	TeachingPlanInstitutionID   uuid.UUID `json:"teaching_plan_institution_id" gorm:"type:uuid;not null;index;column:teaching_plan_institution_id"`
	TeachingPlanAuthorTeacherID uuid.UUID `json:"teaching_plan_author_teacher_id" gorm:"type:uuid;not null;column:teaching_plan_author_teacher_id"`

	TeachingPlanSubjectID uuid.UUID `json:"teaching_plan_subject_id" gorm:"type:uuid;not null;column:teaching_plan_subject_id"`
	TeachingPlanTitle     string    `json:"teaching_plan_title" gorm:"type:varchar(160);not null;column:teaching_plan_title"`
	TeachingPlanContent   string    `json:"teaching_plan_content" gorm:"type:text;not null;column:teaching_plan_content"`

	TeachingPlanStatus         Status     `json:"teaching_plan_status" gorm:"type:varchar(20);not null;default:'draft';column:teaching_plan_status"`
	TeachingPlanReviewerUserID *uuid.UUID `json:"teaching_plan_reviewer_user_id,omitempty" gorm:"type:uuid;column:teaching_plan_reviewer_user_id"`
	TeachingPlanReviewNote     *string    `json:"teaching_plan_review_note,omitempty" gorm:"type:text;column:teaching_plan_review_note"`

	TeachingPlanCreatedAt time.Time      `json:"teaching_plan_created_at" gorm:"column:teaching_plan_created_at;autoCreateTime"`
	TeachingPlanUpdatedAt time.Time      `json:"teaching_plan_updated_at" gorm:"column:teaching_plan_updated_at;autoUpdateTime"`
	TeachingPlanDeletedAt gorm.DeletedAt `json:"teaching_plan_deleted_at,omitempty" gorm:"column:teaching_plan_deleted_at;index"`
}

func (TeachingPlanModel) TableName() string { return "teaching_plans" }

func (TeachingPlanModel) WorkflowKind() Kind                { return KindTeachingPlan }
func (m *TeachingPlanModel) GetID() uuid.UUID               { return m.TeachingPlanID }
func (m *TeachingPlanModel) GetInstitutionID() uuid.UUID    { return m.TeachingPlanInstitutionID }
func (m *TeachingPlanModel) GetAuthorTeacherID() uuid.UUID  { return m.TeachingPlanAuthorTeacherID }
func (m *TeachingPlanModel) GetStatus() Status              { return m.TeachingPlanStatus }
func (m *TeachingPlanModel) SetStatus(s Status)             { m.TeachingPlanStatus = s }
func (m *TeachingPlanModel) SetReview(reviewer uuid.UUID, note *string) {
	m.TeachingPlanReviewerUserID = &reviewer
	m.TeachingPlanReviewNote = note
}
func (TeachingPlanModel) IDColumn() string          { return "teaching_plan_id" }
func (TeachingPlanModel) InstitutionColumn() string { return "teaching_plan_institution_id" }
