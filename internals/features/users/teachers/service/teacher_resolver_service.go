package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	teacherModel "academico_backend/internals/features/users/teachers/model"
	helper "academico_backend/internals/helpers"
)

// Resolution reports what Resolve did besides returning the row, so
// callers and tests can distinguish "right entity returned" from "a new
// entity was created".
type Resolution struct {
	Created           bool
	TenantDiscrepancy bool
	DiscrepancyTenant uuid.UUID // declared tenant that did not match, when TenantDiscrepancy
}

// Resolve maps an authenticated user to their TeacherEntity within the
// declared institution.
//
//  1. exact (user, institution) match wins;
//  2. a single row for the user under another institution is returned
//     with a recorded discrepancy (accounts that predate a tenant
//     reassignment); multiple rows with no exact match are ambiguous;
//  3. a user holding the teacher role is auto-provisioned, idempotently;
//  4. everyone else fails, with a distinct message for administrators.
func Resolve(
	ctx context.Context,
	tx *gorm.DB,
	sink auditService.Sink,
	userID, institutionID uuid.UUID,
	roles []string,
) (*teacherModel.TeacherEntityModel, Resolution, error) {
	if userID == uuid.Nil {
		return nil, Resolution{}, helper.NewDomainError(helper.CodeTeacherEntityNotFound, "user id is required")
	}

	// 1) exact pair
	var exact teacherModel.TeacherEntityModel
	err := tx.WithContext(ctx).
		Where("teacher_entity_user_id = ? AND teacher_entity_institution_id = ?", userID, institutionID).
		First(&exact).Error
	if err == nil {
		return &exact, Resolution{}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Resolution{}, err
	}

	// 2) user-wide lookup, tenant ignored
	var all []teacherModel.TeacherEntityModel
	if err := tx.WithContext(ctx).
		Where("teacher_entity_user_id = ?", userID).
		Find(&all).Error; err != nil {
		return nil, Resolution{}, err
	}
	if len(all) == 1 {
		res := Resolution{TenantDiscrepancy: true, DiscrepancyTenant: institutionID}
		sink.Record(ctx, auditService.Event{
			Module:        "teachers",
			Entity:        "teacher_entity",
			EntityID:      all[0].TeacherEntityID,
			ActorID:       userID,
			InstitutionID: all[0].TeacherEntityInstitutionID,
			Note:          "resolved with tenant discrepancy: declared institution " + institutionID.String() + " did not match",
		})
		return &all[0], res, nil
	}
	if len(all) > 1 {
		// an exact match would have been caught in step 1
		return nil, Resolution{}, helper.NewDomainError(helper.CodeAmbiguousIdentity,
			"user has teacher entities in multiple institutions and none matches the declared one")
	}

	// 3) safety net: auto-provision for teacher-role holders
	if constants.HasAnyRole(roles, []string{constants.RoleTeacher}) && institutionID != uuid.Nil {
		row, created, err := provision(ctx, tx, userID, institutionID)
		if err != nil {
			return nil, Resolution{}, err
		}
		if created {
			sink.Record(ctx, auditService.Event{
				Module:        "teachers",
				Entity:        "teacher_entity",
				EntityID:      row.TeacherEntityID,
				ActorID:       userID,
				InstitutionID: institutionID,
				After:         row,
				Note:          "teacher entity auto-provisioned",
			})
		}
		return row, Resolution{Created: created}, nil
	}

	// 4) nothing to return
	if constants.HasAnyRole(roles, constants.AdminAndAbove) {
		return nil, Resolution{}, helper.NewDomainError(helper.CodeTeacherEntityNotFound,
			"even administrators must have a teacher entity to perform teaching actions")
	}
	return nil, Resolution{}, helper.NewDomainError(helper.CodeTeacherEntityNotFound,
		"no teacher entity exists for this user in this institution")
}

// provision inserts the (user, institution) row, tolerating a concurrent
// duplicate: the unique index makes the insert a no-op for the loser,
// who then re-reads the winner's row. One retry, then fail.
func provision(ctx context.Context, tx *gorm.DB, userID, institutionID uuid.UUID) (*teacherModel.TeacherEntityModel, bool, error) {
	row := teacherModel.TeacherEntityModel{
		TeacherEntityID:            uuid.New(),
		TeacherEntityUserID:        userID,
		TeacherEntityInstitutionID: institutionID,
		TeacherEntityIsActive:      true,
	}

	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "teacher_entity_user_id"}, {Name: "teacher_entity_institution_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return &row, true, nil
	}

	// lost the race: the winner's row must exist now
	var winner teacherModel.TeacherEntityModel
	err := tx.WithContext(ctx).
		Where("teacher_entity_user_id = ? AND teacher_entity_institution_id = ?", userID, institutionID).
		First(&winner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, helper.NewDomainError(helper.CodeTeacherEntityNotFound,
				"teacher entity provisioning raced and the winning row could not be read")
		}
		return nil, false, err
	}
	return &winner, false, nil
}

// ValidateAgainstToken re-derives a TeacherEntity strictly by the triple
// (entity id, user id, institution id). A token claim that does not match
// storage exactly yields nil; claims are hints, never authority.
func ValidateAgainstToken(ctx context.Context, tx *gorm.DB, teacherEntityID, userID, institutionID uuid.UUID) (*teacherModel.TeacherEntityModel, error) {
	if teacherEntityID == uuid.Nil || userID == uuid.Nil || institutionID == uuid.Nil {
		return nil, nil
	}
	var row teacherModel.TeacherEntityModel
	err := tx.WithContext(ctx).
		Where("teacher_entity_id = ? AND teacher_entity_user_id = ? AND teacher_entity_institution_id = ?",
			teacherEntityID, userID, institutionID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
