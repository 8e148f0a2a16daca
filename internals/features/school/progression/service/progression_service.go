package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	instModel "academico_backend/internals/features/institutions/model"
	instService "academico_backend/internals/features/institutions/service"
	academicsModel "academico_backend/internals/features/school/academics/model"
	enrollModel "academico_backend/internals/features/school/enrollments/model"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

/* ===============================
   Year-end status
=================================*/

type YearEndStatus struct {
	Status      enrollModel.FinalStatus `json:"status"`
	FailedCount int                     `json:"failed_count"`
	TotalCount  int                     `json:"total_count"`
	Tolerance   int                     `json:"tolerance"`
}

// ComputeYearEndStatus evaluates a student's year against the scoped
// institution's tolerance. No evaluable outcome rows means FAILED:
// progression is never granted on an empty record.
func ComputeYearEndStatus(ctx context.Context, tx *gorm.DB, scope helperAuth.Scope, studentID, academicYearID uuid.UUID) (YearEndStatus, error) {
	settings, err := instService.ResolveProgressionSettings(ctx, tx, scope)
	if err != nil {
		return YearEndStatus{}, err
	}

	var outcomes []enrollModel.SubjectOutcomeModel
	if err := scope.Where(tx.WithContext(ctx), "subject_outcome_institution_id").
		Where("subject_outcome_student_id = ? AND subject_outcome_academic_year_id = ?", studentID, academicYearID).
		Find(&outcomes).Error; err != nil {
		return YearEndStatus{}, err
	}

	out := YearEndStatus{Tolerance: settings.MaxFailedSubjects, TotalCount: len(outcomes)}
	if len(outcomes) == 0 {
		out.Status = enrollModel.FinalStatusFailed
		return out, nil
	}

	for _, o := range outcomes {
		if o.SubjectOutcomeSituation.CountsAsFailed() {
			out.FailedCount++
		}
	}
	if out.FailedCount <= out.Tolerance {
		out.Status = enrollModel.FinalStatusApproved
	} else {
		out.Status = enrollModel.FinalStatusFailed
	}
	return out, nil
}

// FinalizeYearEndStatus computes and persists the final status inside one
// transaction, so a concurrent reader never sees a half-finalized
// enrollment. A status that is already set is returned untouched; undoing
// it is the administrative correction path's job.
func FinalizeYearEndStatus(
	ctx context.Context,
	db *gorm.DB,
	scope helperAuth.Scope,
	sink auditService.Sink,
	actorID, studentID, academicYearID uuid.UUID,
) (YearEndStatus, error) {
	var result YearEndStatus

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enrollment enrollModel.YearlyEnrollmentModel
		if err := scope.Where(tx, "yearly_enrollment_institution_id").
			Where("yearly_enrollment_student_id = ? AND yearly_enrollment_academic_year_id = ?", studentID, academicYearID).
			First(&enrollment).Error; err != nil {
			return err
		}

		computed, err := ComputeYearEndStatus(ctx, tx, scope, studentID, academicYearID)
		if err != nil {
			return err
		}
		result = computed

		if enrollment.YearlyEnrollmentFinalStatus != nil {
			result.Status = *enrollment.YearlyEnrollmentFinalStatus
			return nil
		}

		before := enrollment
		status := computed.Status
		enrollment.YearlyEnrollmentFinalStatus = &status
		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}

		sink.Record(ctx, auditService.Event{
			Module:        "progression",
			Entity:        "yearly_enrollment",
			EntityID:      enrollment.YearlyEnrollmentID,
			ActorID:       actorID,
			InstitutionID: scope.InstitutionID,
			Before:        before,
			After:         enrollment,
			Note:          "year-end status finalized",
		})
		return nil
	})
	return result, err
}

/* ===============================
   Next placement
=================================*/

type PlacementSuggestion struct {
	Label        string     `json:"label"`
	ClassLevelID *uuid.UUID `json:"class_level_id,omitempty"`
}

// SuggestNextPlacement proposes where the student goes next. Every path
// that cannot prove an advancement falls back to the unchanged prior
// placement; the engine never invents a policy.
func SuggestNextPlacement(
	ctx context.Context,
	tx *gorm.DB,
	scope helperAuth.Scope,
	prior enrollModel.YearlyEnrollmentModel,
	status enrollModel.FinalStatus,
	model instModel.AcademicModel,
) (PlacementSuggestion, error) {
	unchanged := PlacementSuggestion{
		Label:        prior.YearlyEnrollmentPlacementLabel,
		ClassLevelID: prior.YearlyEnrollmentClassLevelID,
	}

	if status != enrollModel.FinalStatusApproved {
		return unchanged, nil
	}

	switch model {
	case instModel.AcademicModelSecondary:
		ordinal, ok, err := resolveSecondaryOrdinal(ctx, tx, scope, prior)
		if err != nil {
			return PlacementSuggestion{}, err
		}
		if !ok {
			return unchanged, nil
		}

		var next academicsModel.ClassLevelModel
		err = scope.Where(tx.WithContext(ctx), "class_level_institution_id").
			Where("class_level_ordinal = ?", ordinal+1).
			First(&next).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// top of the ladder
				return unchanged, nil
			}
			return PlacementSuggestion{}, err
		}
		id := next.ClassLevelID
		return PlacementSuggestion{Label: next.ClassLevelName, ClassLevelID: &id}, nil

	case instModel.AcademicModelHigher:
		year, ok := ParsePlacementOrdinal(prior.YearlyEnrollmentPlacementLabel, model)
		if !ok || year >= maxHigherYear {
			return unchanged, nil
		}
		return PlacementSuggestion{Label: FormatYearLabel(year + 1)}, nil

	default:
		return unchanged, nil
	}
}

// resolveSecondaryOrdinal prefers the structured class-level link and
// falls back to parsing the stored label.
func resolveSecondaryOrdinal(ctx context.Context, tx *gorm.DB, scope helperAuth.Scope, e enrollModel.YearlyEnrollmentModel) (int, bool, error) {
	if e.YearlyEnrollmentClassLevelID != nil {
		var level academicsModel.ClassLevelModel
		err := scope.Where(tx.WithContext(ctx), "class_level_institution_id").
			Where("class_level_id = ?", *e.YearlyEnrollmentClassLevelID).
			First(&level).Error
		if err == nil {
			return level.ClassLevelOrdinal, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, err
		}
	}
	n, ok := ParsePlacementOrdinal(e.YearlyEnrollmentPlacementLabel, instModel.AcademicModelSecondary)
	return n, ok, nil
}

/* ===============================
   New-enrollment validation
=================================*/

type ValidateEnrollmentInput struct {
	StudentID               uuid.UUID
	RequestedPlacementLabel string
	RequestedClassLevelID   *uuid.UUID
	CourseID                uuid.UUID
	CallerRoles             []string
	OverrideRequested       bool
	ReferenceYearNumber     *int
}

type EnrollmentDecision struct {
	Allowed           bool   `json:"allowed"`
	Reason            string `json:"reason,omitempty"`
	OverrideAvailable bool   `json:"override_available"`
	OverrideApplied   bool   `json:"override_applied"`
}

// ValidateNewEnrollment enforces the failed-year advancement gate.
// Parsing failures on either side default to allow: the gate only fires
// when the progression math is unambiguous, so malformed historical data
// never produces a false block.
func ValidateNewEnrollment(ctx context.Context, tx *gorm.DB, scope helperAuth.Scope, in ValidateEnrollmentInput) (EnrollmentDecision, error) {
	reference, err := findReferenceEnrollment(ctx, tx, scope, in.StudentID, in.ReferenceYearNumber)
	if err != nil {
		return EnrollmentDecision{}, err
	}
	if reference == nil {
		// no history to block against
		return EnrollmentDecision{Allowed: true}, nil
	}

	if reference.YearlyEnrollmentFinalStatus == nil ||
		*reference.YearlyEnrollmentFinalStatus != enrollModel.FinalStatusFailed {
		return EnrollmentDecision{Allowed: true}, nil
	}

	model, err := instService.ResolveAcademicModel(ctx, tx, scope)
	if err != nil {
		return EnrollmentDecision{}, err
	}

	requestedOrdinal, refOrdinal, comparable, err := compareOrdinals(ctx, tx, scope, model, in, *reference)
	if err != nil {
		return EnrollmentDecision{}, err
	}
	if !comparable || requestedOrdinal <= refOrdinal {
		// repeating or lateral placement is always permitted
		return EnrollmentDecision{Allowed: true}, nil
	}

	// advancement attempt following a failed year
	settings, err := instService.ResolveProgressionSettings(ctx, tx, scope)
	if err != nil {
		return EnrollmentDecision{}, err
	}

	isAdmin := constants.HasAnyRole(in.CallerRoles, constants.AdministrativeRoles)
	if isAdmin && settings.AllowOverride && in.OverrideRequested {
		return EnrollmentDecision{Allowed: true, OverrideAvailable: true, OverrideApplied: true}, nil
	}

	unit := "year"
	if model == instModel.AcademicModelSecondary {
		unit = "class"
	}
	return EnrollmentDecision{
		Allowed:           false,
		Reason:            "student failed the reference " + unit + " and the requested placement is ahead of it; advancement requires an administrative override",
		OverrideAvailable: settings.AllowOverride,
	}, nil
}

// findReferenceEnrollment locates the prior enrollment to measure the
// request against: year N-1 when a reference year is given, otherwise the
// student's most recent enrollment in the institution.
func findReferenceEnrollment(ctx context.Context, tx *gorm.DB, scope helperAuth.Scope, studentID uuid.UUID, referenceYearNumber *int) (*enrollModel.YearlyEnrollmentModel, error) {
	q := scope.Where(tx.WithContext(ctx), "yearly_enrollment_institution_id").
		Where("yearly_enrollment_student_id = ?", studentID)

	if referenceYearNumber != nil {
		var year academicsModel.AcademicYearModel
		err := scope.Where(tx.WithContext(ctx), "academic_year_institution_id").
			Where("academic_year_number = ?", *referenceYearNumber-1).
			First(&year).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
		q = q.Where("yearly_enrollment_academic_year_id = ?", year.AcademicYearID)
	}

	var rows []enrollModel.YearlyEnrollmentModel
	if err := q.Order("yearly_enrollment_created_at DESC").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// compareOrdinals resolves both sides of the advancement comparison.
// comparable is false whenever either side cannot be resolved.
func compareOrdinals(
	ctx context.Context,
	tx *gorm.DB,
	scope helperAuth.Scope,
	model instModel.AcademicModel,
	in ValidateEnrollmentInput,
	reference enrollModel.YearlyEnrollmentModel,
) (requested, ref int, comparable bool, err error) {
	switch model {
	case instModel.AcademicModelSecondary:
		requestedEnrollment := enrollModel.YearlyEnrollmentModel{
			YearlyEnrollmentPlacementLabel: in.RequestedPlacementLabel,
			YearlyEnrollmentClassLevelID:   in.RequestedClassLevelID,
		}
		var ok bool
		requested, ok, err = resolveSecondaryOrdinal(ctx, tx, scope, requestedEnrollment)
		if err != nil || !ok {
			return 0, 0, false, err
		}
		ref, ok, err = resolveSecondaryOrdinal(ctx, tx, scope, reference)
		if err != nil || !ok {
			return 0, 0, false, err
		}
		return requested, ref, true, nil

	case instModel.AcademicModelHigher:
		requested, okReq := ParsePlacementOrdinal(in.RequestedPlacementLabel, model)
		ref, okRef := ParsePlacementOrdinal(reference.YearlyEnrollmentPlacementLabel, model)
		if !okReq || !okRef {
			return 0, 0, false, nil
		}
		return requested, ref, true, nil

	default:
		return 0, 0, false, nil
	}
}

/* ===============================
   Administrative correction
=================================*/

// CorrectFinalStatus re-opens an already finalized enrollment. It exists
// because the final status is otherwise immutable; the caller must be an
// administrator (gated at the route) and the note is mandatory.
func CorrectFinalStatus(
	ctx context.Context,
	db *gorm.DB,
	scope helperAuth.Scope,
	sink auditService.Sink,
	actorID, enrollmentID uuid.UUID,
	newStatus enrollModel.FinalStatus,
	note string,
) (*enrollModel.YearlyEnrollmentModel, error) {
	if note == "" {
		return nil, helper.NewDomainError(helper.CodeProgressionBlocked,
			"a correction note is mandatory when overriding a final status")
	}

	var corrected *enrollModel.YearlyEnrollmentModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enrollment enrollModel.YearlyEnrollmentModel
		if err := scope.Where(tx, "yearly_enrollment_institution_id").
			Where("yearly_enrollment_id = ?", enrollmentID).
			First(&enrollment).Error; err != nil {
			return err
		}

		before := enrollment
		status := newStatus
		enrollment.YearlyEnrollmentFinalStatus = &status
		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}

		sink.Record(ctx, auditService.Event{
			Module:        "progression",
			Entity:        "yearly_enrollment",
			EntityID:      enrollment.YearlyEnrollmentID,
			ActorID:       actorID,
			InstitutionID: scope.InstitutionID,
			Before:        before,
			After:         enrollment,
			Note:          "administrative final-status correction: " + note,
		})
		corrected = &enrollment
		return nil
	})
	return corrected, err
}
