package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	"academico_backend/internals/features/school/workflow/dto"
	wfModel "academico_backend/internals/features/school/workflow/model"
	wfService "academico_backend/internals/features/school/workflow/service"
	teacherService "academico_backend/internals/features/users/teachers/service"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

type WorkflowController struct {
	DB     *gorm.DB
	Sink   auditService.Sink
	engine *wfService.Engine
	valid  *validator.Validate
}

func NewWorkflowController(db *gorm.DB, sink auditService.Sink) *WorkflowController {
	return &WorkflowController{
		DB:     db,
		Sink:   sink,
		engine: wfService.NewEngine(db, sink),
		valid:  validator.New(),
	}
}

// kindFromParam accepts both "teaching_plan" and "teaching-plan".
func kindFromParam(raw string) (wfModel.Kind, bool) {
	k := wfModel.Kind(strings.ReplaceAll(strings.ToLower(raw), "-", "_"))
	switch k {
	case wfModel.KindCalendarEvent, wfModel.KindTeachingPlan, wfModel.KindAssessment:
		return k, true
	}
	return "", false
}

// actor resolves the caller's teacher identity within the active scope.
// A transition is a teaching action, so the same resolution rules apply
// as everywhere else (including admin auto-provision).
func (ctrl *WorkflowController) actor(c *fiber.Ctx, scope helperAuth.Scope) (wfService.Actor, error) {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return wfService.Actor{}, helper.NewDomainError(helper.CodeUnscopedPrincipal, "Missing user identity in token")
	}
	roles := helperAuth.RolesInInstitution(c, scope.InstitutionID)
	if scope.SuperOperator {
		// platform operators act with administrative capability in the
		// targeted institution
		roles = append(roles, constants.RoleAdmin)
	}

	entity, _, err := teacherService.Resolve(c.UserContext(), ctrl.DB, ctrl.Sink, userID, scope.InstitutionID, roles)
	if err != nil {
		return wfService.Actor{}, err
	}
	return wfService.Actor{
		UserID:          userID,
		TeacherEntityID: entity.TeacherEntityID,
		Roles:           roles,
	}, nil
}

// Create inserts a draft document of the given kind authored by the caller.
func (ctrl *WorkflowController) Create(c *fiber.Ctx) error {
	kind, ok := kindFromParam(c.Params("kind"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown document kind")
	}

	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.CreateDocumentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.valid.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actor, err := ctrl.actor(c, scope)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	entity, err := buildDocument(kind, scope.InstitutionID, actor.TeacherEntityID, body)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(entity).Error; err != nil {
		log.Printf("[ERROR] create %s failed: %v", kind, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create document")
	}

	ctrl.Sink.Record(c.UserContext(), auditService.Event{
		Module:        "workflow",
		Entity:        string(kind),
		EntityID:      entity.GetID(),
		ActorID:       actor.UserID,
		InstitutionID: scope.InstitutionID,
		After:         entity,
		Note:          "document created as draft",
	})

	return helper.JsonCreated(c, "Document created", dto.ToDocumentResponse(kind, entity, body.Title))
}

// List returns the scope's documents of one kind, paginated.
func (ctrl *WorkflowController) List(c *fiber.Ctx) error {
	kind, ok := kindFromParam(c.Params("kind"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown document kind")
	}

	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	probe := wfModel.NewByKind(kind)

	base := func() *gorm.DB {
		return scope.Where(ctrl.DB.WithContext(c.UserContext()).Model(wfModel.NewByKind(kind)), probe.InstitutionColumn())
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		log.Printf("[ERROR] count %s failed: %v", kind, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list documents")
	}

	rows, err := listRows(base().Offset(paging.Offset).Limit(paging.PerPage), kind)
	if err != nil {
		log.Printf("[ERROR] list %s failed: %v", kind, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list documents")
	}

	return helper.JsonList(c, "Document list", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// Transition applies one FSM action (submit, approve, reject, lock, resave).
func (ctrl *WorkflowController) Transition(c *fiber.Ctx) error {
	kind, ok := kindFromParam(c.Params("kind"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown document kind")
	}
	entityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid document id")
	}
	action := wfService.Action(c.Params("action"))

	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	if err := helperAuth.RejectBodyInstitutionID(c); err != nil {
		return helper.JsonDomainError(c, err)
	}

	var body dto.TransitionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if err := ctrl.valid.Struct(body); err != nil {
			return helper.JsonValidationError(c, err)
		}
	}

	actor, err := ctrl.actor(c, scope)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	result, err := ctrl.engine.Transition(c.UserContext(), scope, kind, entityID, action, actor, body.Note)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Document not found")
		}
		if _, ok := helper.AsDomainError(err); ok {
			return helper.JsonDomainError(c, err)
		}
		log.Printf("[ERROR] workflow %s %s failed: %v", action, kind, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to apply workflow action")
	}

	return helper.JsonOK(c, "Workflow action applied", result)
}

// Actions answers "what can I do with this document right now".
func (ctrl *WorkflowController) Actions(c *fiber.Ctx) error {
	kind, ok := kindFromParam(c.Params("kind"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown document kind")
	}
	entityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid document id")
	}

	scope, err := helperAuth.ResolveScope(c)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	actor, err := ctrl.actor(c, scope)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}

	actions, status, err := ctrl.engine.AvailableActions(c.UserContext(), scope, kind, entityID, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Document not found")
		}
		if _, ok := helper.AsDomainError(err); ok {
			return helper.JsonDomainError(c, err)
		}
		log.Printf("[ERROR] workflow actions lookup failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve workflow actions")
	}

	return helper.JsonOK(c, "Available actions", dto.ActionsResponse{
		Kind:    kind,
		ID:      entityID,
		Status:  status,
		Actions: actions,
	})
}

func listRows(q *gorm.DB, kind wfModel.Kind) (any, error) {
	switch kind {
	case wfModel.KindCalendarEvent:
		var rows []wfModel.CalendarEventModel
		return rows, q.Find(&rows).Error
	case wfModel.KindTeachingPlan:
		var rows []wfModel.TeachingPlanModel
		return rows, q.Find(&rows).Error
	default:
		var rows []wfModel.AssessmentModel
		return rows, q.Find(&rows).Error
	}
}

func buildDocument(kind wfModel.Kind, institutionID, authorTeacherID uuid.UUID, body dto.CreateDocumentRequest) (wfModel.Workflowable, error) {
	switch kind {
	case wfModel.KindCalendarEvent:
		if body.StartsAt == nil {
			return nil, errors.New("starts_at is required for a calendar event")
		}
		return &wfModel.CalendarEventModel{
			CalendarEventID:              uuid.New(),
			CalendarEventInstitutionID:   institutionID,
			CalendarEventAuthorTeacherID: authorTeacherID,
			CalendarEventTitle:           strings.TrimSpace(body.Title),
			CalendarEventStartsAt:        *body.StartsAt,
			CalendarEventEndsAt:          body.EndsAt,
			CalendarEventStatus:          wfModel.StatusDraft,
		}, nil
	case wfModel.KindTeachingPlan:
		if body.SubjectID == nil {
			return nil, errors.New("subject_id is required for a teaching plan")
		}
		if body.Content == nil || strings.TrimSpace(*body.Content) == "" {
			return nil, errors.New("content is required for a teaching plan")
		}
		return &wfModel.TeachingPlanModel{
			TeachingPlanID:              uuid.New(),
			TeachingPlanInstitutionID:   institutionID,
			TeachingPlanAuthorTeacherID: authorTeacherID,
			TeachingPlanSubjectID:       *body.SubjectID,
			TeachingPlanTitle:           strings.TrimSpace(body.Title),
			TeachingPlanContent:         strings.TrimSpace(*body.Content),
			TeachingPlanStatus:          wfModel.StatusDraft,
		}, nil
	default:
		if body.SubjectID == nil {
			return nil, errors.New("subject_id is required for an assessment")
		}
		return &wfModel.AssessmentModel{
			AssessmentID:              uuid.New(),
			AssessmentInstitutionID:   institutionID,
			AssessmentAuthorTeacherID: authorTeacherID,
			AssessmentSubjectID:       *body.SubjectID,
			AssessmentTitle:           strings.TrimSpace(body.Title),
			AssessmentScheduledAt:     body.ScheduledAt,
			AssessmentStatus:          wfModel.StatusDraft,
		}, nil
	}
}
