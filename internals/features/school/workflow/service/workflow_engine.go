package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academico_backend/internals/constants"
	auditService "academico_backend/internals/features/audit/service"
	wfModel "academico_backend/internals/features/school/workflow/model"
	helper "academico_backend/internals/helpers"
	helperAuth "academico_backend/internals/helpers/auth"
)

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionLock    Action = "lock"
	ActionResave  Action = "resave"
)

// rule is one row of the transition table. authorOnly additionally
// requires the acting teacher to be the document's author, unless the
// actor holds an approver-capable role.
type rule struct {
	from        wfModel.Status
	to          wfModel.Status
	capability  []string
	requireNote bool
	authorOnly  bool
}

// transitions is the whole lifecycle. Locked appears in no rule's `from`,
// which is what makes it terminal.
var transitions = map[Action]rule{
	ActionSubmit:  {from: wfModel.StatusDraft, to: wfModel.StatusSubmitted, capability: constants.AuthorCapable, authorOnly: true},
	ActionApprove: {from: wfModel.StatusSubmitted, to: wfModel.StatusApproved, capability: constants.ApproverCapable},
	ActionReject:  {from: wfModel.StatusSubmitted, to: wfModel.StatusRejected, capability: constants.ApproverCapable, requireNote: true},
	ActionLock:    {from: wfModel.StatusApproved, to: wfModel.StatusLocked, capability: constants.AdministrativeRoles},
	ActionResave:  {from: wfModel.StatusRejected, to: wfModel.StatusDraft, capability: constants.AuthorCapable, authorOnly: true},
}

// Actor is the transition caller, already resolved by the controller.
type Actor struct {
	UserID          uuid.UUID
	TeacherEntityID uuid.UUID
	Roles           []string
}

type TransitionResult struct {
	Kind   wfModel.Kind   `json:"kind"`
	ID     uuid.UUID      `json:"id"`
	From   wfModel.Status `json:"from"`
	To     wfModel.Status `json:"to"`
	Action Action         `json:"action"`
}

type Engine struct {
	DB   *gorm.DB
	Sink auditService.Sink
}

func NewEngine(db *gorm.DB, sink auditService.Sink) *Engine {
	return &Engine{DB: db, Sink: sink}
}

// Transition applies one action to one document. Every precondition is
// checked before any state change; the write and its audit record happen
// inside one transaction scope-checked load.
func (e *Engine) Transition(
	ctx context.Context,
	scope helperAuth.Scope,
	kind wfModel.Kind,
	entityID uuid.UUID,
	action Action,
	actor Actor,
	note string,
) (*TransitionResult, error) {
	r, ok := transitions[action]
	if !ok {
		return nil, helper.NewDomainError(helper.CodeInvalidTransition,
			"unknown workflow action "+string(action))
	}
	note = strings.TrimSpace(note)
	if r.requireNote && note == "" {
		return nil, helper.NewDomainError(helper.CodeInvalidTransition,
			"a reason is mandatory when rejecting a document")
	}

	var result *TransitionResult
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity, err := e.load(ctx, tx, scope, kind, entityID)
		if err != nil {
			return err
		}

		current := entity.GetStatus()
		if current != r.from {
			return helper.NewDomainError(helper.CodeInvalidTransition,
				"cannot "+string(action)+" a "+string(kind)+" in state "+string(current))
		}

		if !constants.HasAnyRole(actor.Roles, r.capability) {
			return helper.NewDomainError(helper.CodeForbidden,
				"your roles do not permit the "+string(action)+" action")
		}
		if r.authorOnly &&
			!constants.HasAnyRole(actor.Roles, constants.ApproverCapable) &&
			entity.GetAuthorTeacherID() != actor.TeacherEntityID {
			return helper.NewDomainError(helper.CodeForbidden,
				"only the document's author may "+string(action)+" it")
		}

		before := snapshot(entity)
		entity.SetStatus(r.to)
		if action == ActionApprove || action == ActionReject || action == ActionLock {
			var reviewNote *string
			if note != "" {
				reviewNote = &note
			}
			entity.SetReview(actor.UserID, reviewNote)
		}

		if err := tx.Save(entity).Error; err != nil {
			return err
		}

		e.Sink.Record(ctx, auditService.Event{
			Module:        "workflow",
			Entity:        string(kind),
			EntityID:      entityID,
			ActorID:       actor.UserID,
			InstitutionID: scope.InstitutionID,
			Before:        before,
			After:         snapshot(entity),
			Note:          note,
		})

		result = &TransitionResult{Kind: kind, ID: entityID, From: current, To: r.to, Action: action}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AvailableActions lists what the actor could do to the document right
// now. An empty list is a normal answer (e.g. viewing an approved
// document), not an authorization failure.
func (e *Engine) AvailableActions(
	ctx context.Context,
	scope helperAuth.Scope,
	kind wfModel.Kind,
	entityID uuid.UUID,
	actor Actor,
) ([]Action, wfModel.Status, error) {
	entity, err := e.load(ctx, e.DB, scope, kind, entityID)
	if err != nil {
		return nil, "", err
	}

	current := entity.GetStatus()
	out := []Action{}
	for _, action := range []Action{ActionSubmit, ActionApprove, ActionReject, ActionLock, ActionResave} {
		r := transitions[action]
		if r.from != current {
			continue
		}
		if !constants.HasAnyRole(actor.Roles, r.capability) {
			continue
		}
		if r.authorOnly &&
			!constants.HasAnyRole(actor.Roles, constants.ApproverCapable) &&
			entity.GetAuthorTeacherID() != actor.TeacherEntityID {
			continue
		}
		out = append(out, action)
	}
	return out, current, nil
}

func (e *Engine) load(ctx context.Context, tx *gorm.DB, scope helperAuth.Scope, kind wfModel.Kind, entityID uuid.UUID) (wfModel.Workflowable, error) {
	entity := wfModel.NewByKind(kind)
	if entity == nil {
		return nil, helper.NewDomainError(helper.CodeInvalidTransition, "unknown document kind "+string(kind))
	}

	err := scope.Where(tx.WithContext(ctx), entity.InstitutionColumn()).
		Where(entity.IDColumn()+" = ?", entityID).
		First(entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// not found and cross-tenant look identical on purpose
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return entity, nil
}

func snapshot(w wfModel.Workflowable) map[string]any {
	return map[string]any{
		"kind":   w.WorkflowKind(),
		"id":     w.GetID(),
		"status": w.GetStatus(),
	}
}
