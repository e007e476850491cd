package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/floodops/pafs/modules/accounts/domain/account"
	"github.com/floodops/pafs/modules/areas/domain/area"
	areaservices "github.com/floodops/pafs/modules/areas/services"
	"github.com/floodops/pafs/modules/projects/domain/project"
	"github.com/floodops/pafs/pkg/serrors"
)

const (
	CodeProjectNotFound  = "PROJECT_NOT_FOUND"
	CodeProjectNameTaken = "PROJECT_NAME_TAKEN"
	CodeForbidden        = "PROJECT_FORBIDDEN"
	CodeAreaChangeAdmin  = "PROJECT_AREA_CHANGE_ADMIN_ONLY"
	CodeAreaNotAllowed   = "AREA_NOT_ALLOWED"
	CodeRFCCUnresolvable = "RFCC_UNRESOLVABLE"
	CodeYearsOutOfOrder  = "FINANCIAL_YEARS_OUT_OF_ORDER"
	CodeAreaIDInvalid    = "AREA_ID_INVALID"
)

// ValidationContext is the success envelope of a validation pass. Area and
// RFCCCode are populated only when freshly computed in that pass (creation
// or an area change); callers must not assume they are always present.
type ValidationContext struct {
	Area     *area.WithParents
	RFCCCode string
	Existing *project.Project
}

// ValidationPipeline orchestrates existence, authorization, common-field,
// area and timeline checks for the multi-step save flow, short-circuiting
// at the first failing step. It never writes; the storage layer's unique
// constraints remain the authoritative guard against check-then-persist
// races.
type ValidationPipeline struct {
	areas    *areaservices.AreaHierarchyService
	projects project.Repository
}

func NewValidationPipeline(areas *areaservices.AreaHierarchyService, projects project.Repository) *ValidationPipeline {
	return &ValidationPipeline{areas: areas, projects: projects}
}

func (p *ValidationPipeline) Validate(ctx context.Context, payload project.Payload, principal account.Account, level project.Level) (*ValidationContext, error) {
	ref, _ := payload.String(project.FieldReferenceNumber)
	isCreate := ref == ""

	vc := &ValidationContext{}

	if !isCreate {
		existing, err := p.projects.GetByReferenceNumber(ctx, ref)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, serrors.NotFound(CodeProjectNotFound, fmt.Sprintf("project %s not found", ref))
		}
		vc.Existing = existing
	}

	if err := p.authorize(ctx, payload, principal, vc, isCreate); err != nil {
		return nil, err
	}

	if err := p.checkCommonFields(ctx, payload, vc, isCreate, ref); err != nil {
		return nil, err
	}

	if isCreate {
		if err := p.resolveTargetArea(ctx, payload, vc); err != nil {
			return nil, err
		}
	} else {
		if err := p.checkAreaChange(ctx, payload, principal, vc); err != nil {
			return nil, err
		}
		if len(project.TimelineMilestones(level)) > 0 {
			// Fiscal years are fixed at creation; milestones are checked
			// against the committed window, never incoming payload years.
			if err := ValidateTimeline(level, payload, vc.Existing.FinancialStartYear, vc.Existing.FinancialEndYear); err != nil {
				return nil, err
			}
		}
	}

	return vc, nil
}

func (p *ValidationPipeline) authorize(ctx context.Context, payload project.Payload, principal account.Account, vc *ValidationContext, isCreate bool) error {
	if isCreate {
		if d := CanCreateProject(principal, payload[project.FieldAreaID]); !d.Allowed {
			return serrors.Forbidden(CodeForbidden, d.Reason)
		}
		return nil
	}

	aw, err := p.projectAreaWithParents(ctx, vc.Existing.AreaID)
	if err != nil {
		return err
	}
	if d := CanUpdateProject(principal, aw); !d.Allowed {
		return serrors.Forbidden(CodeForbidden, d.Reason)
	}
	return nil
}

// projectAreaWithParents resolves the stored project's area chain for the
// permission check. An absent area yields nil so the evaluator can fail
// closed; only infrastructure faults propagate.
func (p *ValidationPipeline) projectAreaWithParents(ctx context.Context, areaID int64) (*area.WithParents, error) {
	aw, err := p.areas.GetWithParents(ctx, areaID)
	if err != nil {
		var de *serrors.Error
		if errors.As(err, &de) {
			return nil, nil
		}
		return nil, err
	}
	return &aw, nil
}

func (p *ValidationPipeline) checkCommonFields(ctx context.Context, payload project.Payload, vc *ValidationContext, isCreate bool, ref string) error {
	if isCreate || payload.Has(project.FieldName) {
		if name, ok := payload.String(project.FieldName); ok && name != "" {
			taken, err := p.projects.NameTaken(ctx, name, ref)
			if err != nil {
				return err
			}
			if taken {
				e := serrors.Conflict(CodeProjectNameTaken, fmt.Sprintf("a project named %q already exists", name))
				e.Field = project.FieldName
				return e
			}
		}
	}

	// Partial updates at different wizard levels are legal, so each side
	// falls back to the stored year; the inconsistency must still be
	// caught once both sides are known.
	start, haveStart := payload.Int(project.FieldFinancialStartYear)
	end, haveEnd := payload.Int(project.FieldFinancialEndYear)
	if !haveStart && vc.Existing != nil {
		start, haveStart = int64(vc.Existing.FinancialStartYear), true
	}
	if !haveEnd && vc.Existing != nil {
		end, haveEnd = int64(vc.Existing.FinancialEndYear), true
	}
	if haveStart && haveEnd && start > end {
		return serrors.Validation(CodeYearsOutOfOrder,
			fmt.Sprintf("financial start year %d is after end year %d", start, end),
			project.FieldFinancialStartYear)
	}
	return nil
}

// resolveTargetArea validates the owning area on creation: it must exist,
// must be an RMA, and must yield an RFCC code through its PSO parent. The
// resolved chain and code are handed back for the caller to persist.
func (p *ValidationPipeline) resolveTargetArea(ctx context.Context, payload project.Payload, vc *ValidationContext) error {
	areaID, ok := payload.Int(project.FieldAreaID)
	if !ok {
		return serrors.Validation(CodeAreaIDInvalid, "areaId is missing or not a valid identifier", project.FieldAreaID)
	}

	aw, err := p.areas.GetWithParents(ctx, areaID)
	if err != nil {
		return err
	}
	if aw.Node.Type != area.TypeRMA {
		return serrors.Validation(CodeAreaNotAllowed, "area not allowed: projects must belong to an RMA", project.FieldAreaID)
	}
	if aw.PSO == nil || aw.PSO.SubType == "" {
		return serrors.Validation(CodeRFCCUnresolvable, "no RFCC code is resolvable for the area", project.FieldAreaID)
	}

	vc.Area = &aw
	vc.RFCCCode = aw.PSO.SubType
	return nil
}

// checkAreaChange re-validates the area only when the incoming id differs
// from the stored one. Moving a project between areas is admin-only
// regardless of delegated PSO permission.
func (p *ValidationPipeline) checkAreaChange(ctx context.Context, payload project.Payload, principal account.Account, vc *ValidationContext) error {
	if !payload.Has(project.FieldAreaID) {
		return nil
	}
	newAreaID, ok := payload.Int(project.FieldAreaID)
	if !ok {
		return serrors.Validation(CodeAreaIDInvalid, "areaId is missing or not a valid identifier", project.FieldAreaID)
	}
	if newAreaID == vc.Existing.AreaID {
		return nil
	}
	if !principal.Admin() {
		return serrors.Forbidden(CodeAreaChangeAdmin, "only administrators can move a project to another area")
	}
	return p.resolveTargetArea(ctx, payload, vc)
}
