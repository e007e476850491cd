package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/floodops/pafs/modules/projects/domain/project"
	"github.com/floodops/pafs/modules/projects/infrastructure/persistence"
	"github.com/floodops/pafs/pkg/composables"
	"github.com/floodops/pafs/pkg/eventbus"
	"github.com/floodops/pafs/pkg/serrors"
)

const (
	CodeLevelUnknown  = "LEVEL_UNKNOWN"
	CodeFieldRequired = "FIELD_REQUIRED"
)

// ProjectService drives one wizard save: schema check, validation pipeline,
// transactional persistence, event publication.
type ProjectService struct {
	pipeline  *ValidationPipeline
	projects  project.Repository
	mapper    *persistence.FieldMapper
	publisher eventbus.EventBus
}

func NewProjectService(
	pipeline *ValidationPipeline,
	projects project.Repository,
	mapper *persistence.FieldMapper,
	publisher eventbus.EventBus,
) *ProjectService {
	return &ProjectService{
		pipeline:  pipeline,
		projects:  projects,
		mapper:    mapper,
		publisher: publisher,
	}
}

func (s *ProjectService) GetByReferenceNumber(ctx context.Context, ref string) (*project.Project, error) {
	p, err := s.projects.GetByReferenceNumber(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, serrors.NotFound(CodeProjectNotFound, fmt.Sprintf("project %s not found", ref))
	}
	return p, nil
}

// Save validates and persists one wizard level. The principal comes from the
// request context; a missing principal is an authentication fault, not a
// validation one.
func (s *ProjectService) Save(ctx context.Context, levelName string, payload project.Payload) (*project.Project, error) {
	principal, err := composables.UseUser(ctx)
	if err != nil {
		return nil, err
	}

	level, err := project.ParseLevel(levelName)
	if err != nil {
		return nil, serrors.Validation(CodeLevelUnknown, err.Error(), "level")
	}
	if err := checkRequiredFields(level, payload); err != nil {
		return nil, err
	}

	vc, err := s.pipeline.Validate(ctx, payload, principal, level)
	if err != nil {
		return nil, err
	}

	ref, _ := payload.String(project.FieldReferenceNumber)
	isCreate := ref == ""

	var saved *project.Project
	if err := composables.InTx(ctx, func(txCtx context.Context) error {
		if isCreate {
			saved, err = s.create(txCtx, payload, vc, level)
		} else {
			saved, err = s.update(txCtx, ref, payload, vc, level)
		}
		return err
	}); err != nil {
		return nil, err
	}

	composables.UseLogger(ctx).WithFields(logrus.Fields{
		"referenceNumber": saved.ReferenceNumber,
		"level":           string(level),
		"created":         isCreate,
	}).Info("project saved")

	if isCreate {
		s.publisher.Publish(project.CreatedEvent{Level: level, Result: *saved})
	} else {
		s.publisher.Publish(project.UpdatedEvent{Level: level, Result: *saved})
	}
	return saved, nil
}

func (s *ProjectService) create(ctx context.Context, payload project.Payload, vc *ValidationContext, level project.Level) (*project.Project, error) {
	ref, err := s.projects.NextReferenceNumber(ctx, vc.RFCCCode)
	if err != nil {
		return nil, err
	}

	name, _ := payload.String(project.FieldName)
	startYear, _ := payload.Int(project.FieldFinancialStartYear)
	endYear, _ := payload.Int(project.FieldFinancialEndYear)

	created, err := s.projects.Create(ctx, &project.Project{
		ReferenceNumber:    ref,
		Name:               name,
		AreaID:             vc.Area.Node.ID,
		RFCCCode:           vc.RFCCCode,
		State:              project.StateDraft,
		FinancialStartYear: int(startYear),
		FinancialEndYear:   int(endYear),
	})
	if err != nil {
		return nil, err
	}

	columns := s.storageColumns(payload, vc, level)
	if len(columns) == 0 {
		return created, nil
	}
	return s.projects.Update(ctx, ref, columns)
}

func (s *ProjectService) update(ctx context.Context, ref string, payload project.Payload, vc *ValidationContext, level project.Level) (*project.Project, error) {
	p, err := s.projects.Update(ctx, ref, s.storageColumns(payload, vc, level))
	if err != nil {
		return nil, err
	}
	// A project deleted between validation and the write must surface as
	// not-found, never as a nil result the caller dereferences.
	if p == nil {
		return nil, serrors.NotFound(CodeProjectNotFound, fmt.Sprintf("project %s not found", ref))
	}
	return p, nil
}

// storageColumns maps the payload to columns and layers on the pieces the
// client never writes directly: the reference number, the lifecycle state
// and the RFCC code tracking an admin area change.
func (s *ProjectService) storageColumns(payload project.Payload, vc *ValidationContext, level project.Level) map[string]any {
	columns := s.mapper.ToStorage(payload)
	delete(columns, "reference_number")
	delete(columns, "rfcc_code")
	delete(columns, "state")

	if vc.Area != nil && vc.Existing != nil {
		columns["rfcc_code"] = vc.RFCCCode
	}
	if level == project.LevelSubmission {
		columns["state"] = string(project.StateSubmitted)
	}
	return columns
}

func checkRequiredFields(level project.Level, payload project.Payload) error {
	schema, err := project.SchemaFor(level)
	if err != nil {
		return serrors.Validation(CodeLevelUnknown, err.Error(), "level")
	}
	for _, field := range schema.RequiredFields() {
		if !payload.Has(field) {
			return serrors.Validation(CodeFieldRequired,
				fmt.Sprintf("field %s is required at level %s", field, level), field)
		}
	}
	return nil
}
