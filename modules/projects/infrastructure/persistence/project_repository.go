package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/floodops/pafs/modules/projects/domain/project"
	"github.com/floodops/pafs/pkg/composables"
	"github.com/floodops/pafs/pkg/serrors"
)

const projectFindQuery = `
        SELECT
            p.id,
            p.reference_number,
            p.name,
            pa.area_id,
            p.rfcc_code,
            p.project_type,
            ps.state,
            p.financial_start_year,
            p.financial_end_year,
            p.start_outline_business_case_month,
            p.start_outline_business_case_year,
            p.complete_outline_business_case_month,
            p.complete_outline_business_case_year,
            p.award_contract_month,
            p.award_contract_year,
            p.start_construction_month,
            p.start_construction_year,
            p.ready_for_service_month,
            p.ready_for_service_year,
            p.could_start_early,
            p.earliest_start_month,
            p.earliest_start_year,
            p.funding_sources,
            p.grant_percentage,
            p.flood_protection_before,
            p.flood_protection_after,
            p.coastal_protection_before,
            p.coastal_protection_after,
            p.habitat_creation_hectares,
            p.kilometres_of_watercourse_enhanced,
            p.created_at,
            p.updated_at
        FROM projects p
        JOIN project_states ps ON ps.project_id = p.id
        JOIN project_areas pa ON pa.project_id = p.id`

const projectNameTakenQuery = `
        SELECT EXISTS(
            SELECT 1 FROM projects
            WHERE name = $1 AND reference_number <> $2
        )`

const projectInsertQuery = `
        INSERT INTO projects (
            reference_number, name, rfcc_code, project_type,
            financial_start_year, financial_end_year,
            created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id`

const projectNextRefQuery = `SELECT nextval('project_reference_seq')`

// mutable project-table columns; state and area_id live in their own rows
// and reference_number never changes after creation.
var projectUpdatableColumns = map[string]bool{
	"name":                                 true,
	"rfcc_code":                            true,
	"project_type":                         true,
	"financial_start_year":                 true,
	"financial_end_year":                   true,
	"start_outline_business_case_month":    true,
	"start_outline_business_case_year":     true,
	"complete_outline_business_case_month": true,
	"complete_outline_business_case_year":  true,
	"award_contract_month":                 true,
	"award_contract_year":                  true,
	"start_construction_month":             true,
	"start_construction_year":              true,
	"ready_for_service_month":              true,
	"ready_for_service_year":               true,
	"could_start_early":                    true,
	"earliest_start_month":                 true,
	"earliest_start_year":                  true,
	"funding_sources":                      true,
	"grant_percentage":                     true,
	"flood_protection_before":              true,
	"flood_protection_after":               true,
	"coastal_protection_before":            true,
	"coastal_protection_after":             true,
	"habitat_creation_hectares":            true,
	"kilometres_of_watercourse_enhanced":   true,
}

type PgProjectRepository struct{}

func NewProjectRepository() *PgProjectRepository {
	return &PgProjectRepository{}
}

func (r *PgProjectRepository) GetByReferenceNumber(ctx context.Context, ref string) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, projectFindQuery+` WHERE p.reference_number = $1`, ref)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, gerrors.Wrap(err, "get project by reference number")
	}
	return p, nil
}

func (r *PgProjectRepository) NameTaken(ctx context.Context, name, excludeRef string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var taken bool
	if err := tx.QueryRow(ctx, projectNameTakenQuery, name, excludeRef).Scan(&taken); err != nil {
		return false, gerrors.Wrap(err, "check project name")
	}
	return taken, nil
}

// NextReferenceNumber allocates a new project reference. The sequence makes
// references unique per deployment; the RFCC code prefixes them.
func (r *PgProjectRepository) NextReferenceNumber(ctx context.Context, rfccCode string) (string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return "", err
	}

	var n int64
	if err := tx.QueryRow(ctx, projectNextRefQuery).Scan(&n); err != nil {
		return "", gerrors.Wrap(err, "allocate project reference")
	}
	return fmt.Sprintf("%sC%03dE/%03dA/%03dA", rfccCode, n%1000, n/1000, 0), nil
}

func (r *PgProjectRepository) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var id int64
	if err := tx.QueryRow(ctx, projectInsertQuery,
		p.ReferenceNumber,
		p.Name,
		p.RFCCCode,
		nullableString(p.ProjectType),
		p.FinancialStartYear,
		p.FinancialEndYear,
	).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			e := serrors.Conflict("PROJECT_NAME_TAKEN", fmt.Sprintf("a project named %q already exists", p.Name))
			e.Field = project.FieldName
			return nil, e
		}
		return nil, gerrors.Wrap(err, "create project")
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO project_states (project_id, state) VALUES ($1, $2)`,
		id, string(project.StateDraft)); err != nil {
		return nil, gerrors.Wrap(err, "create project state")
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO project_areas (project_id, area_id) VALUES ($1, $2)`,
		id, p.AreaID); err != nil {
		return nil, gerrors.Wrap(err, "create project area link")
	}

	return r.GetByReferenceNumber(ctx, p.ReferenceNumber)
}

func (r *PgProjectRepository) Update(ctx context.Context, ref string, columns map[string]any) (*project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	set := make([]string, 0, len(columns))
	args := []any{ref}
	for col, v := range columns {
		if !projectUpdatableColumns[col] {
			continue
		}
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if len(set) > 0 {
		set = append(set, "updated_at = NOW()")
		query := fmt.Sprintf(
			`UPDATE projects SET %s WHERE reference_number = $1`,
			strings.Join(set, ", "),
		)
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				e := serrors.Conflict("PROJECT_NAME_TAKEN", "a project with that name already exists")
				e.Field = project.FieldName
				return nil, e
			}
			return nil, gerrors.Wrap(err, "update project")
		}
		// The project can vanish between validation and this write; the
		// race must surface as not-found, never as a nil row.
		if tag.RowsAffected() == 0 {
			return nil, serrors.NotFound("PROJECT_NOT_FOUND", fmt.Sprintf("project %s not found", ref))
		}
	}

	if v, ok := columns["area_id"]; ok {
		if _, err := tx.Exec(ctx,
			`UPDATE project_areas SET area_id = $2
             WHERE project_id = (SELECT id FROM projects WHERE reference_number = $1)`,
			ref, v); err != nil {
			return nil, gerrors.Wrap(err, "update project area link")
		}
	}
	if v, ok := columns["state"]; ok {
		if _, err := tx.Exec(ctx,
			`UPDATE project_states SET state = $2
             WHERE project_id = (SELECT id FROM projects WHERE reference_number = $1)`,
			ref, v); err != nil {
			return nil, gerrors.Wrap(err, "update project state")
		}
	}

	p, err := r.GetByReferenceNumber(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, serrors.NotFound("PROJECT_NOT_FOUND", fmt.Sprintf("project %s not found", ref))
	}
	return p, nil
}

func scanProject(row pgx.Row) (*project.Project, error) {
	var (
		p              project.Project
		projectType    *string
		fundingSources *string
	)
	if err := row.Scan(
		&p.ID,
		&p.ReferenceNumber,
		&p.Name,
		&p.AreaID,
		&p.RFCCCode,
		&projectType,
		&p.State,
		&p.FinancialStartYear,
		&p.FinancialEndYear,
		&p.StartOutlineBusinessCaseMonth,
		&p.StartOutlineBusinessCaseYear,
		&p.CompleteOutlineBusinessCaseMonth,
		&p.CompleteOutlineBusinessCaseYear,
		&p.AwardContractMonth,
		&p.AwardContractYear,
		&p.StartConstructionMonth,
		&p.StartConstructionYear,
		&p.ReadyForServiceMonth,
		&p.ReadyForServiceYear,
		&p.CouldStartEarly,
		&p.EarliestStartMonth,
		&p.EarliestStartYear,
		&fundingSources,
		&p.GrantPercentage,
		&p.FloodProtectionBefore,
		&p.FloodProtectionAfter,
		&p.CoastalProtectionBefore,
		&p.CoastalProtectionAfter,
		&p.HabitatCreationHectares,
		&p.KilometresOfWatercourseEnhanced,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if projectType != nil {
		p.ProjectType = *projectType
	}
	if fundingSources != nil && *fundingSources != "" {
		p.FundingSources = strings.Split(*fundingSources, ",")
	}
	return &p, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
