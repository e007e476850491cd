package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/floodops/pafs/modules/areas/domain/area"
	"github.com/floodops/pafs/pkg/composables"
)

const areaFindQuery = `
        SELECT
            a.id,
            a.name,
            a.area_type,
            a.parent_id,
            a.sub_type,
            a.identifier,
            a.end_date
        FROM areas a`

type PgAreaRepository struct{}

func NewAreaRepository() area.Repository {
	return &PgAreaRepository{}
}

func (r *PgAreaRepository) GetByID(ctx context.Context, id int64) (*area.Area, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var (
		a       area.Area
		subType *string
	)
	row := tx.QueryRow(ctx, areaFindQuery+` WHERE a.id = $1`, id)
	if err := row.Scan(&a.ID, &a.Name, &a.Type, &a.ParentID, &subType, &a.Identifier, &a.EndDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, gerrors.Wrap(err, "get area by id")
	}
	if subType != nil {
		a.SubType = *subType
	}
	return &a, nil
}
