package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/floodops/pafs/modules/accounts/domain/account"
	"github.com/floodops/pafs/pkg/composables"
)

const accountFindQuery = `
        SELECT user_id, email, admin, rma, disabled
        FROM accounts
        WHERE user_id = $1`

const accountAreasQuery = `
        SELECT area_id, "primary"
        FROM account_areas
        WHERE user_id = $1
        ORDER BY area_id`

type PgAccountRepository struct{}

func NewAccountRepository() *PgAccountRepository {
	return &PgAccountRepository{}
}

func (r *PgAccountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (account.Account, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return account.Account{}, err
	}

	var (
		email                string
		admin, rma, disabled bool
	)
	if err := tx.QueryRow(ctx, accountFindQuery, userID).Scan(
		&userID, &email, &admin, &rma, &disabled,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, gerrors.Wrap(err, "get account")
	}

	rows, err := tx.Query(ctx, accountAreasQuery, userID)
	if err != nil {
		return account.Account{}, gerrors.Wrap(err, "get account areas")
	}
	defer rows.Close()

	var areas []account.Membership
	for rows.Next() {
		var m account.Membership
		if err := rows.Scan(&m.AreaID, &m.Primary); err != nil {
			return account.Account{}, gerrors.Wrap(err, "scan account area")
		}
		areas = append(areas, m)
	}
	if err := rows.Err(); err != nil {
		return account.Account{}, gerrors.Wrap(err, "iterate account areas")
	}

	return account.Hydrate(userID, email, admin, rma, disabled, areas), nil
}
