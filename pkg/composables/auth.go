package composables

import (
	"context"
	"errors"

	"github.com/floodops/pafs/modules/accounts/domain/account"
	"github.com/floodops/pafs/pkg/constants"
)

var ErrNoUser = errors.New("no user found in context")

// WithUser returns a new context carrying the authenticated principal.
func WithUser(ctx context.Context, u account.Account) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

// UseUser returns the authenticated principal from the context.
func UseUser(ctx context.Context) (account.Account, error) {
	u, ok := ctx.Value(constants.UserKey).(account.Account)
	if !ok {
		return account.Account{}, ErrNoUser
	}
	return u, nil
}
