package security

import (
	"context"

	"github.com/duccv/weather-tracker/internal/apperror"
	"github.com/duccv/weather-tracker/internal/constant"
	"github.com/duccv/weather-tracker/internal/model"
)

// AssertSelfAccess fails unless identity is authenticated as username.
func AssertSelfAccess(identity *model.Identity, username string) error {
	if identity == nil || !identity.Authenticated || identity.Subject != username {
		return apperror.UnauthorizedAccess(constant.MsgAccessDenied)
	}
	return nil
}

func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, constant.IdentityKey, identity)
}

func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(constant.IdentityKey).(*model.Identity)
	return identity, ok && identity != nil
}
