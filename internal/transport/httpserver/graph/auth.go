package graph

import (
	"context"

	"mealplanner/internal/domain/access"
)

func (r *Resolver) Hello(ctx context.Context) (*string, error) {
	if err := access.RequireIdentity(identityFrom(ctx)); err != nil {
		return nil, r.fail(ctx, "hello", err)
	}
	return stringPtr("world"), nil
}

func (r *Resolver) RefreshCredentials(ctx context.Context) (*string, error) {
	identity := identityFrom(ctx)
	if err := access.RequireIdentity(identity); err != nil {
		return nil, r.fail(ctx, "auth.refresh", err)
	}

	token, err := r.auth.Refresh(ctx, identity.UUID)
	if err != nil {
		return nil, r.fail(ctx, "auth.refresh", err)
	}
	return &token, nil
}

type credentialsArgs struct {
	Email    string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args credentialsArgs) (*string, error) {
	token, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, r.fail(ctx, "auth.login", err)
	}
	return &token, nil
}

func (r *Resolver) Register(ctx context.Context, args credentialsArgs) (*string, error) {
	message, err := r.auth.Register(ctx, args.Email, args.Password)
	if err != nil {
		return nil, r.fail(ctx, "auth.register", err)
	}
	return &message, nil
}
