package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"

	"mealplanner/internal/domain/group"
)

func (r *Resolver) Group(ctx context.Context, args struct{ UUID graphql.ID }) (*groupResolver, error) {
	groupID, err := parseUUID(args.UUID)
	if err != nil {
		return nil, r.fail(ctx, "groups.get", err)
	}

	detail, err := r.groups.Get(ctx, identityFrom(ctx), groupID)
	if errors.Is(err, group.ErrGroupNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(ctx, "groups.get", err)
	}
	return &groupResolver{detail: detail}, nil
}

func (r *Resolver) CreateGroup(ctx context.Context, args struct{ Name string }) (*graphql.ID, error) {
	groupID, err := r.groups.Create(ctx, identityFrom(ctx), args.Name)
	if err != nil {
		return nil, r.fail(ctx, "groups.create", err)
	}
	id := graphql.ID(groupID)
	return &id, nil
}

func (r *Resolver) ChangeGroupName(ctx context.Context, args struct {
	GroupID graphql.ID
	Name    string
}) (*bool, error) {
	groupID, err := parseUUID(args.GroupID)
	if err != nil {
		return nil, r.fail(ctx, "groups.rename", err)
	}
	updated, err := r.groups.Rename(ctx, identityFrom(ctx), groupID, args.Name)
	if err != nil {
		return nil, r.fail(ctx, "groups.rename", err)
	}
	return boolPtr(updated), nil
}

func (r *Resolver) DeleteGroup(ctx context.Context, args struct{ GroupID graphql.ID }) (*bool, error) {
	groupID, err := parseUUID(args.GroupID)
	if err != nil {
		return nil, r.fail(ctx, "groups.delete", err)
	}
	deleted, err := r.groups.Delete(ctx, identityFrom(ctx), groupID)
	if err != nil {
		return nil, r.fail(ctx, "groups.delete", err)
	}
	return boolPtr(deleted), nil
}

func (r *Resolver) InviteUser(ctx context.Context, args struct {
	GroupID graphql.ID
	Email   string
}) (*string, error) {
	groupID, err := parseUUID(args.GroupID)
	if err != nil {
		return nil, r.fail(ctx, "groups.invite", err)
	}
	result, err := r.groups.Invite(ctx, identityFrom(ctx), groupID, args.Email)
	if err != nil {
		return nil, r.fail(ctx, "groups.invite", err)
	}
	return stringPtr(string(result)), nil
}

func (r *Resolver) RevokeAccess(ctx context.Context, args struct {
	GroupID graphql.ID
	UserID  graphql.ID
}) (*bool, error) {
	groupID, err := parseUUID(args.GroupID)
	if err != nil {
		return nil, r.fail(ctx, "groups.revoke", err)
	}
	userID, err := parseUUID(args.UserID)
	if err != nil {
		return nil, r.fail(ctx, "groups.revoke", err)
	}
	removed, err := r.groups.Revoke(ctx, identityFrom(ctx), groupID, userID)
	if err != nil {
		return nil, r.fail(ctx, "groups.revoke", err)
	}
	return boolPtr(removed), nil
}

type groupResolver struct {
	detail *group.Detail
}

func (g *groupResolver) UUID() graphql.ID {
	return graphql.ID(g.detail.UUID)
}

func (g *groupResolver) Name() string {
	return g.detail.Name
}

func (g *groupResolver) Members() []*memberResolver {
	result := make([]*memberResolver, 0, len(g.detail.Members))
	for _, member := range g.detail.Members {
		result = append(result, &memberResolver{member: member})
	}
	return result
}

type memberResolver struct {
	member group.Member
}

func (m *memberResolver) User() *userResolver {
	return &userResolver{uuid: m.member.UserUUID, email: m.member.Email}
}

func (m *memberResolver) Role() string {
	return string(m.member.Role)
}

type userResolver struct {
	uuid  string
	email string
}

func (u *userResolver) UUID() graphql.ID {
	return graphql.ID(u.uuid)
}

func (u *userResolver) Email() string {
	return u.email
}
