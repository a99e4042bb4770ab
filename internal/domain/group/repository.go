package group

import (
	"context"

	"mealplanner/internal/domain/access"
)

type Repository interface {
	access.MembershipReader

	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateGroup(ctx context.Context, group *Group) error
	GetGroup(ctx context.Context, groupID string) (*Group, error)
	UpdateGroupName(ctx context.Context, groupID, name string) (bool, error)
	// DeleteGroup removes the group row. Memberships and resource
	// associations go with it through foreign keys.
	DeleteGroup(ctx context.Context, groupID string) (bool, error)
	// PruneOrphanedResources deletes ingredients, tags and meals that are no
	// longer associated with any group.
	PruneOrphanedResources(ctx context.Context) error

	AddMember(ctx context.Context, membership *Membership) error
	ListMembers(ctx context.Context, groupID string) ([]Member, error)
	DeleteMember(ctx context.Context, groupID, userID string) (bool, error)
	FindUserIDByEmail(ctx context.Context, email string) (string, bool, error)
}
