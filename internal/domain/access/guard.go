package access

import (
	"context"

	"mealplanner/internal/domain/session"
)

// MembershipReader is the live view of group membership. Admin decisions
// always go through it so a role change applies before the caller's
// token is refreshed.
type MembershipReader interface {
	GetRole(ctx context.Context, groupID, userID string) (Role, bool, error)
	CountAdmins(ctx context.Context, groupID string) (int64, error)
}

func RequireIdentity(identity *session.Identity) error {
	if identity == nil || identity.UUID == "" {
		return ErrUnauthenticated
	}
	return nil
}

// RequireMember checks groupID against the token snapshot only.
func RequireMember(identity *session.Identity, groupID string) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	if !identity.HasGroup(groupID) {
		return ErrUnauthorized
	}
	return nil
}

func RequireAdmin(ctx context.Context, reader MembershipReader, identity *session.Identity, groupID string) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	role, ok, err := reader.GetRole(ctx, groupID, identity.UUID)
	if err != nil {
		return err
	}
	if !ok || role != RoleAdmin {
		return ErrUnauthorized
	}
	return nil
}

// RequireAnyGroup allows the caller when at least one of the resource's
// current groups is in the snapshot.
func RequireAnyGroup(identity *session.Identity, resourceGroupIDs []string) error {
	if err := RequireIdentity(identity); err != nil {
		return err
	}
	for _, id := range resourceGroupIDs {
		if identity.HasGroup(id) {
			return nil
		}
	}
	return ErrUnauthorized
}

func CanAct(ctx context.Context, reader MembershipReader, identity *session.Identity, groupID string, required Role) error {
	if required == RoleAdmin {
		return RequireAdmin(ctx, reader, identity, groupID)
	}
	return RequireMember(identity, groupID)
}

func CanRevoke(ctx context.Context, reader MembershipReader, identity *session.Identity, groupID, targetUserID string) error {
	if err := RequireAdmin(ctx, reader, identity, groupID); err != nil {
		return err
	}
	if targetUserID != identity.UUID {
		return nil
	}
	admins, err := reader.CountAdmins(ctx, groupID)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return ErrLastAdmin
	}
	return nil
}
