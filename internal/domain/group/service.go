package group

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"mealplanner/internal/domain/access"
	"mealplanner/internal/domain/session"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create makes a new group with the caller as its first admin. The caller's
// token does not list the group until it is refreshed.
func (s *Service) Create(ctx context.Context, identity *session.Identity, name string) (string, error) {
	if err := access.RequireIdentity(identity); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}

	group := Group{UUID: uuid.NewString(), Name: name}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateGroup(ctx, &group); err != nil {
			return err
		}
		return tx.AddMember(ctx, &Membership{
			UserUUID:  identity.UUID,
			GroupUUID: group.UUID,
			Role:      access.RoleAdmin,
		})
	})
	if err != nil {
		return "", err
	}
	return group.UUID, nil
}

func (s *Service) Rename(ctx context.Context, identity *session.Identity, groupID, name string) (bool, error) {
	if err := access.RequireIdentity(identity); err != nil {
		return false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrNameRequired
	}

	var updated bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := access.CanAct(ctx, tx, identity, groupID, access.RoleAdmin); err != nil {
			return err
		}
		var err error
		updated, err = tx.UpdateGroupName(ctx, groupID, name)
		return err
	})
	return updated, err
}

func (s *Service) Delete(ctx context.Context, identity *session.Identity, groupID string) (bool, error) {
	if err := access.RequireIdentity(identity); err != nil {
		return false, err
	}

	var deleted bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := access.CanAct(ctx, tx, identity, groupID, access.RoleAdmin); err != nil {
			return err
		}
		var err error
		if deleted, err = tx.DeleteGroup(ctx, groupID); err != nil {
			return err
		}
		return tx.PruneOrphanedResources(ctx)
	})
	return deleted, err
}

// Invite adds the user registered under email as an editor. Inviting an
// existing member is a no-op reported as success.
func (s *Service) Invite(ctx context.Context, identity *session.Identity, groupID, email string) (InviteResult, error) {
	if err := access.RequireIdentity(identity); err != nil {
		return "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	var result InviteResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := access.CanAct(ctx, tx, identity, groupID, access.RoleAdmin); err != nil {
			return err
		}

		userID, found, err := tx.FindUserIDByEmail(ctx, email)
		if err != nil {
			return err
		}
		if !found {
			result = InviteInvalidUser
			return nil
		}

		_, isMember, err := tx.GetRole(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if !isMember {
			if err := tx.AddMember(ctx, &Membership{
				UserUUID:  userID,
				GroupUUID: groupID,
				Role:      access.RoleEditor,
			}); err != nil {
				return err
			}
		}

		result = InviteSuccess
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

func (s *Service) Revoke(ctx context.Context, identity *session.Identity, groupID, userID string) (bool, error) {
	if err := access.RequireIdentity(identity); err != nil {
		return false, err
	}
	if strings.TrimSpace(userID) == "" {
		return false, ErrUserIDRequired
	}

	var removed bool
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := access.CanRevoke(ctx, tx, identity, groupID, userID); err != nil {
			return err
		}
		var err error
		removed, err = tx.DeleteMember(ctx, groupID, userID)
		return err
	})
	return removed, err
}

func (s *Service) Get(ctx context.Context, identity *session.Identity, groupID string) (*Detail, error) {
	if err := access.RequireMember(identity, groupID); err != nil {
		return nil, err
	}

	group, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &Detail{Group: *group, Members: members}, nil
}
