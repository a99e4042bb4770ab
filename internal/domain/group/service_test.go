package group

import (
	"context"
	"errors"
	"sort"
	"testing"

	"mealplanner/internal/domain/access"
	"mealplanner/internal/domain/session"
)

type fakeGroupRepo struct {
	groups      map[string]*Group
	memberships map[string]map[string]access.Role
	emails      map[string]string
	joinOrder   []Membership
	prunes      int
	txs         int
	failAdd     error
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:      make(map[string]*Group),
		memberships: make(map[string]map[string]access.Role),
		emails:      make(map[string]string),
	}
}

func (r *fakeGroupRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	r.txs++
	return fn(r)
}

func (r *fakeGroupRepo) GetRole(ctx context.Context, groupID, userID string) (access.Role, bool, error) {
	role, ok := r.memberships[groupID][userID]
	return role, ok, nil
}

func (r *fakeGroupRepo) CountAdmins(ctx context.Context, groupID string) (int64, error) {
	var count int64
	for _, role := range r.memberships[groupID] {
		if role == access.RoleAdmin {
			count++
		}
	}
	return count, nil
}

func (r *fakeGroupRepo) CreateGroup(ctx context.Context, group *Group) error {
	stored := *group
	r.groups[group.UUID] = &stored
	return nil
}

func (r *fakeGroupRepo) GetGroup(ctx context.Context, groupID string) (*Group, error) {
	group, ok := r.groups[groupID]
	if !ok {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (r *fakeGroupRepo) UpdateGroupName(ctx context.Context, groupID, name string) (bool, error) {
	group, ok := r.groups[groupID]
	if !ok {
		return false, nil
	}
	group.Name = name
	return true, nil
}

func (r *fakeGroupRepo) DeleteGroup(ctx context.Context, groupID string) (bool, error) {
	if _, ok := r.groups[groupID]; !ok {
		return false, nil
	}
	delete(r.groups, groupID)
	delete(r.memberships, groupID)
	return true, nil
}

func (r *fakeGroupRepo) PruneOrphanedResources(ctx context.Context) error {
	r.prunes++
	return nil
}

func (r *fakeGroupRepo) AddMember(ctx context.Context, membership *Membership) error {
	if r.failAdd != nil {
		return r.failAdd
	}
	if r.memberships[membership.GroupUUID] == nil {
		r.memberships[membership.GroupUUID] = make(map[string]access.Role)
	}
	r.memberships[membership.GroupUUID][membership.UserUUID] = membership.Role
	r.joinOrder = append(r.joinOrder, *membership)
	return nil
}

func (r *fakeGroupRepo) ListMembers(ctx context.Context, groupID string) ([]Member, error) {
	emailsByID := make(map[string]string, len(r.emails))
	for email, id := range r.emails {
		emailsByID[id] = email
	}
	result := make([]Member, 0)
	for userID, role := range r.memberships[groupID] {
		result = append(result, Member{UserUUID: userID, Email: emailsByID[userID], Role: role})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserUUID < result[j].UserUUID })
	return result, nil
}

func (r *fakeGroupRepo) DeleteMember(ctx context.Context, groupID, userID string) (bool, error) {
	if _, ok := r.memberships[groupID][userID]; !ok {
		return false, nil
	}
	delete(r.memberships[groupID], userID)
	return true, nil
}

func (r *fakeGroupRepo) FindUserIDByEmail(ctx context.Context, email string) (string, bool, error) {
	id, ok := r.emails[email]
	return id, ok, nil
}

// snapshot mimics a refreshed token for userID built from the fake store.
func (r *fakeGroupRepo) snapshot(userID string) *session.Identity {
	identity := &session.Identity{UUID: userID}
	for groupID, members := range r.memberships {
		if _, ok := members[userID]; ok {
			identity.Groups = append(identity.Groups, session.GroupRef{UUID: groupID, Name: r.groups[groupID].Name})
		}
	}
	return identity
}

func TestCreateMakesCallerAdmin(t *testing.T) {
	repo := newFakeGroupRepo()
	service := NewService(repo)

	groupID, err := service.Create(context.Background(), &session.Identity{UUID: "a"}, "  Home ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.groups[groupID].Name != "Home" {
		t.Fatalf("expected trimmed name, got %q", repo.groups[groupID].Name)
	}
	if repo.memberships[groupID]["a"] != access.RoleAdmin {
		t.Fatalf("expected creator to be admin")
	}
}

func TestCreateValidation(t *testing.T) {
	service := NewService(newFakeGroupRepo())

	if _, err := service.Create(context.Background(), nil, "Home"); !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := service.Create(context.Background(), &session.Identity{UUID: "a"}, " "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreatePropagatesMembershipFailure(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.failAdd = errors.New("insert failed")
	service := NewService(repo)

	if _, err := service.Create(context.Background(), &session.Identity{UUID: "a"}, "Home"); !errors.Is(err, repo.failAdd) {
		t.Fatalf("expected insert failure, got %v", err)
	}
}

func TestAdminOperationsUseLiveRole(t *testing.T) {
	repo := newFakeGroupRepo()
	service := NewService(repo)
	ctx := context.Background()

	stale := &session.Identity{UUID: "a"}
	groupID, err := service.Create(ctx, stale, "Home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ok, err := service.Rename(ctx, stale, groupID, "Cabin"); err != nil || !ok {
		t.Fatalf("expected rename with stale token to succeed, got %v, %v", ok, err)
	}
	if repo.groups[groupID].Name != "Cabin" {
		t.Fatalf("expected renamed group, got %q", repo.groups[groupID].Name)
	}

	repo.memberships[groupID]["a"] = access.RoleEditor
	if _, err := service.Rename(ctx, repo.snapshot("a"), groupID, "Again"); !errors.Is(err, access.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after demotion, got %v", err)
	}
}

func TestDeletePrunesOrphans(t *testing.T) {
	repo := newFakeGroupRepo()
	service := NewService(repo)
	ctx := context.Background()

	groupID, _ := service.Create(ctx, &session.Identity{UUID: "a"}, "Home")

	deleted, err := service.Delete(ctx, &session.Identity{UUID: "a"}, groupID)
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v, %v", deleted, err)
	}
	if repo.prunes != 1 {
		t.Fatalf("expected one prune, got %d", repo.prunes)
	}
	if _, ok := repo.groups[groupID]; ok {
		t.Fatalf("expected group to be gone")
	}
}

func TestDeleteRequiresIdentityBeforeTransaction(t *testing.T) {
	repo := newFakeGroupRepo()
	service := NewService(repo)

	deleted, err := service.Delete(context.Background(), nil, "g-1")
	if !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if deleted {
		t.Fatalf("expected nothing deleted")
	}
	if repo.txs != 0 {
		t.Fatalf("expected no transaction, got %d", repo.txs)
	}
}

func TestInviteIsIdempotent(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.emails["b@example.com"] = "b"
	service := NewService(repo)
	ctx := context.Background()
	admin := &session.Identity{UUID: "a"}

	groupID, _ := service.Create(ctx, admin, "Home")
	for i := 0; i < 2; i++ {
		result, err := service.Invite(ctx, admin, groupID, "b@example.com")
		if err != nil || result != InviteSuccess {
			t.Fatalf("expected success, got %q, %v", result, err)
		}
	}
	if len(repo.joinOrder) != 2 {
		t.Fatalf("expected creator plus one invite, got %d memberships", len(repo.joinOrder))
	}
	if repo.memberships[groupID]["b"] != access.RoleEditor {
		t.Fatalf("expected invitee to be editor")
	}

	if _, err := service.Invite(ctx, admin, groupID, " "); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}

func TestGetRequiresSnapshotMembership(t *testing.T) {
	repo := newFakeGroupRepo()
	service := NewService(repo)
	ctx := context.Background()

	groupID, _ := service.Create(ctx, &session.Identity{UUID: "a"}, "Home")

	if _, err := service.Get(ctx, &session.Identity{UUID: "a"}, groupID); !errors.Is(err, access.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unrefreshed token, got %v", err)
	}
	if _, err := service.Get(ctx, nil, groupID); !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	detail, err := service.Get(ctx, repo.snapshot("a"), groupID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Name != "Home" || len(detail.Members) != 1 {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestRevokeNonMemberReportsFalse(t *testing.T) {
	repo := newFakeGroupRepo()
	service := NewService(repo)
	ctx := context.Background()
	admin := &session.Identity{UUID: "a"}

	groupID, _ := service.Create(ctx, admin, "Home")
	removed, err := service.Revoke(ctx, admin, groupID, "nobody")
	if err != nil || removed {
		t.Fatalf("expected false without error, got %v, %v", removed, err)
	}
	if _, err := service.Revoke(ctx, admin, groupID, ""); !errors.Is(err, ErrUserIDRequired) {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
}

func TestMembershipScenario(t *testing.T) {
	repo := newFakeGroupRepo()
	repo.emails["a@example.com"] = "a"
	repo.emails["b@example.com"] = "b"
	service := NewService(repo)
	ctx := context.Background()

	groupID, err := service.Create(ctx, &session.Identity{UUID: "a"}, "G")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a := repo.snapshot("a")

	detail, err := service.Get(ctx, a, groupID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Members) != 1 || detail.Members[0].Role != access.RoleAdmin {
		t.Fatalf("expected single admin member, got %+v", detail.Members)
	}

	if result, err := service.Invite(ctx, a, groupID, "b@example.com"); err != nil || result != InviteSuccess {
		t.Fatalf("invite b: %q, %v", result, err)
	}
	if detail, _ = service.Get(ctx, a, groupID); len(detail.Members) != 2 {
		t.Fatalf("expected two members, got %d", len(detail.Members))
	}

	if result, err := service.Invite(ctx, a, groupID, "ghost@example.com"); err != nil || result != InviteInvalidUser {
		t.Fatalf("expected invalid_user, got %q, %v", result, err)
	}

	b := repo.snapshot("b")
	if _, err := service.Delete(ctx, b, groupID); !errors.Is(err, access.ErrUnauthorized) {
		t.Fatalf("expected editor delete to be unauthorized, got %v", err)
	}

	if removed, err := service.Revoke(ctx, a, groupID, "b"); err != nil || !removed {
		t.Fatalf("revoke b: %v, %v", removed, err)
	}
	if detail, _ = service.Get(ctx, a, groupID); len(detail.Members) != 1 {
		t.Fatalf("expected one member, got %d", len(detail.Members))
	}

	if _, err := service.Revoke(ctx, a, groupID, "a"); !errors.Is(err, access.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}
