package db

import (
	"testing"
	"time"

	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
)

func seedJoinRequest(t *testing.T, repo *MembershipRepository, groupID string, userID string, invitedBy *string) {
	t.Helper()
	created, err := repo.CreateJoinRequestIfAbsent(&models.JoinRequest{
		GroupID:   groupID,
		UserID:    userID,
		InvitedBy: invitedBy,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed join request %s/%s: %v", groupID, userID, err)
	}
	if !created {
		t.Fatalf("join request %s/%s already existed", groupID, userID)
	}
}

func TestCreateJoinRequestIfAbsent(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewMembershipRepository(database)

	seedUser(t, database, "alice")
	seedUser(t, database, "dave")
	group := seedGroup(t, database, "g1", "alice")

	seedJoinRequest(t, repo, group.ID, "dave", nil)

	created, err := repo.CreateJoinRequestIfAbsent(&models.JoinRequest{
		GroupID:   group.ID,
		UserID:    "dave",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("duplicate create: %v", err)
	}
	if created {
		t.Fatal("a duplicate join request must not be created")
	}
}

func TestInsertMembershipsIgnoringDuplicates(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewMembershipRepository(database)

	seedUser(t, database, "alice")
	seedUser(t, database, "carol")
	seedUser(t, database, "erin")
	group := seedGroup(t, database, "g1", "alice")
	seedMembership(t, database, group.ID, "carol")

	fresh, err := repo.InsertMembershipsIgnoringDuplicates([]models.Membership{
		{GroupID: group.ID, UserID: "carol", CreatedBy: "alice", CreatedAt: time.Now().UTC()},
		{GroupID: group.ID, UserID: "erin", CreatedBy: "alice", CreatedAt: time.Now().UTC()},
	})
	if err != nil {
		t.Fatalf("insert memberships: %v", err)
	}
	if len(fresh) != 1 || fresh[0].UserID != "erin" {
		t.Fatalf("expected only erin to be new, got %+v", fresh)
	}

	member, err := repo.IsMember(group.ID, "erin")
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if !member {
		t.Fatal("expected erin to be a member")
	}
}

func TestApprovalConsumesRequestAndCreatesMembership(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewMembershipRepository(database)
	service := services.NewMembershipService(repo, nil)

	seedUser(t, database, "alice")
	seedUser(t, database, "dave")
	group := seedGroup(t, database, "g1", "alice")
	sponsor := "frank"
	seedJoinRequest(t, repo, group.ID, "dave", &sponsor)

	memberships, err := service.EvaluateJoinRequests(&group, &models.User{ID: "alice"}, []string{"dave"}, models.EvaluationApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(memberships))
	}
	if memberships[0].InvitedBy == nil || *memberships[0].InvitedBy != "frank" {
		t.Fatal("expected invited_by carried over from the request")
	}

	requests, err := repo.ListJoinRequests(group.ID)
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected the request to be consumed, got %+v", requests)
	}

	member, err := repo.IsMember(group.ID, "dave")
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if !member {
		t.Fatal("expected dave to be a member after approval")
	}
}

func TestApprovalOfExistingMemberRollsBackRequestDeletion(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewMembershipRepository(database)
	service := services.NewMembershipService(repo, nil)

	seedUser(t, database, "alice")
	seedUser(t, database, "carol")
	group := seedGroup(t, database, "g1", "alice")
	// the user somehow holds both a membership and a stale request
	seedMembership(t, database, group.ID, "carol")
	seedJoinRequest(t, repo, group.ID, "carol", nil)

	_, err := service.EvaluateJoinRequests(&group, &models.User{ID: "alice"}, []string{"carol"}, models.EvaluationApproved)
	if services.KindOf(err) != services.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// the rollback must leave the stale request in place
	requests, err := repo.ListJoinRequests(group.ID)
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected the request to survive the rollback, got %d", len(requests))
	}
}

func TestRejectionKeepsRequestWithVerdict(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewMembershipRepository(database)
	service := services.NewMembershipService(repo, nil)

	seedUser(t, database, "alice")
	seedUser(t, database, "dave")
	group := seedGroup(t, database, "g1", "alice")
	seedJoinRequest(t, repo, group.ID, "dave", nil)

	if _, err := service.EvaluateJoinRequests(&group, &models.User{ID: "alice"}, []string{"dave"}, models.EvaluationRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}

	requests, err := repo.ListJoinRequests(group.ID)
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("expected the rejected request to remain, got %d", len(requests))
	}
	if requests[0].Evaluation() != models.EvaluationRejected {
		t.Fatalf("expected rejected evaluation, got %q", requests[0].Evaluation())
	}
	if requests[0].EvaluatedBy == nil || *requests[0].EvaluatedBy != "alice" {
		t.Fatal("expected the evaluator recorded on the request")
	}

	member, err := repo.IsMember(group.ID, "dave")
	if err != nil {
		t.Fatalf("is member: %v", err)
	}
	if member {
		t.Fatal("a rejected user must not become a member")
	}
}

func TestAddMembersDirectlyCleansUpStaleRequests(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewMembershipRepository(database)
	service := services.NewMembershipService(repo, nil)

	seedUser(t, database, "alice")
	seedUser(t, database, "dave")
	group := seedGroup(t, database, "g1", "alice")
	seedJoinRequest(t, repo, group.ID, "dave", nil)

	memberships, err := service.AddMembersDirectly(&group, &models.User{ID: "alice"}, []string{"dave"}, nil)
	if err != nil {
		t.Fatalf("add members: %v", err)
	}
	if len(memberships) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(memberships))
	}

	requests, err := repo.ListJoinRequests(group.ID)
	if err != nil {
		t.Fatalf("list requests: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected the stale request to be cleaned up, got %d", len(requests))
	}
}
