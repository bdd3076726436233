package db

import (
	"testing"
	"time"

	"github.com/mgcruz/rollcall/internal/models"
)

func TestFindAggregateForUserPreloadsOnlyTheActingUser(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewGroupRepository(database)

	seedUser(t, database, "alice")
	seedUser(t, database, "carol")
	seedUser(t, database, "erin")
	group := seedGroup(t, database, "g1", "alice")
	seedMembership(t, database, group.ID, "carol")
	seedMembership(t, database, group.ID, "erin")

	aggregate, found, err := repo.FindAggregateForUser(group.ID, "carol")
	if err != nil {
		t.Fatalf("find aggregate: %v", err)
	}
	if !found {
		t.Fatal("expected the group to be found")
	}
	if len(aggregate.Memberships) != 1 || aggregate.Memberships[0].UserID != "carol" {
		t.Fatalf("expected only carol's membership preloaded, got %+v", aggregate.Memberships)
	}
	if len(aggregate.Employments) != 0 {
		t.Fatalf("expected no employments for carol, got %+v", aggregate.Employments)
	}

	_, found, err = repo.FindAggregateForUser("missing", "carol")
	if err != nil {
		t.Fatalf("find missing aggregate: %v", err)
	}
	if found {
		t.Fatal("a missing group must report found=false")
	}
}

func TestListSlugsWithPrefix(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewGroupRepository(database)

	seedUser(t, database, "alice")
	for _, slug := range []string{"yoga", "yoga-1", "yoga-retreat"} {
		group := models.Group{
			ID:                    "id-" + slug,
			Name:                  "Name " + slug,
			Slug:                  slug,
			OwnedBy:               "alice",
			DefaultTimezoneOffset: "+00:00",
			CreatedAt:             time.Now().UTC(),
		}
		if err := database.Create(&group).Error; err != nil {
			t.Fatalf("seed group %s: %v", slug, err)
		}
	}

	slugs, err := repo.ListSlugsWithPrefix("yoga")
	if err != nil {
		t.Fatalf("list slugs: %v", err)
	}
	// "yoga-retreat" matches the LIKE pattern and is harmless for suffix counting
	if len(slugs) != 3 {
		t.Fatalf("expected 3 slugs, got %v", slugs)
	}
}

func TestListForUserCoversAllRoles(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewGroupRepository(database)

	seedUser(t, database, "alice")
	seedUser(t, database, "bob")
	owned := seedGroup(t, database, "owned", "bob")
	staffed := seedGroup(t, database, "staffed", "alice")
	joined := seedGroup(t, database, "joined", "alice")
	seedGroup(t, database, "unrelated", "alice")

	employment := models.Employment{
		GroupID: staffed.ID, UserID: "bob", Role: models.RoleStaff,
		CreatedBy: "alice", CreatedAt: time.Now().UTC(),
	}
	if err := database.Create(&employment).Error; err != nil {
		t.Fatalf("seed employment: %v", err)
	}
	seedMembership(t, database, joined.ID, "bob")

	groups, err := repo.ListForUser("bob")
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups for bob, got %d", len(groups))
	}
	seen := make(map[string]bool, len(groups))
	for _, group := range groups {
		seen[group.ID] = true
	}
	for _, expected := range []string{owned.ID, staffed.ID, joined.ID} {
		if !seen[expected] {
			t.Fatalf("expected group %s in bob's list", expected)
		}
	}
}

func TestCreateEmploymentIfAbsent(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewGroupRepository(database)

	seedUser(t, database, "alice")
	seedUser(t, database, "bob")
	group := seedGroup(t, database, "g1", "alice")

	employment := models.Employment{
		GroupID: group.ID, UserID: "bob", Role: models.RoleStaff,
		CreatedBy: "alice", CreatedAt: time.Now().UTC(),
	}
	created, err := repo.CreateEmploymentIfAbsent(&employment)
	if err != nil {
		t.Fatalf("create employment: %v", err)
	}
	if !created {
		t.Fatal("expected the employment to be created")
	}

	duplicate := employment
	created, err = repo.CreateEmploymentIfAbsent(&duplicate)
	if err != nil {
		t.Fatalf("duplicate employment: %v", err)
	}
	if created {
		t.Fatal("a duplicate employment must not be created")
	}
}
