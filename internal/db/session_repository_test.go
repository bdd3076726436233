package db

import (
	"testing"
	"time"

	"github.com/mgcruz/rollcall/internal/models"
)

func sessionRow(sessionID string, groupID string, name string, day int) models.GroupSession {
	return models.GroupSession{
		ID:             sessionID,
		GroupID:        groupID,
		Name:           name,
		Day:            day,
		StartAt:        "18:00",
		EndAt:          "19:00",
		TimezoneOffset: "+00:00",
		Active:         true,
		CreatedBy:      "seed",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestCreateSessionIfAbsentRejectsIdenticalSlot(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewSessionRepository(database)

	seedUser(t, database, "alice")
	group := seedGroup(t, database, "g1", "alice")

	first := sessionRow("s1", group.ID, "Evening Class", 3)
	created, err := repo.CreateSessionIfAbsent(&first)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if !created {
		t.Fatal("expected the session to be created")
	}

	duplicate := sessionRow("s2", group.ID, "Evening Class", 3)
	created, err = repo.CreateSessionIfAbsent(&duplicate)
	if err != nil {
		t.Fatalf("duplicate slot: %v", err)
	}
	if created {
		t.Fatal("an identical slot must not be created")
	}

	// same name on another day is a distinct slot
	otherDay := sessionRow("s3", group.ID, "Evening Class", 5)
	created, err = repo.CreateSessionIfAbsent(&otherDay)
	if err != nil {
		t.Fatalf("other day: %v", err)
	}
	if !created {
		t.Fatal("the same name on another day must be allowed")
	}
}

func TestListByGroupActiveFilter(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewSessionRepository(database)

	seedUser(t, database, "alice")
	group := seedGroup(t, database, "g1", "alice")

	active := sessionRow("s1", group.ID, "Active Class", 1)
	retired := sessionRow("s2", group.ID, "Retired Class", 2)
	retired.Active = false
	for _, session := range []*models.GroupSession{&active, &retired} {
		if _, err := repo.CreateSessionIfAbsent(session); err != nil {
			t.Fatalf("seed session %s: %v", session.ID, err)
		}
	}

	all, err := repo.ListByGroup(group.ID, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(all))
	}

	onlyActive, err := repo.ListByGroup(group.ID, true)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(onlyActive) != 1 || onlyActive[0].ID != "s1" {
		t.Fatalf("expected only the active session, got %+v", onlyActive)
	}
}

func TestUpdateSessionIsGroupScoped(t *testing.T) {
	database := openTestDatabase(t)
	repo := NewSessionRepository(database)

	seedUser(t, database, "alice")
	groupA := seedGroup(t, database, "ga", "alice")
	groupB := seedGroup(t, database, "gb", "alice")
	session := sessionRow("s1", groupA.ID, "Class", 1)
	if _, err := repo.CreateSessionIfAbsent(&session); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	updated, err := repo.UpdateSession(groupB.ID, session.ID, map[string]any{"active": false})
	if err != nil {
		t.Fatalf("cross-group update: %v", err)
	}
	if updated != 0 {
		t.Fatal("a session must not be updatable through another group")
	}

	updated, err = repo.UpdateSession(groupA.ID, session.ID, map[string]any{"active": false})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != 1 {
		t.Fatalf("expected 1 updated row, got %d", updated)
	}
}
