package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/mgcruz/rollcall/internal/models"
)

type SessionStore interface {
	CreateSessionIfAbsent(session *models.GroupSession) (bool, error)
	FindByID(groupID string, sessionID string) (models.GroupSession, bool, error)
	ListByGroup(groupID string, activeOnly bool) ([]models.GroupSession, error)
	UpdateSession(groupID string, sessionID string, updates map[string]any) (int64, error)
}

type SessionService struct {
	sessions SessionStore
	now      func() time.Time
}

func NewSessionService(sessions SessionStore, now func() time.Time) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{sessions: sessions, now: now}
}

type CreateSessionInput struct {
	Name           string
	Day            int
	StartAt        string
	EndAt          string
	TimezoneOffset string
}

func (service *SessionService) CreateSession(group *models.Group, requester *models.User, input CreateSessionInput) (*models.GroupSession, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) {
		return nil, AuthorizationError("only the group owner or staff can create sessions")
	}
	if input.Name == "" {
		return nil, ValidationError("session name is required")
	}
	if input.Day < 0 || input.Day > 6 {
		return nil, ValidationError("day must be between 0 and 6")
	}
	if !validTimeOfDay(input.StartAt) || !validTimeOfDay(input.EndAt) {
		return nil, ValidationError("start and end must be HH:MM times")
	}

	offset := input.TimezoneOffset
	if offset == "" {
		offset = group.DefaultTimezoneOffset
	}
	if _, err := OffsetToMinutes(offset); err != nil {
		return nil, err
	}

	session := models.GroupSession{
		ID:             uuid.NewString(),
		GroupID:        group.ID,
		Name:           input.Name,
		Day:            input.Day,
		StartAt:        input.StartAt,
		EndAt:          input.EndAt,
		TimezoneOffset: NormalizeOffset(offset),
		Active:         true,
		CreatedBy:      requester.ID,
		CreatedAt:      service.now().UTC(),
	}
	created, err := service.sessions.CreateSessionIfAbsent(&session)
	if err != nil {
		return nil, TransactionError("create session", err)
	}
	if !created {
		return nil, ConflictError("an identical session slot already exists")
	}
	return &session, nil
}

func (service *SessionService) ListSessions(group *models.Group, requester *models.User, activeOnly bool) ([]models.GroupSession, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) && !IsMember(group, requester.ID) {
		return nil, AuthorizationError("only group members, staff or the owner can list sessions")
	}

	sessions, err := service.sessions.ListByGroup(group.ID, activeOnly)
	if err != nil {
		return nil, TransactionError("list sessions", err)
	}
	return sessions, nil
}

type UpdateSessionInput struct {
	Name           *string
	Day            *int
	StartAt        *string
	EndAt          *string
	TimezoneOffset *string
	Active         *bool
}

func (service *SessionService) UpdateSession(group *models.Group, requester *models.User, sessionID string, input UpdateSessionInput) error {
	if group == nil {
		return NotFoundError("group does not exist")
	}
	if requester == nil {
		return AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) {
		return AuthorizationError("only the group owner or staff can update sessions")
	}
	if sessionID == "" {
		return ValidationError("session id is required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return ValidationError("session name is required")
		}
		updates["name"] = *input.Name
	}
	if input.Day != nil {
		if *input.Day < 0 || *input.Day > 6 {
			return ValidationError("day must be between 0 and 6")
		}
		updates["day"] = *input.Day
	}
	if input.StartAt != nil {
		if !validTimeOfDay(*input.StartAt) {
			return ValidationError("start must be an HH:MM time")
		}
		updates["start_at"] = *input.StartAt
	}
	if input.EndAt != nil {
		if !validTimeOfDay(*input.EndAt) {
			return ValidationError("end must be an HH:MM time")
		}
		updates["end_at"] = *input.EndAt
	}
	if input.TimezoneOffset != nil {
		if _, err := OffsetToMinutes(*input.TimezoneOffset); err != nil {
			return err
		}
		updates["timezone_offset"] = NormalizeOffset(*input.TimezoneOffset)
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if len(updates) == 0 {
		return ValidationError("nothing to update")
	}
	updates["last_edited_at"] = service.now().UTC()

	updated, err := service.sessions.UpdateSession(group.ID, sessionID, updates)
	if err != nil {
		return TransactionError("update session", err)
	}
	if updated == 0 {
		return NotFoundError("group session does not exist")
	}
	return nil
}

func validTimeOfDay(value string) bool {
	if _, err := time.Parse("15:04", value); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", value)
	return err == nil
}
