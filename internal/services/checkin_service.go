package services

import (
	"time"

	"github.com/mgcruz/rollcall/internal/models"
)

// EvaluationPatch names exactly the fields a bulk evaluation update may touch.
// Pending clears all three; Approved/Rejected set all three.
type EvaluationPatch struct {
	State       models.Evaluation
	EvaluatedBy *string
	EvaluatedAt *time.Time
}

func (patch EvaluationPatch) Confirmed() *bool {
	return patch.State.Confirmed()
}

type CheckinRepository interface {
	InsertIgnoringDuplicates(checkins []models.MemberCheckin) ([]models.MemberCheckin, error)
	UpdateEvaluations(groupID string, checkinIDs []uint, patch EvaluationPatch) (int64, error)
	ListByGroupAndDateRange(groupID string, begDate string, endDate string, sessionIDs []string, descending bool) ([]models.MemberCheckin, error)
}

type CheckinMembershipRepository interface {
	ListMemberUserIDs(groupID string, userIDs []string) ([]string, error)
}

type CheckinSessionRepository interface {
	FindByID(groupID string, sessionID string) (models.GroupSession, bool, error)
}

type CheckinService struct {
	checkins      CheckinRepository
	memberships   CheckinMembershipRepository
	sessions      CheckinSessionRepository
	defaultOffset string
	now           func() time.Time
}

func NewCheckinService(
	checkins CheckinRepository,
	memberships CheckinMembershipRepository,
	sessions CheckinSessionRepository,
	defaultOffset string,
	now func() time.Time,
) *CheckinService {
	if defaultOffset == "" {
		defaultOffset = models.DefaultTimezoneOffset
	}
	if now == nil {
		now = time.Now
	}
	return &CheckinService{
		checkins:      checkins,
		memberships:   memberships,
		sessions:      sessions,
		defaultOffset: defaultOffset,
		now:           now,
	}
}

type RecordCheckinsInput struct {
	SessionID string
	UserIDs   []string
	// CreatedAt overrides "now" as the check-in instant. Owner/staff only.
	CreatedAt *time.Time
}

// RecordCheckins validates, authorizes and bulk-inserts check-in rows for one
// session. Conflicting (session, user, local date) rows are silently skipped;
// an empty result with a nil error means everything already existed.
func (service *CheckinService) RecordCheckins(group *models.Group, requester *models.User, input RecordCheckinsInput) ([]models.MemberCheckin, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if input.SessionID == "" {
		return nil, ValidationError("session id is required")
	}

	targetUserIDs := dedupeStrings(input.UserIDs)
	if len(targetUserIDs) == 0 {
		return nil, ValidationError("at least one user id is required")
	}

	session, found, err := service.sessions.FindByID(group.ID, input.SessionID)
	if err != nil {
		return nil, TransactionError("load group session", err)
	}
	if !found {
		return nil, NotFoundError("group session does not exist")
	}

	manager := CanManage(group, requester.ID)
	if !manager {
		if len(targetUserIDs) > 1 || targetUserIDs[0] != requester.ID {
			return nil, AuthorizationError("only the group owner or staff can check in other users")
		}
		if input.CreatedAt != nil {
			return nil, AuthorizationError("only the group owner or staff can specify a check-in date")
		}
		if !IsMember(group, requester.ID) {
			return nil, AuthorizationError("only group members can check in")
		}
	}

	offset := session.TimezoneOffset
	if offset == "" {
		offset = group.DefaultTimezoneOffset
	}
	if offset == "" {
		offset = service.defaultOffset
	}

	createdAt := service.now().UTC()
	if input.CreatedAt != nil {
		createdAt = input.CreatedAt.UTC()
	}

	dateKey, err := LocalDateKey(offset, createdAt)
	if err != nil {
		return nil, err
	}

	var confirmed *bool
	var evaluatedBy *string
	var evaluatedAt *time.Time
	if manager {
		memberUserIDs, err := service.memberships.ListMemberUserIDs(group.ID, targetUserIDs)
		if err != nil {
			return nil, TransactionError("load memberships", err)
		}
		if len(memberUserIDs) == 0 {
			return nil, ValidationError("memberships do not exist for the requested users")
		}
		targetUserIDs = memberUserIDs

		// Check-ins recorded by the owner or staff are confirmed on the spot.
		confirmed = models.EvaluationApproved.Confirmed()
		evaluatedBy = &requester.ID
		evaluationTime := service.now().UTC()
		evaluatedAt = &evaluationTime
	}

	rows := make([]models.MemberCheckin, 0, len(targetUserIDs))
	for _, userID := range targetUserIDs {
		rows = append(rows, models.MemberCheckin{
			GroupID:     group.ID,
			UserID:      userID,
			SessionID:   session.ID,
			Date:        dateKey,
			CreatedBy:   requester.ID,
			Confirmed:   confirmed,
			EvaluatedBy: evaluatedBy,
			EvaluatedAt: evaluatedAt,
			CreatedAt:   createdAt,
		})
	}

	inserted, err := service.checkins.InsertIgnoringDuplicates(rows)
	if err != nil {
		return nil, TransactionError("record check-ins", err)
	}
	return inserted, nil
}

// EvaluateCheckins applies one evaluation state to a set of check-ins in the
// group. Ids that belong to another group are ignored by the scoped update.
// Zero updated rows is a "nothing to do" outcome, not an error.
func (service *CheckinService) EvaluateCheckins(group *models.Group, requester *models.User, checkinIDs []uint, state models.Evaluation) (int64, error) {
	if group == nil {
		return 0, NotFoundError("group does not exist")
	}
	if requester == nil {
		return 0, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) {
		return 0, AuthorizationError("only the group owner or staff can evaluate check-ins")
	}
	if len(checkinIDs) == 0 {
		return 0, ValidationError("at least one check-in id is required")
	}
	if !state.Valid() {
		return 0, ValidationError("invalid evaluation state")
	}

	patch := EvaluationPatch{State: state}
	if state != models.EvaluationPending {
		patch.EvaluatedBy = &requester.ID
		evaluationTime := service.now().UTC()
		patch.EvaluatedAt = &evaluationTime
	}

	updated, err := service.checkins.UpdateEvaluations(group.ID, checkinIDs, patch)
	if err != nil {
		return 0, TransactionError("evaluate check-ins", err)
	}
	return updated, nil
}

// ListCheckins returns the group's check-ins between two local date keys,
// optionally narrowed to specific sessions.
func (service *CheckinService) ListCheckins(group *models.Group, requester *models.User, begDate string, endDate string, sessionIDs []string, descending bool) ([]models.MemberCheckin, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) && !IsMember(group, requester.ID) {
		return nil, AuthorizationError("only group members, staff or the owner can list check-ins")
	}
	if begDate == "" {
		return nil, ValidationError("begin date is required")
	}
	if endDate == "" {
		endDate = begDate
	}

	checkins, err := service.checkins.ListByGroupAndDateRange(group.ID, begDate, endDate, sessionIDs, descending)
	if err != nil {
		return nil, TransactionError("list check-ins", err)
	}
	return checkins, nil
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	deduped := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		deduped = append(deduped, value)
	}
	return deduped
}
