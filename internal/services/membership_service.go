package services

import (
	"time"

	"github.com/mgcruz/rollcall/internal/models"
)

// MembershipTxStore is the slice of the membership store visible inside one
// database transaction. Returning an error from the transaction closure rolls
// everything back.
type MembershipTxStore interface {
	DeleteJoinRequestsReturning(groupID string, userIDs []string) ([]models.JoinRequest, error)
	InsertMembershipsIgnoringDuplicates(memberships []models.Membership) ([]models.Membership, error)
	DeleteJoinRequests(groupID string, userIDs []string) (int64, error)
}

type MembershipStore interface {
	MembershipTxStore
	IsMember(groupID string, userID string) (bool, error)
	CreateJoinRequestIfAbsent(request *models.JoinRequest) (bool, error)
	UpdateJoinRequestEvaluations(groupID string, userIDs []string, patch EvaluationPatch) (int64, error)
	ListJoinRequests(groupID string) ([]models.JoinRequest, error)
	ListMemberships(groupID string) ([]models.Membership, error)
	InTransaction(fn func(tx MembershipTxStore) error) error
}

// MembershipService drives the join-request / membership state machine:
// NONE -> PENDING -> {APPROVED, REJECTED, back to PENDING}, plus the direct
// NONE -> MEMBER path for staff-initiated additions. A join request and a
// membership for the same (group, user) never coexist.
type MembershipService struct {
	store MembershipStore
	now   func() time.Time
}

func NewMembershipService(store MembershipStore, now func() time.Time) *MembershipService {
	if now == nil {
		now = time.Now
	}
	return &MembershipService{store: store, now: now}
}

// RequestToJoin files a pending join request for the requester. An existing
// membership or request is reported as a conflict, never duplicated.
func (service *MembershipService) RequestToJoin(group *models.Group, requester *models.User, invitedBy *string) (*models.JoinRequest, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}

	alreadyMember, err := service.store.IsMember(group.ID, requester.ID)
	if err != nil {
		return nil, TransactionError("check membership", err)
	}
	if alreadyMember {
		return nil, ConflictError("user is already a member of this group")
	}

	request := models.JoinRequest{
		GroupID:   group.ID,
		UserID:    requester.ID,
		InvitedBy: invitedBy,
		CreatedAt: service.now().UTC(),
	}
	created, err := service.store.CreateJoinRequestIfAbsent(&request)
	if err != nil {
		return nil, TransactionError("create join request", err)
	}
	if !created {
		return nil, ConflictError("join request already exists")
	}
	return &request, nil
}

func (service *MembershipService) WithdrawJoinRequest(group *models.Group, requester *models.User) error {
	if group == nil {
		return NotFoundError("group does not exist")
	}
	if requester == nil {
		return AuthenticationError("user is not authenticated")
	}

	deleted, err := service.store.DeleteJoinRequests(group.ID, []string{requester.ID})
	if err != nil {
		return TransactionError("withdraw join request", err)
	}
	if deleted == 0 {
		return NotFoundError("join request does not exist")
	}
	return nil
}

// EvaluateJoinRequests approves, rejects or resets pending requests.
//
// Approval is all-or-nothing inside one transaction: the matching requests are
// deleted first, then one membership per deleted request is inserted carrying
// over invited_by. Zero deleted requests or zero inserted memberships aborts
// the whole transaction, so a request is never consumed without a membership
// resulting.
func (service *MembershipService) EvaluateJoinRequests(group *models.Group, requester *models.User, userIDs []string, state models.Evaluation) ([]models.Membership, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) {
		return nil, AuthorizationError("only the group owner or staff can evaluate join requests")
	}
	targetUserIDs := dedupeStrings(userIDs)
	if len(targetUserIDs) == 0 {
		return nil, ValidationError("at least one user id is required")
	}
	if !state.Valid() {
		return nil, ValidationError("invalid evaluation state")
	}

	if state != models.EvaluationApproved {
		patch := EvaluationPatch{State: state}
		if state == models.EvaluationRejected {
			patch.EvaluatedBy = &requester.ID
			evaluationTime := service.now().UTC()
			patch.EvaluatedAt = &evaluationTime
		}
		updated, err := service.store.UpdateJoinRequestEvaluations(group.ID, targetUserIDs, patch)
		if err != nil {
			return nil, TransactionError("evaluate join requests", err)
		}
		if updated == 0 {
			return nil, NotFoundError("no join requests found for the requested users")
		}
		return nil, nil
	}

	var inserted []models.Membership
	err := service.store.InTransaction(func(tx MembershipTxStore) error {
		deletedRequests, err := tx.DeleteJoinRequestsReturning(group.ID, targetUserIDs)
		if err != nil {
			return err
		}
		if len(deletedRequests) == 0 {
			return NotFoundError("no join requests found for the requested users")
		}

		memberships := make([]models.Membership, 0, len(deletedRequests))
		createdAt := service.now().UTC()
		for _, request := range deletedRequests {
			memberships = append(memberships, models.Membership{
				GroupID:   group.ID,
				UserID:    request.UserID,
				CreatedBy: requester.ID,
				InvitedBy: request.InvitedBy,
				CreatedAt: createdAt,
			})
		}

		inserted, err = tx.InsertMembershipsIgnoringDuplicates(memberships)
		if err != nil {
			return err
		}
		if len(inserted) == 0 {
			return ConflictError("all requested users are already members")
		}
		return nil
	})
	if err != nil {
		return nil, AsDomainError(err, "approve join requests")
	}
	return inserted, nil
}

// AddMembersDirectly inserts memberships without a prior request and cleans up
// any stale join requests for the same users in the same transaction. Zero new
// memberships aborts the transaction.
func (service *MembershipService) AddMembersDirectly(group *models.Group, requester *models.User, userIDs []string, invitedBy *string) ([]models.Membership, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) {
		return nil, AuthorizationError("only the group owner or staff can add members")
	}
	targetUserIDs := dedupeStrings(userIDs)
	if len(targetUserIDs) == 0 {
		return nil, ValidationError("at least one user id is required")
	}

	memberships := make([]models.Membership, 0, len(targetUserIDs))
	createdAt := service.now().UTC()
	for _, userID := range targetUserIDs {
		memberships = append(memberships, models.Membership{
			GroupID:   group.ID,
			UserID:    userID,
			CreatedBy: requester.ID,
			InvitedBy: invitedBy,
			CreatedAt: createdAt,
		})
	}

	var inserted []models.Membership
	err := service.store.InTransaction(func(tx MembershipTxStore) error {
		var err error
		inserted, err = tx.InsertMembershipsIgnoringDuplicates(memberships)
		if err != nil {
			return err
		}
		if len(inserted) == 0 {
			return ConflictError("all requested users are already members")
		}

		// A directly added member no longer needs a pending request, if any.
		if _, err := tx.DeleteJoinRequests(group.ID, targetUserIDs); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, AsDomainError(err, "add members")
	}
	return inserted, nil
}

func (service *MembershipService) ListJoinRequests(group *models.Group, requester *models.User) ([]models.JoinRequest, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) {
		return nil, AuthorizationError("only the group owner or staff can list join requests")
	}

	requests, err := service.store.ListJoinRequests(group.ID)
	if err != nil {
		return nil, TransactionError("list join requests", err)
	}
	return requests, nil
}

func (service *MembershipService) ListMemberships(group *models.Group, requester *models.User) ([]models.Membership, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) && !IsMember(group, requester.ID) {
		return nil, AuthorizationError("only group members, staff or the owner can list memberships")
	}

	memberships, err := service.store.ListMemberships(group.ID)
	if err != nil {
		return nil, TransactionError("list memberships", err)
	}
	return memberships, nil
}
