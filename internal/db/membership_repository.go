package db

import (
	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct {
	database *gorm.DB
}

func NewMembershipRepository(database *gorm.DB) *MembershipRepository {
	return &MembershipRepository{database: database}
}

func (repo *MembershipRepository) IsMember(groupID string, userID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Membership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// ListMemberUserIDs narrows a candidate user id set to those that actually
// hold a membership in the group.
func (repo *MembershipRepository) ListMemberUserIDs(groupID string, userIDs []string) ([]string, error) {
	memberUserIDs := make([]string, 0, len(userIDs))
	if len(userIDs) == 0 {
		return memberUserIDs, nil
	}
	if err := repo.database.Model(&models.Membership{}).
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Pluck("user_id", &memberUserIDs).Error; err != nil {
		return nil, err
	}
	return memberUserIDs, nil
}

func (repo *MembershipRepository) ListMemberships(groupID string) ([]models.Membership, error) {
	memberships := make([]models.Membership, 0)
	if err := repo.database.
		Where("group_id = ?", groupID).
		Order("created_at ASC, user_id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (repo *MembershipRepository) ListJoinRequests(groupID string) ([]models.JoinRequest, error) {
	requests := make([]models.JoinRequest, 0)
	if err := repo.database.
		Where("group_id = ?", groupID).
		Order("created_at ASC, user_id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (repo *MembershipRepository) CreateJoinRequestIfAbsent(request *models.JoinRequest) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(request)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *MembershipRepository) UpdateJoinRequestEvaluations(groupID string, userIDs []string, patch services.EvaluationPatch) (int64, error) {
	result := repo.database.Model(&models.JoinRequest{}).
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Updates(map[string]any{
			"confirmed":    patch.Confirmed(),
			"evaluated_by": patch.EvaluatedBy,
			"evaluated_at": patch.EvaluatedAt,
		})
	return result.RowsAffected, result.Error
}

// DeleteJoinRequestsReturning deletes the matching requests and returns the
// deleted rows, so approval can carry invited_by over to the new memberships.
func (repo *MembershipRepository) DeleteJoinRequestsReturning(groupID string, userIDs []string) ([]models.JoinRequest, error) {
	requests := make([]models.JoinRequest, 0, len(userIDs))
	if err := repo.database.
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return requests, nil
	}

	if err := repo.database.
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Delete(&models.JoinRequest{}).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (repo *MembershipRepository) DeleteJoinRequests(groupID string, userIDs []string) (int64, error) {
	result := repo.database.
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Delete(&models.JoinRequest{})
	return result.RowsAffected, result.Error
}

// InsertMembershipsIgnoringDuplicates bulk-inserts memberships with conflict
// target (group_id, user_id) do-nothing, and reports only the rows that were
// actually new.
func (repo *MembershipRepository) InsertMembershipsIgnoringDuplicates(memberships []models.Membership) ([]models.Membership, error) {
	if len(memberships) == 0 {
		return []models.Membership{}, nil
	}

	groupID := memberships[0].GroupID
	candidateUserIDs := make([]string, 0, len(memberships))
	for _, membership := range memberships {
		candidateUserIDs = append(candidateUserIDs, membership.UserID)
	}

	existingUserIDs, err := repo.ListMemberUserIDs(groupID, candidateUserIDs)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]struct{}, len(existingUserIDs))
	for _, userID := range existingUserIDs {
		existing[userID] = struct{}{}
	}

	fresh := make([]models.Membership, 0, len(memberships))
	for _, membership := range memberships {
		if _, alreadyMember := existing[membership.UserID]; alreadyMember {
			continue
		}
		fresh = append(fresh, membership)
	}
	if len(fresh) == 0 {
		return []models.Membership{}, nil
	}

	if err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

func (repo *MembershipRepository) InTransaction(fn func(tx services.MembershipTxStore) error) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return fn(&MembershipRepository{database: tx})
	})
}
