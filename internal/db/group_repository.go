package db

import (
	"errors"

	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GroupRepository struct {
	database *gorm.DB
}

func NewGroupRepository(database *gorm.DB) *GroupRepository {
	return &GroupRepository{database: database}
}

// FindAggregateForUser loads the group with the acting user's employment and
// membership rows preloaded, which is all the authorization predicates need.
func (repo *GroupRepository) FindAggregateForUser(groupID string, userID string) (models.Group, bool, error) {
	return repo.findAggregate("id = ?", groupID, userID)
}

func (repo *GroupRepository) FindAggregateBySlugForUser(slug string, userID string) (models.Group, bool, error) {
	return repo.findAggregate("slug = ?", slug, userID)
}

func (repo *GroupRepository) findAggregate(condition string, value string, userID string) (models.Group, bool, error) {
	var group models.Group
	err := repo.database.
		Preload("Employments", "user_id = ?", userID).
		Preload("Memberships", "user_id = ?", userID).
		Where(condition, value).
		First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Group{}, false, nil
		}
		return models.Group{}, false, err
	}
	return group, true, nil
}

func (repo *GroupRepository) ExistsByName(name string, excludeGroupID string) (bool, error) {
	query := repo.database.Model(&models.Group{}).Where("name = ?", name)
	if excludeGroupID != "" {
		query = query.Where("id <> ?", excludeGroupID)
	}

	var matched int64
	if err := query.Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *GroupRepository) ListSlugsWithPrefix(prefix string) ([]string, error) {
	slugs := make([]string, 0)
	if err := repo.database.Model(&models.Group{}).
		Where("slug = ? OR slug LIKE ?", prefix, prefix+"-%").
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// ListForUser returns every group the user owns, works for or belongs to.
func (repo *GroupRepository) ListForUser(userID string) ([]models.Group, error) {
	groups := make([]models.Group, 0)
	employmentGroupIDs := repo.database.Model(&models.Employment{}).Select("group_id").Where("user_id = ?", userID)
	membershipGroupIDs := repo.database.Model(&models.Membership{}).Select("group_id").Where("user_id = ?", userID)

	if err := repo.database.
		Where("owned_by = ? OR id IN (?) OR id IN (?)", userID, employmentGroupIDs, membershipGroupIDs).
		Order("created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (repo *GroupRepository) CreateGroup(group *models.Group) error {
	return repo.database.Create(group).Error
}

func (repo *GroupRepository) UpdateGroup(groupID string, updates map[string]any) error {
	return repo.database.Model(&models.Group{}).Where("id = ?", groupID).Updates(updates).Error
}

func (repo *GroupRepository) DeleteGroup(groupID string) error {
	return repo.database.Where("id = ?", groupID).Delete(&models.Group{}).Error
}

func (repo *GroupRepository) CreateEmploymentIfAbsent(employment *models.Employment) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(employment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *GroupRepository) DeleteEmployment(groupID string, userID string) (int64, error) {
	result := repo.database.
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.Employment{})
	return result.RowsAffected, result.Error
}

func (repo *GroupRepository) ListEmployments(groupID string) ([]models.Employment, error) {
	employments := make([]models.Employment, 0)
	if err := repo.database.
		Where("group_id = ?", groupID).
		Order("created_at ASC, user_id ASC").
		Find(&employments).Error; err != nil {
		return nil, err
	}
	return employments, nil
}

func (repo *GroupRepository) InTransaction(fn func(tx services.GroupTxStore) error) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return fn(&GroupRepository{database: tx})
	})
}
