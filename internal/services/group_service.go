package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mgcruz/rollcall/internal/models"
)

type GroupTxStore interface {
	CreateGroup(group *models.Group) error
	CreateEmploymentIfAbsent(employment *models.Employment) (bool, error)
}

type GroupStore interface {
	GroupTxStore
	FindAggregateForUser(groupID string, userID string) (models.Group, bool, error)
	FindAggregateBySlugForUser(slug string, userID string) (models.Group, bool, error)
	ExistsByName(name string, excludeGroupID string) (bool, error)
	ListSlugsWithPrefix(prefix string) ([]string, error)
	ListForUser(userID string) ([]models.Group, error)
	UpdateGroup(groupID string, updates map[string]any) error
	DeleteGroup(groupID string) error
	DeleteEmployment(groupID string, userID string) (int64, error)
	ListEmployments(groupID string) ([]models.Employment, error)
	InTransaction(fn func(tx GroupTxStore) error) error
}

type GroupService struct {
	groups        GroupStore
	defaultOffset string
	now           func() time.Time
}

func NewGroupService(groups GroupStore, defaultOffset string, now func() time.Time) *GroupService {
	if defaultOffset == "" {
		defaultOffset = models.DefaultTimezoneOffset
	}
	if now == nil {
		now = time.Now
	}
	return &GroupService{groups: groups, defaultOffset: defaultOffset, now: now}
}

type CreateGroupInput struct {
	Name                  string
	DefaultTimezoneOffset string
}

// CreateGroup inserts the group and the owner's employment in one
// transaction, so a group never exists without its owner on staff. Slug
// collisions get a numeric suffix.
func (service *GroupService) CreateGroup(owner *models.User, input CreateGroupInput) (*models.Group, error) {
	if owner == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	name := input.Name
	if name == "" {
		return nil, ValidationError("group name is required")
	}

	offset := input.DefaultTimezoneOffset
	if offset == "" {
		offset = service.defaultOffset
	}
	if _, err := OffsetToMinutes(offset); err != nil {
		return nil, err
	}

	exists, err := service.groups.ExistsByName(name, "")
	if err != nil {
		return nil, TransactionError("check group name", err)
	}
	if exists {
		return nil, ConflictError("group name already exists")
	}

	base := Slugify(name)
	if base == "" {
		return nil, ValidationError("group name must contain letters or digits")
	}
	taken, err := service.groups.ListSlugsWithPrefix(base)
	if err != nil {
		return nil, TransactionError("check group slug", err)
	}

	group := models.Group{
		ID:                    uuid.NewString(),
		Name:                  name,
		Slug:                  NextAvailableSlug(base, taken),
		OwnedBy:               owner.ID,
		DefaultTimezoneOffset: NormalizeOffset(offset),
		CreatedAt:             service.now().UTC(),
	}

	err = service.groups.InTransaction(func(tx GroupTxStore) error {
		if err := tx.CreateGroup(&group); err != nil {
			return err
		}
		created, err := tx.CreateEmploymentIfAbsent(&models.Employment{
			GroupID:   group.ID,
			UserID:    owner.ID,
			Role:      models.RoleOwner,
			CreatedBy: owner.ID,
			CreatedAt: group.CreatedAt,
		})
		if err != nil {
			return err
		}
		if !created {
			return errors.New("owner employment not created")
		}
		return nil
	})
	if err != nil {
		return nil, AsDomainError(err, "create group")
	}
	return &group, nil
}

// FindForUser loads a group aggregate with the acting user's employment and
// membership rows preloaded, ready for the authorization predicates.
func (service *GroupService) FindForUser(groupID string, userID string) (*models.Group, error) {
	group, found, err := service.groups.FindAggregateForUser(groupID, userID)
	if err != nil {
		return nil, TransactionError("load group", err)
	}
	if !found {
		return nil, NotFoundError("group does not exist")
	}
	return &group, nil
}

func (service *GroupService) FindBySlugForUser(slug string, userID string) (*models.Group, error) {
	group, found, err := service.groups.FindAggregateBySlugForUser(slug, userID)
	if err != nil {
		return nil, TransactionError("load group", err)
	}
	if !found {
		return nil, NotFoundError("group does not exist")
	}
	return &group, nil
}

func (service *GroupService) ListForUser(requester *models.User) ([]models.Group, error) {
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	groups, err := service.groups.ListForUser(requester.ID)
	if err != nil {
		return nil, TransactionError("list groups", err)
	}
	return groups, nil
}

type UpdateGroupInput struct {
	Name                  *string
	DefaultTimezoneOffset *string
}

func (service *GroupService) UpdateGroup(group *models.Group, requester *models.User, input UpdateGroupInput) error {
	if group == nil {
		return NotFoundError("group does not exist")
	}
	if requester == nil {
		return AuthenticationError("user is not authenticated")
	}
	if !IsOwner(group, requester.ID) {
		return AuthorizationError("only the group owner can update the group")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return ValidationError("group name is required")
		}
		exists, err := service.groups.ExistsByName(*input.Name, group.ID)
		if err != nil {
			return TransactionError("check group name", err)
		}
		if exists {
			return ConflictError("group name already exists")
		}
		updates["name"] = *input.Name
	}
	if input.DefaultTimezoneOffset != nil {
		if _, err := OffsetToMinutes(*input.DefaultTimezoneOffset); err != nil {
			return err
		}
		updates["default_timezone_offset"] = NormalizeOffset(*input.DefaultTimezoneOffset)
	}
	if len(updates) == 0 {
		return ValidationError("nothing to update")
	}

	if err := service.groups.UpdateGroup(group.ID, updates); err != nil {
		return TransactionError("update group", err)
	}
	return nil
}

func (service *GroupService) DeleteGroup(group *models.Group, requester *models.User) error {
	if group == nil {
		return NotFoundError("group does not exist")
	}
	if requester == nil {
		return AuthenticationError("user is not authenticated")
	}
	if !IsOwner(group, requester.ID) {
		return AuthorizationError("only the group owner can delete the group")
	}

	if err := service.groups.DeleteGroup(group.ID); err != nil {
		return TransactionError("delete group", err)
	}
	return nil
}

// AddStaff creates staff employments for the given users. Existing
// employments are skipped; nothing new is a conflict.
func (service *GroupService) AddStaff(group *models.Group, requester *models.User, userIDs []string) ([]models.Employment, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !IsOwner(group, requester.ID) {
		return nil, AuthorizationError("only the group owner can add staff")
	}
	targetUserIDs := dedupeStrings(userIDs)
	if len(targetUserIDs) == 0 {
		return nil, ValidationError("at least one user id is required")
	}

	createdAt := service.now().UTC()
	created := make([]models.Employment, 0, len(targetUserIDs))
	for _, userID := range targetUserIDs {
		employment := models.Employment{
			GroupID:   group.ID,
			UserID:    userID,
			Role:      models.RoleStaff,
			CreatedBy: requester.ID,
			CreatedAt: createdAt,
		}
		inserted, err := service.groups.CreateEmploymentIfAbsent(&employment)
		if err != nil {
			return nil, TransactionError("add staff", err)
		}
		if inserted {
			created = append(created, employment)
		}
	}
	if len(created) == 0 {
		return nil, ConflictError("all requested users are already staff")
	}
	return created, nil
}

func (service *GroupService) RemoveStaff(group *models.Group, requester *models.User, userID string) error {
	if group == nil {
		return NotFoundError("group does not exist")
	}
	if requester == nil {
		return AuthenticationError("user is not authenticated")
	}
	if !IsOwner(group, requester.ID) {
		return AuthorizationError("only the group owner can remove staff")
	}
	if userID == "" {
		return ValidationError("user id is required")
	}
	if userID == group.OwnedBy {
		return ValidationError("the group owner cannot be removed from staff")
	}

	deleted, err := service.groups.DeleteEmployment(group.ID, userID)
	if err != nil {
		return TransactionError("remove staff", err)
	}
	if deleted == 0 {
		return NotFoundError("employment does not exist")
	}
	return nil
}

func (service *GroupService) ListEmployments(group *models.Group, requester *models.User) ([]models.Employment, error) {
	if group == nil {
		return nil, NotFoundError("group does not exist")
	}
	if requester == nil {
		return nil, AuthenticationError("user is not authenticated")
	}
	if !CanManage(group, requester.ID) {
		return nil, AuthorizationError("only the group owner or staff can list employments")
	}

	employments, err := service.groups.ListEmployments(group.ID)
	if err != nil {
		return nil, TransactionError("list employments", err)
	}
	return employments, nil
}
