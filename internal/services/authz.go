package services

import "github.com/mgcruz/rollcall/internal/models"

// Role predicates over a group aggregate whose employments/memberships were
// preloaded for the acting user. They are pure lookups; callers are expected
// to have fetched the aggregate with FindAggregateForUser.

func IsOwner(group *models.Group, userID string) bool {
	return group != nil && userID != "" && group.OwnedBy == userID
}

func IsStaff(group *models.Group, userID string) bool {
	if group == nil || userID == "" {
		return false
	}
	for _, employment := range group.Employments {
		if employment.UserID == userID {
			return true
		}
	}
	return false
}

func IsMember(group *models.Group, userID string) bool {
	if group == nil || userID == "" {
		return false
	}
	for _, membership := range group.Memberships {
		if membership.UserID == userID {
			return true
		}
	}
	return false
}

func CanManage(group *models.Group, userID string) bool {
	return IsOwner(group, userID) || IsStaff(group, userID)
}
