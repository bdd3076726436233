package db

import (
	"errors"

	"github.com/mgcruz/rollcall/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

// CreateSessionIfAbsent inserts the session unless an identical slot
// (group, name, day, start, end, offset) already exists.
func (repo *SessionRepository) CreateSessionIfAbsent(session *models.GroupSession) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "group_id"}, {Name: "name"}, {Name: "day"},
			{Name: "start_at"}, {Name: "end_at"}, {Name: "timezone_offset"},
		},
		DoNothing: true,
	}).Create(session)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *SessionRepository) FindByID(groupID string, sessionID string) (models.GroupSession, bool, error) {
	var session models.GroupSession
	err := repo.database.
		Where("group_id = ? AND id = ?", groupID, sessionID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GroupSession{}, false, nil
		}
		return models.GroupSession{}, false, err
	}
	return session, true, nil
}

func (repo *SessionRepository) ListByGroup(groupID string, activeOnly bool) ([]models.GroupSession, error) {
	query := repo.database.Where("group_id = ?", groupID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	sessions := make([]models.GroupSession, 0)
	if err := query.Order("day ASC, start_at ASC, name ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (repo *SessionRepository) UpdateSession(groupID string, sessionID string, updates map[string]any) (int64, error) {
	result := repo.database.Model(&models.GroupSession{}).
		Where("group_id = ? AND id = ?", groupID, sessionID).
		Updates(updates)
	return result.RowsAffected, result.Error
}
