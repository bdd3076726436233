package db

import (
	"github.com/mgcruz/rollcall/internal/models"
	"github.com/mgcruz/rollcall/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckinRepository struct {
	database *gorm.DB
}

func NewCheckinRepository(database *gorm.DB) *CheckinRepository {
	return &CheckinRepository{database: database}
}

// InsertIgnoringDuplicates bulk-inserts check-ins with conflict target
// (session_id, user_id, date) do-nothing and returns only the rows that are
// new. Re-submitting the same user/session/day yields an empty result, not an
// error. The whole call runs in one transaction so the reported set matches
// what was written.
func (repo *CheckinRepository) InsertIgnoringDuplicates(checkins []models.MemberCheckin) ([]models.MemberCheckin, error) {
	inserted := make([]models.MemberCheckin, 0, len(checkins))
	if len(checkins) == 0 {
		return inserted, nil
	}

	sessionID := checkins[0].SessionID
	dateKey := checkins[0].Date
	candidateUserIDs := make([]string, 0, len(checkins))
	for _, checkin := range checkins {
		candidateUserIDs = append(candidateUserIDs, checkin.UserID)
	}

	err := repo.database.Transaction(func(tx *gorm.DB) error {
		existingUserIDs := make([]string, 0, len(candidateUserIDs))
		if err := tx.Model(&models.MemberCheckin{}).
			Where("session_id = ? AND date = ? AND user_id IN ?", sessionID, dateKey, candidateUserIDs).
			Pluck("user_id", &existingUserIDs).Error; err != nil {
			return err
		}
		existing := make(map[string]struct{}, len(existingUserIDs))
		for _, userID := range existingUserIDs {
			existing[userID] = struct{}{}
		}

		for _, checkin := range checkins {
			if _, alreadyCheckedIn := existing[checkin.UserID]; alreadyCheckedIn {
				continue
			}
			inserted = append(inserted, checkin)
		}
		if len(inserted) == 0 {
			return nil
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).Create(&inserted).Error
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// UpdateEvaluations applies the patch to the given check-ins, scoped to the
// group so ids from other groups are ignored rather than trusted.
func (repo *CheckinRepository) UpdateEvaluations(groupID string, checkinIDs []uint, patch services.EvaluationPatch) (int64, error) {
	result := repo.database.Model(&models.MemberCheckin{}).
		Where("group_id = ? AND id IN ?", groupID, checkinIDs).
		Updates(map[string]any{
			"confirmed":    patch.Confirmed(),
			"evaluated_by": patch.EvaluatedBy,
			"evaluated_at": patch.EvaluatedAt,
		})
	return result.RowsAffected, result.Error
}

func (repo *CheckinRepository) ListByGroupAndDateRange(groupID string, begDate string, endDate string, sessionIDs []string, descending bool) ([]models.MemberCheckin, error) {
	query := repo.database.
		Where("group_id = ? AND date BETWEEN ? AND ?", groupID, begDate, endDate)
	if len(sessionIDs) > 0 {
		query = query.Where("session_id IN ?", sessionIDs)
	}

	order := "date ASC, id ASC"
	if descending {
		order = "date DESC, id DESC"
	}

	checkins := make([]models.MemberCheckin, 0)
	if err := query.Order(order).Find(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}
