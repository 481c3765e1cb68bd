package repositoryImp

import (
	"gorm.io/gorm"

	"docpal/entities"
	"docpal/pkg/chat/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ChatRepository { return &repo{db} }

func (r *repo) Append(t *entities.ChatTurn) error { return r.db.Create(t).Error }

func (r *repo) ListByUser(userID string, limit int) ([]entities.ChatTurn, error) {
	q := r.db.Where("user_id = ?", userID).Order("created_at asc, turn_id asc")
	if limit > 0 {
		// newest N, returned oldest-first
		var newest []entities.ChatTurn
		sub := r.db.Model(&entities.ChatTurn{}).Where("user_id = ?", userID).
			Order("created_at desc, turn_id desc").Limit(limit)
		if err := sub.Find(&newest).Error; err != nil {
			return nil, err
		}
		for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
			newest[i], newest[j] = newest[j], newest[i]
		}
		return newest, nil
	}
	var ts []entities.ChatTurn
	return ts, q.Find(&ts).Error
}
