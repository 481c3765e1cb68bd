package repository

import "docpal/entities"

type ChatRepository interface {
	Append(t *entities.ChatTurn) error

	// ListByUser returns the user's turns ordered by creation time
	// ascending. limit 0 returns the full history.
	ListByUser(userID string, limit int) ([]entities.ChatTurn, error)
}
