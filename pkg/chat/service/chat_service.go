package service

import (
	"context"
	"errors"

	"docpal/entities"
)

var (
	ErrUnauthenticated = errors.New("user id is required")
	ErrEmptyMessage    = errors.New("content is required")

	// ErrNoResponse means the assistant answered with empty content. The
	// user turn stays persisted; the missing reply is recoverable on the
	// next history load.
	ErrNoResponse = errors.New("assistant did not provide a response")
)

type ChatService interface {
	// Converse loads the user's full ordered history, appends the new turn,
	// submits the sequence to the tenant's assistant and returns the reply.
	// The user turn is persisted before the assistant call, the assistant
	// turn right after the reply.
	Converse(ctx context.Context, tenant, userID, content string) (string, error)

	History(userID string) ([]entities.ChatTurn, error)
}
