package serviceImp

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"docpal/entities"
	"docpal/pkg/assistant"
	"docpal/pkg/chat/repository"
	"docpal/pkg/chat/service"
	"docpal/pkg/provision"
)

type Svc struct {
	prov provision.Ensurer
	repo repository.ChatRepository
	log  *zap.Logger
}

func New(p provision.Ensurer, r repository.ChatRepository, log *zap.Logger) *Svc {
	return &Svc{prov: p, repo: r, log: log}
}

func (s *Svc) Converse(ctx context.Context, tenant, userID, content string) (string, error) {
	if userID == "" {
		return "", service.ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", service.ErrEmptyMessage
	}

	// full history, unbounded; the repository supports windowing when a
	// cap is decided
	history, err := s.repo.ListByUser(userID, 0)
	if err != nil {
		s.log.Error("history load failed", zap.String("user", userID), zap.Error(err))
		history = nil
	}
	messages := make([]assistant.Message, 0, len(history)+1)
	for _, t := range history {
		messages = append(messages, assistant.Message{Role: t.Role, Content: t.Content})
	}
	messages = append(messages, assistant.Message{Role: "user", Content: content})

	handle, err := s.prov.Ensure(ctx, tenant)
	if err != nil {
		return "", err
	}

	// the user turn goes down before the assistant call: a crash afterwards
	// leaves at most a question without an answer, never the reverse
	userTurn := &entities.ChatTurn{UserID: userID, Role: "user", Content: content, CreatedAt: time.Now()}
	if err := s.repo.Append(userTurn); err != nil {
		s.log.Error("persist user turn failed",
			zap.String("tenant", tenant), zap.String("user", userID), zap.Error(err))
	}

	reply, err := handle.Chat(ctx, messages)
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", service.ErrNoResponse
	}

	if err := s.repo.Append(&entities.ChatTurn{
		UserID: userID, Role: "assistant", Content: reply, CreatedAt: time.Now(),
	}); err != nil {
		// the live answer already succeeded; history durability is
		// best-effort
		s.log.Error("persist assistant turn failed",
			zap.String("tenant", tenant), zap.String("user", userID), zap.Error(err))
	}
	return reply, nil
}

func (s *Svc) History(userID string) ([]entities.ChatTurn, error) {
	if userID == "" {
		return nil, service.ErrUnauthenticated
	}
	return s.repo.ListByUser(userID, 0)
}
