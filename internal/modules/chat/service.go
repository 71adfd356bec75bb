// README: Chat service keeps conversation history and the per-user active session.
package chat

import (
	"context"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// StoreConversation appends a user/system turn pair to the given session,
// creating a fresh session when sessionID is empty. The user message
// records how it arrived (text or selection); the system reply carries no
// message type. The session topic is written once, on creation, and never
// overwritten by later turns. The user's active-session pointer always
// moves to the session written to.
func (s *Service) StoreConversation(ctx context.Context, userID, sessionID, userText, userMessageType, systemText, topic string) (string, error) {
	now := time.Now()
	turns := []Message{
		{Role: RoleUser, Content: userText, MessageType: userMessageType, Timestamp: now},
		{Role: RoleSystem, Content: systemText, Timestamp: now},
	}

	if sessionID == "" {
		if topic == "" {
			topic = DefaultTopic
		}
		id, err := s.store.Insert(ctx, &Session{
			UserID:    userID,
			Topic:     topic,
			Status:    StatusActive,
			Messages:  turns,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return "", err
		}
		if err := s.store.SetActivePointer(ctx, userID, id); err != nil {
			return "", err
		}
		return id, nil
	}

	if err := s.store.AppendMessages(ctx, sessionID, turns); err != nil {
		return "", err
	}
	if err := s.store.SetActivePointer(ctx, userID, sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// ActiveSession returns the id the user's next message belongs to, or ""
// when the user has never chatted or explicitly started over.
func (s *Service) ActiveSession(ctx context.Context, userID string) (string, error) {
	return s.store.ActivePointer(ctx, userID)
}

// Activate points the user at an existing session so the conversation
// resumes there. The session must belong to the user.
func (s *Service) Activate(ctx context.Context, userID, sessionID string) error {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.UserID != userID {
		return ErrNotFound
	}
	return s.store.SetActivePointer(ctx, userID, sessionID)
}

func (s *Service) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Messages, nil
}

// History lists the user's sessions without message bodies.
func (s *Service) History(ctx context.Context, userID string) ([]Summary, error) {
	sessions, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, Summary{
			ID:        sess.ID,
			Topic:     sess.Topic,
			Status:    sess.Status,
			UpdatedAt: sess.UpdatedAt,
		})
	}
	return out, nil
}
