// README: Chat persistence over the document store.
package chat

import (
	"context"
	"errors"
	"time"

	"courier/internal/docstore"
)

var ErrNotFound = errors.New("chat session not found")

type Store struct {
	sessions docstore.Collection
	pointers docstore.Collection
}

func NewStore(store docstore.Store) *Store {
	return &Store{
		sessions: store.Collection("chats"),
		pointers: store.Collection("user_active_sessions"),
	}
}

func (s *Store) Insert(ctx context.Context, sess *Session) (string, error) {
	return s.sessions.Add(ctx, encodeSession(sess))
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeSession(id, data), nil
}

func (s *Store) Update(ctx context.Context, id string, fields map[string]any) error {
	return s.sessions.Update(ctx, id, fields)
}

// AppendMessages adds turns to a session without rewriting the history.
func (s *Store) AppendMessages(ctx context.Context, id string, msgs []Message) error {
	values := make([]any, 0, len(msgs))
	for _, m := range msgs {
		values = append(values, encodeMessage(m))
	}
	if err := s.sessions.Append(ctx, id, "messages", values...); err != nil {
		return err
	}
	return s.sessions.Update(ctx, id, map[string]any{"updated_at": time.Now()})
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]*Session, error) {
	docs, err := s.sessions.Query(ctx, "user_id", userID)
	if err != nil {
		return nil, err
	}
	out := make([]*Session, 0, len(docs))
	for _, doc := range docs {
		out = append(out, decodeSession(doc.ID, doc.Data))
	}
	return out, nil
}

// SetActivePointer records which session the user's next message lands in.
func (s *Store) SetActivePointer(ctx context.Context, userID, sessionID string) error {
	return s.pointers.Set(ctx, userID, map[string]any{
		"chat_session_id": sessionID,
		"updated_at":      time.Now(),
	})
}

// ActivePointer returns "" when the user has no active session.
func (s *Store) ActivePointer(ctx context.Context, userID string) (string, error) {
	data, err := s.pointers.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return str(data["chat_session_id"]), nil
}

func encodeSession(sess *Session) map[string]any {
	msgs := make([]any, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		msgs = append(msgs, encodeMessage(m))
	}
	return map[string]any{
		"user_id":    sess.UserID,
		"topic":      sess.Topic,
		"status":     sess.Status,
		"messages":   msgs,
		"created_at": sess.CreatedAt,
		"updated_at": sess.UpdatedAt,
	}
}

func encodeMessage(m Message) map[string]any {
	doc := map[string]any{
		"role":      m.Role,
		"content":   m.Content,
		"timestamp": m.Timestamp,
	}
	if m.MessageType != "" {
		doc["message_type"] = m.MessageType
	}
	return doc
}

func decodeSession(id string, data map[string]any) *Session {
	return &Session{
		ID:        id,
		UserID:    str(data["user_id"]),
		Topic:     str(data["topic"]),
		Status:    str(data["status"]),
		Messages:  decodeMessages(data["messages"]),
		CreatedAt: when(data["created_at"]),
		UpdatedAt: when(data["updated_at"]),
	}
}

func decodeMessages(v any) []Message {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Message, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Message{
			Role:        str(m["role"]),
			Content:     str(m["content"]),
			MessageType: str(m["message_type"]),
			Timestamp:   when(m["timestamp"]),
		})
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func when(v any) time.Time {
	t, _ := v.(time.Time)
	return t
}
