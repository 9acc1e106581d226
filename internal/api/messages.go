package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// MessageAuthor identifies the user who posted a message.
type MessageAuthor struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// EventMessage is one entry on an event's message board.
type EventMessage struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	UserID    string        `json:"user_id"`
	Content   string        `json:"content"`
	ParentID  string        `json:"parent_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	User      MessageAuthor `json:"user"`
}

// MessagesService provides the per-event message board.
type MessagesService struct {
	client *Client
}

// NewMessagesService creates a messages service over the given client.
func NewMessagesService(client *Client) *MessagesService {
	return &MessagesService{client: client}
}

// List fetches all messages for an event. The backend has returned both a
// bare array and a {"messages": [...]} wrapper across versions; both are
// accepted.
func (s *MessagesService) List(ctx context.Context, eventID string) ([]EventMessage, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, fmt.Sprintf("/events/%s/messages/", eventID), &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []EventMessage{}, nil
	}

	var messages []EventMessage
	if err := json.Unmarshal(raw, &messages); err == nil {
		return messages, nil
	}

	var wrapped struct {
		Messages []EventMessage `json:"messages"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	if wrapped.Messages == nil {
		return []EventMessage{}, nil
	}
	return wrapped.Messages, nil
}

// Create posts a message to an event, optionally as a reply to parentID.
// The backend has returned both the bare message and a {"message": {...}}
// wrapper; both are accepted.
func (s *MessagesService) Create(ctx context.Context, eventID, content, parentID string) (*EventMessage, error) {
	req := map[string]string{"content": content}
	if parentID != "" {
		req["parent_id"] = parentID
	}

	var raw json.RawMessage
	if err := s.client.Post(ctx, fmt.Sprintf("/events/%s/messages/", eventID), req, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Message *EventMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Message != nil && wrapped.Message.ID != "" {
		return wrapped.Message, nil
	}

	var message EventMessage
	if err := json.Unmarshal(raw, &message); err != nil || message.ID == "" {
		return nil, fmt.Errorf("unexpected message response format")
	}
	return &message, nil
}
