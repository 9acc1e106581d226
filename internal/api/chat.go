package api

import "context"

// ChatReply is the assistant's answer to a chat message.
type ChatReply struct {
	Response string `json:"response"`
	ChatID   string `json:"chat_id"`
}

// ChatEntry is one stored message of a chat history.
type ChatEntry struct {
	Response string `json:"response"`
	ChatID   string `json:"chat_id"`
}

// ChatService talks to the gift-assistant chat endpoints.
type ChatService struct {
	client *Client
}

// NewChatService creates a chat service over the given client.
func NewChatService(client *Client) *ChatService {
	return &ChatService{client: client}
}

// Send posts a message to the assistant. An empty chatID starts a new
// conversation; the reply carries the chat ID to continue it.
func (s *ChatService) Send(ctx context.Context, chatID, message string) (*ChatReply, error) {
	req := map[string]string{"message": message}
	if chatID != "" {
		req["chat_id"] = chatID
	}

	var reply ChatReply
	if err := s.client.Post(ctx, "/chat/", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// History fetches the stored messages of one conversation.
func (s *ChatService) History(ctx context.Context, chatID string) ([]ChatEntry, error) {
	var entries []ChatEntry
	if err := s.client.Get(ctx, "/chat/history/"+chatID, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ByEvent fetches the conversations attached to an event.
func (s *ChatService) ByEvent(ctx context.Context, eventID string) ([]ChatEntry, error) {
	var entries []ChatEntry
	if err := s.client.Get(ctx, "/chat/event/"+eventID, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
