package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// GiftCategory is a selectable gift category.
type GiftCategory struct {
	ID         string    `json:"id"`
	NameKey    string    `json:"name_key"`
	Color      string    `json:"color"`
	OrderIndex int       `json:"order_index"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GiftSuggestion is a suggested gift, optionally tied to an event.
type GiftSuggestion struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	EventID     *string   `json:"event_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceRange  string    `json:"price_range"`
	URL         string    `json:"url,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GiftSuggestionRequest is the body for creating or updating a suggestion.
type GiftSuggestionRequest struct {
	CategoryID  string `json:"category_id,omitempty"`
	EventID     string `json:"event_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PriceRange  string `json:"price_range,omitempty"`
	URL         string `json:"url,omitempty"`
}

// GiftsService provides gift categories, suggestions and voting.
type GiftsService struct {
	client *Client
}

// NewGiftsService creates a gifts service over the given client.
func NewGiftsService(client *Client) *GiftsService {
	return &GiftsService{client: client}
}

// Categories lists active gift categories. Public endpoint.
func (s *GiftsService) Categories(ctx context.Context) ([]GiftCategory, error) {
	var categories []GiftCategory
	if err := s.client.Get(ctx, "/api/gifts/categories", &categories, WithoutAuth()); err != nil {
		return nil, err
	}
	return categories, nil
}

// Suggestions lists suggestions for a category, optionally scoped to an
// event. Public endpoint.
func (s *GiftsService) Suggestions(ctx context.Context, categoryID, eventID string) ([]GiftSuggestion, error) {
	query := url.Values{"category_id": {categoryID}}
	if eventID != "" {
		query.Set("event_id", eventID)
	}

	var suggestions []GiftSuggestion
	if err := s.client.Get(ctx, "/api/gifts/suggestions?"+query.Encode(), &suggestions, WithoutAuth()); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// TrackSelection records that the current user picked a gift category.
func (s *GiftsService) TrackSelection(ctx context.Context, categoryID, eventID string) error {
	req := map[string]string{"category_id": categoryID}
	if eventID != "" {
		req["event_id"] = eventID
	}
	return s.client.Post(ctx, "/api/gifts/track-selection", req, nil)
}

// EventSuggestions lists the generated suggestions for an event.
func (s *GiftsService) EventSuggestions(ctx context.Context, eventID string) ([]GiftSuggestion, error) {
	var suggestions []GiftSuggestion
	if err := s.client.Get(ctx, fmt.Sprintf("/api/events/%s/gift-suggestions", eventID), &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// Regenerate discards and regenerates an event's gift suggestions. Only
// the event creator may regenerate.
func (s *GiftsService) Regenerate(ctx context.Context, eventID string) error {
	return s.client.Post(ctx, fmt.Sprintf("/api/events/%s/regenerate-gift-suggestions", eventID), struct{}{}, nil)
}

// CreateSuggestion adds a user-submitted gift suggestion.
func (s *GiftsService) CreateSuggestion(ctx context.Context, req GiftSuggestionRequest) (*GiftSuggestion, error) {
	var suggestion GiftSuggestion
	if err := s.client.Post(ctx, "/api/gift-suggestions", req, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// UpdateSuggestion edits a suggestion; only the owner may update.
func (s *GiftsService) UpdateSuggestion(ctx context.Context, suggestionID string, req GiftSuggestionRequest) (*GiftSuggestion, error) {
	var suggestion GiftSuggestion
	if err := s.client.Put(ctx, "/api/gift-suggestions/"+suggestionID, req, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// DeleteSuggestion removes a suggestion; only the owner may delete.
func (s *GiftsService) DeleteSuggestion(ctx context.Context, suggestionID string) error {
	return s.client.Delete(ctx, "/api/gift-suggestions/"+suggestionID, nil)
}

// Vote casts the current user's vote on a suggestion.
func (s *GiftsService) Vote(ctx context.Context, suggestionID string) error {
	return s.client.Post(ctx, fmt.Sprintf("/api/gift-suggestions/%s/vote", suggestionID), struct{}{}, nil)
}

// RemoveVote withdraws the current user's vote from a suggestion.
func (s *GiftsService) RemoveVote(ctx context.Context, suggestionID string) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/gift-suggestions/%s/vote", suggestionID), nil)
}
