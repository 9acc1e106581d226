package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Event is an event as returned by the backend.
type Event struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	CreatorID         string     `json:"creator_id"`
	Description       string     `json:"description"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	Active            bool       `json:"active"`
	Banner            string     `json:"banner"`
	Location          string     `json:"location"`
	ParticipantsCount int        `json:"participants_count"`
	GifteePersona     string     `json:"giftee_persona,omitempty"`
	EventOccasion     string     `json:"event_occasion,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Participant is a confirmed or invited event member.
type Participant struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

// PendingInvitation is an invitation that has not been accepted yet.
type PendingInvitation struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	InvitedAt string `json:"invitedAt"`
	ExpiresAt string `json:"expiresAt"`
}

// EventDetail bundles an event with its participants and open invitations.
type EventDetail struct {
	Event              Event               `json:"event"`
	Participants       []Participant       `json:"participants"`
	PendingInvitations []PendingInvitation `json:"pendingInvitations"`
}

// EventCreateRequest is the body for creating an event. Dates are sent as
// RFC 3339 strings.
type EventCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Banner      string `json:"banner,omitempty"`
	Location    string `json:"location,omitempty"`
}

// GiftEventCreateRequest creates an event with generated gift suggestions.
type GiftEventCreateRequest struct {
	EventCreateRequest
	GifteePersona string `json:"giftee_persona"`
	EventOccasion string `json:"event_occasion"`
}

// UpdateEventRequest is the body for partially updating an event; only the
// creator may update. RemoveEndDate clears an existing end date.
type UpdateEventRequest struct {
	Title         string `json:"title,omitempty"`
	Description   string `json:"description,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	Location      string `json:"location,omitempty"`
	RemoveEndDate bool   `json:"remove_end_date,omitempty"`
}

// InviteResult is the outcome of inviting a participant.
type InviteResult struct {
	Success    bool
	Message    string
	UserExists bool
	InviteLink string
}

// UnmarshalJSON accepts both the camelCase and PascalCase field spellings
// the backend has used across versions.
func (r *InviteResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick := func(dst interface{}, names ...string) {
		for _, name := range names {
			if v, ok := raw[name]; ok {
				json.Unmarshal(v, dst)
				return
			}
		}
	}

	r.Success = true
	pick(&r.Success, "success", "Success")
	pick(&r.Message, "message", "Message")
	pick(&r.UserExists, "userExists", "UserExists")
	pick(&r.InviteLink, "inviteLink", "InviteLink")
	return nil
}

// InviteValidation describes an invite code looked up before accepting.
type InviteValidation struct {
	Valid        bool   `json:"valid"`
	EventID      string `json:"eventId,omitempty"`
	EventTitle   string `json:"eventTitle,omitempty"`
	Expired      bool   `json:"expired,omitempty"`
	Message      string `json:"message"`
	InvitedEmail string `json:"invitedEmail,omitempty"`
}

// EventsService provides the event CRUD and invitation operations.
type EventsService struct {
	client *Client
}

// NewEventsService creates an events service over the given client.
func NewEventsService(client *Client) *EventsService {
	return &EventsService{client: client}
}

// Create creates a new event owned by the current user.
func (s *EventsService) Create(ctx context.Context, req EventCreateRequest) (*Event, error) {
	var resp struct {
		Message string `json:"message"`
		Event   Event  `json:"event"`
	}
	if err := s.client.Post(ctx, "/events/", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// CreateWithGifts creates an event and triggers gift suggestion generation
// for the giftee persona.
func (s *EventsService) CreateWithGifts(ctx context.Context, req GiftEventCreateRequest) (*Event, error) {
	var event Event
	if err := s.client.Post(ctx, "/api/events/with-gifts", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Mine lists the current user's events.
func (s *EventsService) Mine(ctx context.Context) ([]Event, error) {
	var resp struct {
		Events []Event `json:"events"`
	}
	if err := s.client.Get(ctx, "/events/me", &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

// Get fetches one event with its participants and pending invitations.
func (s *EventsService) Get(ctx context.Context, eventID string) (*EventDetail, error) {
	var detail EventDetail
	if err := s.client.Get(ctx, "/events/"+eventID, &detail); err != nil {
		return nil, err
	}
	if detail.Participants == nil {
		detail.Participants = []Participant{}
	}
	if detail.PendingInvitations == nil {
		detail.PendingInvitations = []PendingInvitation{}
	}
	return &detail, nil
}

// Update changes event details; only the creator may update.
func (s *EventsService) Update(ctx context.Context, eventID string, req UpdateEventRequest) (*Event, error) {
	var resp struct {
		Message string `json:"message"`
		Event   Event  `json:"event"`
	}
	if err := s.client.Put(ctx, "/events/"+eventID, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

// InviteParticipant invites a user to the event by email.
func (s *EventsService) InviteParticipant(ctx context.Context, eventID, email string) (*InviteResult, error) {
	req := map[string]string{"identifier": email, "type": "email"}
	var result InviteResult
	if err := s.client.Post(ctx, fmt.Sprintf("/events/%s/participants", eventID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ValidateInvite looks up an invite code and the event it belongs to.
func (s *EventsService) ValidateInvite(ctx context.Context, inviteCode string) (*InviteValidation, error) {
	var validation InviteValidation
	if err := s.client.Get(ctx, "/invites/"+inviteCode, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}

// AcceptInvite joins the event behind an invite code. Returns the event ID.
func (s *EventsService) AcceptInvite(ctx context.Context, inviteCode string) (string, error) {
	var resp struct {
		Message string `json:"message"`
		EventID string `json:"event_id"`
	}
	if err := s.client.Post(ctx, fmt.Sprintf("/invites/%s/accept", inviteCode), struct{}{}, &resp); err != nil {
		return "", err
	}
	return resp.EventID, nil
}

// UpdateParticipantStatus sets the current user's status (accepted, pending
// or declined) for the event.
func (s *EventsService) UpdateParticipantStatus(ctx context.Context, eventID, status string) error {
	req := map[string]string{"status": status}
	return s.client.Put(ctx, fmt.Sprintf("/events/%s/participant-status", eventID), req, nil)
}

// RescindInvitation withdraws a pending invitation by email.
func (s *EventsService) RescindInvitation(ctx context.Context, eventID, email string) error {
	return s.client.Delete(ctx, fmt.Sprintf("/events/%s/invitations/%s", eventID, url.PathEscape(email)), nil)
}
