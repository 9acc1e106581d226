package api

import "context"

// Profile is the current user's profile.
type Profile struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	CountryCode    string `json:"country_code,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
}

// ProfileService reads and updates the current user's profile.
type ProfileService struct {
	client *Client
}

// NewProfileService creates a profile service over the given client.
func NewProfileService(client *Client) *ProfileService {
	return &ProfileService{client: client}
}

// Get fetches the current user's profile.
func (s *ProfileService) Get(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.client.Get(ctx, "/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update changes profile fields and returns the updated profile.
func (s *ProfileService) Update(ctx context.Context, profile Profile) (*Profile, error) {
	var updated Profile
	if err := s.client.Put(ctx, "/profile", profile, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
