package auth

// Storage keys for the persisted credential bundle. Three entries in one
// encrypted document; each is read defensively, so a bundle missing its
// expiry or refresh token degrades to "absent" instead of failing the read.
const (
	accessTokenKey  = "rendez_vous_access_token"
	refreshTokenKey = "rendez_vous_refresh_token"
	tokenExpiryKey  = "rendez_vous_token_expiry"
)

// tokenResponse is the shape returned by /auth/login and /auth/refresh.
type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// loginRequest is the body sent to /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest holds the fields sent to /auth/register. Username, Email
// and Password are required; the profile fields are optional.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// refreshRequest is the body sent to /auth/refresh and /auth/logout.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// errorResponse is the generic error body returned by the backend.
type errorResponse struct {
	Message string `json:"message"`
}
