package model

// User represents the authenticated student profile.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the payload for account creation. ConfirmPassword is a
// client-side field and never leaves the process.
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=150"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6,max=128"`
	ConfirmPassword string `json:"-"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
}

// AuthResponse covers the response shapes the API is known to return from
// /login/ and /register/. The token may arrive under several field names and
// identity fields may be nested under "user" or flattened at the top level.
type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	Access      string `json:"access,omitempty"`
	Key         string `json:"key,omitempty"`
	User        *User  `json:"user,omitempty"`
	ID          string `json:"id,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
}

// BearerToken returns the first token field present, or "" when the response
// carried none.
func (r *AuthResponse) BearerToken() string {
	for _, t := range []string{r.Token, r.AccessToken, r.Access, r.Key} {
		if t != "" {
			return t
		}
	}
	return ""
}

// ProfileUpdate is the payload for PUT /user/profile/update/v2/.
type ProfileUpdate struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
