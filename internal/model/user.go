package model

// User is an account in the static user set.  There is no registration or
// user lifecycle; the set is seeded at startup and only read afterwards.
// CredentialHash holds a bcrypt hash of the user's password — the plain
// credential is never stored.
//
// Fields:
//  ID             – numeric identifier, referenced by sessions and bookings.
//  Name           – display name returned from login.
//  Email          – unique login email.
//  CredentialHash – bcrypt hash of the password.
//  Role           – either RoleAdmin or RoleUser.
//  CustomerRef    – optional reference to the payment processor's customer
//                   record (may be empty).
type User struct {
	ID             int64
	Name           string
	Email          string
	CredentialHash string
	Role           string
	CustomerRef    string
}

// Role values stored on users and sessions.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// PublicUser is the sanitized view of a user returned to clients after a
// successful login.  It never carries credential material.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public returns the client-facing view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
