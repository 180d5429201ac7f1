package domain

// Credential is a row of the user account table. It is owned by the store and only
// ever read by this service.
type Credential struct {
	UserID       int64
	Username     string
	RoleID       int64
	FullName     string
	StoredSecret string
}

// PublicUser is the redacted projection of a Credential returned to clients.
type PublicUser struct {
	FullName string `json:"fullName"`
	RoleID   int64  `json:"roleId"`
	Username string `json:"username"`
}

// Public drops the stored secret.
func (c Credential) Public() PublicUser {
	return PublicUser{FullName: c.FullName, RoleID: c.RoleID, Username: c.Username}
}

// Identity is the request-scoped caller identity attached after token verification.
type Identity struct {
	UserID   int64
	RoleID   int64
	Username string
}
