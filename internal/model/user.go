package model

// User is the record held by the identity store. PasswordHash never leaves
// the auth service; the JSON tag keeps it out of any projection by accident.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// PublicUser is the projection returned to callers.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}
