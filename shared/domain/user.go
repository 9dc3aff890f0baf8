package domain

// User is the identity carried by an access token. Accounts themselves are
// owned by the external auth service.
type User struct {
	Id    UserId
	Admin bool
}
