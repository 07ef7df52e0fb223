package models

// UserTypeHost owns listings; UserTypeRenter books them.
const UserTypeHost = "host"
const UserTypeRenter = "renter"

type User struct {
	Username  string `json:"username"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
}

// UserPatch is the set of fields PATCH /users/{username} may change.
// Nil means "leave unchanged". Password is re-hashed before it is persisted;
// it never reaches the update path in plain text.
type UserPatch struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
	UserType  *string `json:"userType"`
}
