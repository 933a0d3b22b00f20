// Package portal defines the data model shared by the client and the
// dev server: the authenticated user, the role hierarchy, and the content
// items served by the community backend (news, chat, board, documents).
package portal

// User is the authenticated principal. A User value exists in the session
// exactly when the session is authenticated.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Phone string `json:"phone,omitempty"`
}
