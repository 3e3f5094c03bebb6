package domain

// Role type to distinguish between API users
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// Account is the identity returned by a successful login.
// For clients the ID is the email, for the trainer it is the configured email.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}
