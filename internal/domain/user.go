package domain

// User is a registered wallet identity without persistence concerns.
// Address is stored in normalized (lowercase) form.
type User struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Role    string  `json:"role"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
}
