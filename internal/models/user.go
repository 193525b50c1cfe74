package models

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`          // don’t expose hash
	CreatedAt    string `json:"created_at"` // YYYY-MM-DD
}
