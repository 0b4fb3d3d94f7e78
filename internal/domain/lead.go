package domain

import "time"

// Lead is a contact request captured by the lead form.
type Lead struct {
	ID         int64     `json:"id" db:"id"`
	Reference  string    `json:"reference" db:"reference"`
	Name       string    `json:"name" db:"name" validate:"required,max=120"`
	Email      string    `json:"email" db:"email" validate:"required,email,max=200"`
	Phone      string    `json:"phone" db:"phone" validate:"omitempty,max=40"`
	Company    string    `json:"company" db:"company" validate:"omitempty,max=160"`
	TeamSize   int       `json:"team_size" db:"team_size" validate:"omitempty,min=1,max=100000"`
	Message    string    `json:"message" db:"message" validate:"max=4000"`
	SourcePath string    `json:"source_path" db:"source_path"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
