package model

// Member is a sales team member.
type Member struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	IsActive bool   `json:"is_active"`
	Timestamps
}

func (m *Member) RecordID() string      { return string(m.ID) }
func (m *Member) Field(path string) any { return Resolve(m, path) }
