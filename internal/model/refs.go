package model

// MemberRef is the embedded form of a team member inside another record.
type MemberRef struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CustomerRef is the embedded form of a customer inside leads and quotations.
type CustomerRef struct {
	ID      ID     `json:"id,omitempty"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// Timestamps are kept as the ISO-8601 strings the API sends so that they
// sort chronologically as plain strings.
type Timestamps struct {
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
