package model

type Customer struct {
	ID         ID         `json:"id,omitempty"`
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string     `json:"phone,omitempty"`
	Company    string     `json:"company,omitempty"`
	Address    string     `json:"address,omitempty"`
	AssignedTo *MemberRef `json:"assigned_to,omitempty"`
	Timestamps
}

func (c *Customer) RecordID() string         { return string(c.ID) }
func (c *Customer) Field(path string) any    { return Resolve(c, path) }
func (c *Customer) Reassign(owner MemberRef) { c.AssignedTo = &owner }
