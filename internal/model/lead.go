package model

type LeadStatus string

const (
	LeadNew       LeadStatus = "NEW"
	LeadPending   LeadStatus = "PENDING"
	LeadQualified LeadStatus = "QUALIFIED"
	LeadLost      LeadStatus = "LOST"
	LeadConverted LeadStatus = "CONVERTED"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type Lead struct {
	ID         ID           `json:"id,omitempty"`
	Title      string       `json:"title" validate:"required"`
	Customer   *CustomerRef `json:"customer" validate:"required"`
	AssignedTo *MemberRef   `json:"assigned_to,omitempty"`
	Status     LeadStatus   `json:"status,omitempty" validate:"omitempty,oneof=NEW PENDING QUALIFIED LOST CONVERTED"`
	Priority   Priority     `json:"priority,omitempty" validate:"omitempty,priority"`
	Source     string       `json:"source,omitempty"`
	Value      float64      `json:"value,omitempty" validate:"gte=0"`
	Notes      string       `json:"notes,omitempty"`
	Timestamps
}

func (l *Lead) RecordID() string         { return string(l.ID) }
func (l *Lead) Field(path string) any    { return Resolve(l, path) }
func (l *Lead) Reassign(owner MemberRef) { l.AssignedTo = &owner }
