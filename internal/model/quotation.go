package model

type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "DRAFT"
	QuotationSent     QuotationStatus = "SENT"
	QuotationAccepted QuotationStatus = "ACCEPTED"
	QuotationRejected QuotationStatus = "REJECTED"
)

type QuotationItem struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type Quotation struct {
	ID         ID              `json:"id,omitempty"`
	Number     string          `json:"quotation_number,omitempty"`
	Customer   *CustomerRef    `json:"customer" validate:"required"`
	LeadID     ID              `json:"lead_id,omitempty"`
	Status     QuotationStatus `json:"status,omitempty" validate:"omitempty,oneof=DRAFT SENT ACCEPTED REJECTED"`
	Priority   Priority        `json:"priority,omitempty" validate:"omitempty,priority"`
	Items      []QuotationItem `json:"items,omitempty" validate:"dive"`
	Total      float64         `json:"total_amount,omitempty" validate:"gte=0"`
	ValidUntil string          `json:"valid_until,omitempty"`
	CreatedBy  *MemberRef      `json:"created_by,omitempty"`
	AssignedTo *MemberRef      `json:"assigned_to,omitempty"`
	Timestamps
}

func (q *Quotation) RecordID() string         { return string(q.ID) }
func (q *Quotation) Field(path string) any    { return Resolve(q, path) }
func (q *Quotation) Reassign(owner MemberRef) { q.AssignedTo = &owner }
