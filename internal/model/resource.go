package model

import (
	"encoding/json"
	"fmt"
)

// Resource describes one list page of the console: where its records come
// from, how they are searched and filtered, and which permission category
// gates its row actions.
type Resource struct {
	Name         string
	Category     string
	ListPath     string
	RecordPath   string
	SearchFields []string
	FilterFields []string
	// PatchRules holds validator tags applied to update patch keys.
	PatchRules map[string]string
	New        func() Record
}

// Decode unmarshals a single raw record into the resource's record type.
func (r Resource) Decode(raw json.RawMessage) (Record, error) {
	rec := r.New()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", r.Name, err)
	}
	return rec, nil
}

// DecodeAll decodes every raw record; one malformed record fails the batch.
func (r Resource) DecodeAll(raws []json.RawMessage) ([]Record, error) {
	out := make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := r.Decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// AllowsFilter reports whether field is one of the resource's filter fields.
func (r Resource) AllowsFilter(field string) bool {
	for _, f := range r.FilterFields {
		if f == field {
			return true
		}
	}
	return false
}

var leadSearch = []string{
	"title",
	"customer.name",
	"customer.email",
	"customer.company",
	"customer.phone",
	"assigned_to.name",
}

var leadPatchRules = map[string]string{
	"title":    "required",
	"status":   "oneof=NEW PENDING QUALIFIED LOST CONVERTED",
	"priority": "priority",
	"value":    "gte=0",
}

var Resources = []Resource{
	{
		Name:         "leads",
		Category:     CategoryLead,
		ListPath:     "/leads",
		RecordPath:   "/leads",
		SearchFields: leadSearch,
		FilterFields: []string{"status", "priority", "source", "assigned_to.id"},
		PatchRules:   leadPatchRules,
		New:          func() Record { return &Lead{} },
	},
	{
		Name:         "converted-leads",
		Category:     CategoryLead,
		ListPath:     "/leads/converted",
		RecordPath:   "/leads",
		SearchFields: leadSearch,
		FilterFields: []string{"priority", "source", "assigned_to.id"},
		PatchRules:   leadPatchRules,
		New:          func() Record { return &Lead{} },
	},
	{
		Name:       "quotations",
		Category:   CategoryQuotation,
		ListPath:   "/quotations/drafts",
		RecordPath: "/quotations",
		SearchFields: []string{
			"quotation_number",
			"customer.name",
			"customer.email",
			"customer.company",
			"created_by.name",
		},
		FilterFields: []string{"status", "priority", "assigned_to.id"},
		PatchRules: map[string]string{
			"status":       "oneof=DRAFT SENT ACCEPTED REJECTED",
			"priority":     "priority",
			"total_amount": "gte=0",
		},
		New: func() Record { return &Quotation{} },
	},
	{
		Name:         "customers",
		Category:     CategoryCustomer,
		ListPath:     "/customers",
		RecordPath:   "/customers",
		SearchFields: []string{"name", "email", "phone", "company"},
		FilterFields: []string{"assigned_to.id"},
		PatchRules: map[string]string{
			"name":  "required",
			"email": "omitempty,email",
		},
		New: func() Record { return &Customer{} },
	},
	{
		Name:         "members",
		Category:     CategoryMember,
		ListPath:     "/members",
		RecordPath:   "/members",
		SearchFields: []string{"name", "email", "phone", "role"},
		FilterFields: []string{"role", "is_active"},
		PatchRules: map[string]string{
			"name":  "required",
			"email": "required,email",
		},
		New: func() Record { return &Member{} },
	},
}

// LookupResource finds a resource by its route name.
func LookupResource(name string) (Resource, bool) {
	for _, r := range Resources {
		if r.Name == name {
			return r, true
		}
	}
	return Resource{}, false
}
