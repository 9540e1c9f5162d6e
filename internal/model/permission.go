package model

import (
	"slices"
	"sort"
)

// Permission categories
const (
	CategoryLead      = "lead"
	CategoryQuotation = "quotation"
	CategoryCustomer  = "customer"
	CategoryMember    = "member"
)

// Actions a category grant can contain
const (
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// PermissionSet maps a category to the actions the current user may perform
// on it. The zero value grants nothing.
type PermissionSet map[string][]string

// Can reports whether action is granted on category. Lookups against a nil or
// empty set are always false.
func (p PermissionSet) Can(category, action string) bool {
	return slices.Contains(p[category], action)
}

// Clone returns a deep copy so cached sets are never shared with callers.
func (p PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(p))
	for category, actions := range p {
		out[category] = slices.Clone(actions)
	}
	return out
}

// Codes flattens the set into sorted "category:action" codes.
func (p PermissionSet) Codes() []string {
	codes := []string{}
	for category, actions := range p {
		for _, action := range actions {
			codes = append(codes, category+":"+action)
		}
	}
	sort.Strings(codes)
	return codes
}
