package validator

import "testing"

type sample struct {
	Name     string `json:"name" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,priority"`
	Inner    *inner `json:"customer" validate:"required"`
}

type inner struct {
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateStruct_ReportsJSONNames(t *testing.T) {
	errs := ValidateStruct(&sample{Priority: "URGENT", Inner: &inner{Email: "nope"}})
	if len(errs) != 3 {
		t.Fatalf("errors = %d, want 3: %+v", len(errs), errs)
	}
	fields := map[string]string{}
	for _, e := range errs {
		fields[e.FailedField] = e.Tag
	}
	if fields["name"] != "required" {
		t.Errorf("name tag = %q", fields["name"])
	}
	if fields["priority"] != "priority" {
		t.Errorf("priority tag = %q", fields["priority"])
	}
	if fields["customer.email"] != "email" {
		t.Errorf("customer.email tag = %q", fields["customer.email"])
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	if errs := ValidateStruct(&sample{Name: "x", Priority: "HIGH", Inner: &inner{}}); len(errs) != 0 {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

func TestValidateVar(t *testing.T) {
	if errs := ValidateVar("status", "LOST", "oneof=NEW LOST"); len(errs) != 0 {
		t.Errorf("LOST should pass: %+v", errs)
	}
	errs := ValidateVar("status", "GONE", "oneof=NEW LOST")
	if len(errs) != 1 || errs[0].FailedField != "status" || errs[0].Tag != "oneof" {
		t.Errorf("unexpected errors: %+v", errs)
	}
	if errs := ValidateVar("value", -1.0, "gte=0"); len(errs) != 1 {
		t.Errorf("negative value should fail: %+v", errs)
	}
}

func TestValidateVar_WrongKind(t *testing.T) {
	errs := ValidateVar("value", true, "gte=0")
	if len(errs) != 1 || errs[0].Tag != "type" || errs[0].FailedField != "value" {
		t.Errorf("unexpected errors: %+v", errs)
	}
}
