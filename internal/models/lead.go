// internal/models/lead.go
package models

// Canonical field keys for a normalized lead. Every inbound form label
// resolves to one of these or is dropped as unmapped.
const (
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldBoatMake   = "boat_make"
	FieldBoatModel  = "boat_model"
	FieldBoatYear   = "boat_year"
	FieldBoatLength = "boat_length"
	FieldBoatType   = "boat_type"

	FieldServiceRequested = "service_requested"
	FieldServiceDetails   = "service_details"
	FieldNotes            = "notes"

	FieldPostalCode   = "postal_code"
	FieldCity         = "city"
	FieldState        = "state"
	FieldMarinaName   = "marina_name"
	FieldSlipNumber   = "slip_number"
	FieldBoatLocation = "boat_location"

	FieldTimeline = "timeline"
	FieldBudget   = "budget"

	FieldFormSource = "form_source"
)

// CanonicalFields is the fixed vocabulary of the normalized request.
var CanonicalFields = []string{
	FieldFirstName, FieldLastName, FieldEmail, FieldPhone,
	FieldBoatMake, FieldBoatModel, FieldBoatYear, FieldBoatLength, FieldBoatType,
	FieldServiceRequested, FieldServiceDetails, FieldNotes,
	FieldPostalCode, FieldCity, FieldState, FieldMarinaName, FieldSlipNumber, FieldBoatLocation,
	FieldTimeline, FieldBudget,
	FieldFormSource,
}

// NormalizedRequest maps canonical field names to string values. Fields
// that were not present on the source form hold empty strings, never nil;
// Get covers both cases so downstream logic can read any key safely.
type NormalizedRequest map[string]string

// Get returns the value for a canonical key, or "" when absent.
func (r NormalizedRequest) Get(key string) string {
	if r == nil {
		return ""
	}
	return r[key]
}

// HasContact reports whether an identifying contact key is present.
func (r NormalizedRequest) HasContact() bool {
	return r.Get(FieldEmail) != "" || r.Get(FieldPhone) != ""
}

// FreeText concatenates the free-text fields used for keyword scanning.
func (r NormalizedRequest) FreeText() string {
	out := r.Get(FieldServiceRequested)
	if d := r.Get(FieldServiceDetails); d != "" {
		out += " " + d
	}
	if n := r.Get(FieldNotes); n != "" {
		out += " " + n
	}
	return out
}
