package form

import (
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Field is one named input with its rules, checked in order.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is an ordered list of fields. Order decides which invalid field
// receives focus first.
type Schema []Field

// Fields returns the field names in order.
func (s Schema) Fields() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// ValidateField runs the rules for one field and returns the first error
// message, or "" when the value is valid or the field is unknown.
func (s Schema) ValidateField(name, value string, values map[string]string) string {
	for _, f := range s {
		if f.Name != name {
			continue
		}
		for _, rule := range f.Rules {
			if msg := rule(value, values); msg != "" {
				return msg
			}
		}
		return ""
	}
	return ""
}

// Validate checks every field. It returns nil when the whole form is valid.
func (s Schema) Validate(values map[string]string) *model.ValidationError {
	var ve model.ValidationError
	for _, f := range s {
		if msg := s.ValidateField(f.Name, values[f.Name], values); msg != "" {
			ve.Add(f.Name, msg)
		}
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// PaymentMethods are the accepted payment methods.
var PaymentMethods = []string{"card", "bank_transfer", "cash", "mobile_money"}

// Schemas bundles the validation schemas for every form the business exposes.
// now is used by date rules.
type Schemas struct {
	Package        Schema
	Booking        Schema
	Payment        Schema
	Review         Schema
	Contact        Schema
	Recommendation Schema
}

// NewSchemas builds all schemas against the given clock.
func NewSchemas(now func() time.Time) Schemas {
	if now == nil {
		now = time.Now
	}
	return Schemas{
		Package: Schema{
			{Name: "name", Rules: []Rule{Required("is required"), MaxLength(200)}},
			{Name: "description", Rules: []Rule{MaxLength(4000)}},
			{Name: "category", Rules: []Rule{Required("is required"), MaxLength(80)}},
			{Name: "price", Rules: []Rule{Required("is required"), NumberRange(0, 10_000_000)}},
			{Name: "capacity", Rules: []Rule{Required("is required"), IntRange(1, 100_000)}},
		},
		Booking: Schema{
			{Name: "package_id", Rules: []Rule{Required("please choose a package")}},
			{Name: "customer_name", Rules: []Rule{Required("is required"), MaxLength(120)}},
			{Name: "email", Rules: []Rule{Required("is required"), Email()}},
			{Name: "phone", Rules: []Rule{Required("is required"), Phone()}},
			{Name: "event_date", Rules: []Rule{Required("is required"), DateNotPast(now)}},
			{Name: "guests", Rules: []Rule{Required("is required"), IntRange(1, 100_000)}},
			{Name: "notes", Rules: []Rule{MaxLength(2000)}},
		},
		Payment: Schema{
			{Name: "amount", Rules: []Rule{Required("is required"), Positive()}},
			{Name: "method", Rules: []Rule{Required("is required"), OneOf(PaymentMethods...)}},
		},
		Review: Schema{
			{Name: "author", Rules: []Rule{Required("is required"), MaxLength(120)}},
			{Name: "rating", Rules: []Rule{Required("is required"), IntRange(1, 5)}},
			{Name: "comment", Rules: []Rule{MaxLength(2000)}},
		},
		Contact: Schema{
			{Name: "name", Rules: []Rule{Required("is required"), MaxLength(120)}},
			{Name: "email", Rules: []Rule{Required("is required"), Email()}},
			{Name: "phone", Rules: []Rule{Optional(Phone())}},
			{Name: "message", Rules: []Rule{Required("is required"), MaxLength(4000)}},
		},
		Recommendation: Schema{
			{Name: "email", Rules: []Rule{Required("is required"), Email()}},
			{Name: "event_type", Rules: []Rule{Required("is required"), MaxLength(80)}},
			{Name: "guests", Rules: []Rule{Required("is required"), IntRange(1, 100_000)}},
			{Name: "budget", Rules: []Rule{Required("is required"), Positive()}},
			{Name: "event_date", Rules: []Rule{Required("is required"), DateNotPast(now)}},
			{Name: "preferences", Rules: []Rule{MaxLength(2000)}},
		},
	}
}
