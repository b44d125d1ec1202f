package form

// FieldState is where a field is in its interaction lifecycle.
//
//	Untouched --blur--> Touched --validate--> Validated
//	Untouched --change--> Untouched (no error shown yet)
//	Validated --change--> Validated (re-validated)
type FieldState int

const (
	Untouched FieldState = iota
	Touched
	Validated
)

func (s FieldState) String() string {
	switch s {
	case Untouched:
		return "untouched"
	case Touched:
		return "touched"
	case Validated:
		return "validated"
	}
	return "unknown"
}

// Form tracks values, interaction state and visible errors for one schema.
// Errors only surface once a field has been blurred (or on submit), so a user
// never sees an error before interacting with a field.
type Form struct {
	schema Schema
	values map[string]string
	states map[string]FieldState
	errs   map[string]string
}

// New returns a form with every field untouched.
func New(schema Schema) *Form {
	f := &Form{
		schema: schema,
		values: make(map[string]string, len(schema)),
		states: make(map[string]FieldState, len(schema)),
		errs:   make(map[string]string, len(schema)),
	}
	for _, fld := range schema {
		f.states[fld.Name] = Untouched
	}
	return f
}

// Change records a new value. A field that has already been touched is
// re-validated immediately; an untouched one stays silent.
func (f *Form) Change(field, value string) {
	f.values[field] = value
	if f.states[field] != Untouched {
		f.validate(field)
	}
}

// Blur marks the field touched and validates it.
func (f *Form) Blur(field string) {
	f.states[field] = Touched
	f.validate(field)
}

func (f *Form) validate(field string) {
	msg := f.schema.ValidateField(field, f.values[field], f.values)
	if msg == "" {
		delete(f.errs, field)
	} else {
		f.errs[field] = msg
	}
	f.states[field] = Validated
}

// Submit touches and validates every field. It reports whether the form is
// valid and, if not, the first invalid field in schema order (the one that
// should receive focus).
func (f *Form) Submit() (ok bool, focus string) {
	for _, fld := range f.schema {
		f.states[fld.Name] = Touched
		f.validate(fld.Name)
		if focus == "" && f.errs[fld.Name] != "" {
			focus = fld.Name
		}
	}
	return focus == "", focus
}

// State returns the interaction state of a field.
func (f *Form) State(field string) FieldState { return f.states[field] }

// Error returns the visible error for a field ("" if none).
func (f *Form) Error(field string) string { return f.errs[field] }

// Value returns the current value of a field.
func (f *Form) Value(field string) string { return f.values[field] }

// Values returns a copy of all current values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Fill sets several values at once without touching any field.
func (f *Form) Fill(values map[string]string) {
	for k, v := range values {
		f.Change(k, v)
	}
}
