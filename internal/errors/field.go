package errors

import "errors"

// metaField is the metadata key carrying the machine-readable field tag
// of an InvalidInput rejection.
const metaField = "field"

// Field tags of the rejection surface. Callers use them for user-facing
// field highlighting; they are a fixed vocabulary, not display text.
const (
	FieldName      = "name"
	FieldNameExtra = "name_extra"
	FieldRole      = "role"
	FieldRace      = "race"
	FieldModel     = "model"
	FieldClass     = "class"
	FieldArmor     = "armor"
	FieldWeapon    = "weapon"
	FieldTraits    = "traits"
	FieldLocation  = "location"
)

// ConditionTag returns the field tag for a failed requires constraint of
// the given entity kind, e.g. "class/condition".
func ConditionTag(kind string) string {
	return kind + "/condition"
}

// InvalidInput creates the typed rejection for a bad user selection: an
// invalid argument error tagged with the failing field.
func InvalidInput(field string) *Error {
	return Newf(CodeInvalidArgument, "invalid input: %s", field).
		WithMeta(metaField, field)
}

// FieldTag extracts the field tag from an InvalidInput error.
func FieldTag(err error) (string, bool) {
	var e *Error
	if !errors.As(err, &e) || e.Meta == nil {
		return "", false
	}
	field, ok := e.Meta[metaField].(string)
	return field, ok
}
