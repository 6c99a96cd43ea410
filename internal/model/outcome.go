package model

// Outcome is the three-valued result of cleaning one field.
type Outcome string

const (
	// OutcomeUnresolved means no trustworthy cleaned value could be derived;
	// the raw input is retained and the field needs manual attention.
	OutcomeUnresolved Outcome = "unresolved"
	// OutcomeChanged means a cleaned value was derived and differs from the raw input.
	OutcomeChanged Outcome = "changed"
	// OutcomeUnchanged means the raw input was already valid.
	OutcomeUnchanged Outcome = "unchanged"
)

// FieldKind identifies one of the five cleaned transaction fields.
type FieldKind string

const (
	FieldProvider FieldKind = "Provider"
	FieldAmount   FieldKind = "InvoiceAmount"
	FieldDate     FieldKind = "InvoiceDate"
	FieldTitle    FieldKind = "ContractTitle"
	FieldNumber   FieldKind = "ContractNumber"
)

// Fields lists all cleaned fields in pipeline order.
var Fields = []FieldKind{FieldProvider, FieldAmount, FieldDate, FieldTitle, FieldNumber}
