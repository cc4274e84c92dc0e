package transform

//go:generate go tool stringer -type=Action -trimprefix=Action -output=action_string.go

// Action is what a rule did to a field.
type Action int

const (
	_ Action = iota // zero value is invalid

	ActionUpdated
	ActionRemoved
)

// Change is a single field rewrite.
type Change struct {
	Action Action
	// Field is the human-readable location, e.g. "media_details[0].url".
	Field string
}

func (c Change) String() string {
	return c.Action.String() + " " + c.Field
}
