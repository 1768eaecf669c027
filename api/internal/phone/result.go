package phone

// Reason explains why an input was rejected.
type Reason int

const (
	// ReasonNone is set on valid results.
	ReasonNone Reason = iota
	// ReasonUnparsable means the input is not phone-number syntax at all.
	ReasonUnparsable
	// ReasonImprobableFormat means the digits fail the length/pattern check for the country.
	ReasonImprobableFormat
	// ReasonInvalidRealWorld means the number is plausible but not assigned in the numbering plan.
	ReasonInvalidRealWorld
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnparsable:
		return "unparsable"
	case ReasonImprobableFormat:
		return "improbable_format"
	case ReasonInvalidRealWorld:
		return "invalid_real_world"
	default:
		return "unknown"
	}
}

// Number holds everything known about a valid phone number.
type Number struct {
	Region    string
	Carrier   string // empty when the carrier is not known
	LineType  LineType
	TimeZones []string

	International string
	National      string
	E164          string
}

// Result is the outcome of a classification: either Number is set,
// or Reason says why the input was rejected.
type Result struct {
	Number *Number
	Reason Reason
	// Cause carries diagnostic detail for logs. Never shown to users.
	Cause error
}

// Valid reports whether the result describes a valid number.
func (r Result) Valid() bool { return r.Number != nil }

// Outcome is a short label for logs and metrics.
func (r Result) Outcome() string {
	if r.Valid() {
		return "valid"
	}
	return r.Reason.String()
}

func valid(n *Number) Result { return Result{Number: n} }

func invalid(reason Reason, cause error) Result {
	return Result{Reason: reason, Cause: cause}
}
