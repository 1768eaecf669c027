package phone

import "github.com/nyaruka/phonenumbers"

// LineType is the closed set of line classifications the bot reports.
type LineType int

const (
	Unknown LineType = iota
	FixedLine
	Mobile
	FixedLineOrMobile
	TollFree
	PremiumRate
	VoIP
)

func (t LineType) String() string {
	switch t {
	case FixedLine:
		return "fixed_line"
	case Mobile:
		return "mobile"
	case FixedLineOrMobile:
		return "fixed_line_or_mobile"
	case TollFree:
		return "toll_free"
	case PremiumRate:
		return "premium_rate"
	case VoIP:
		return "voip"
	default:
		return "unknown"
	}
}

// lineTypeOf maps the library's number type onto LineType. Types we do not
// report (shared cost, pager, UAN, ...) collapse to Unknown.
func lineTypeOf(t phonenumbers.PhoneNumberType) LineType {
	switch t {
	case phonenumbers.FIXED_LINE:
		return FixedLine
	case phonenumbers.MOBILE:
		return Mobile
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return FixedLineOrMobile
	case phonenumbers.TOLL_FREE:
		return TollFree
	case phonenumbers.PREMIUM_RATE:
		return PremiumRate
	case phonenumbers.VOIP:
		return VoIP
	default:
		return Unknown
	}
}
