package phone

import "strings"

// FormatReply renders res as the multi-line message sent back to the user.
func FormatReply(res Result, l Locale) string {
	if res.Valid() {
		return formatNumber(res.Number, l)
	}

	switch res.Reason {
	case ReasonImprobableFormat:
		return l.ImprobableFormat
	case ReasonInvalidRealWorld:
		return l.InvalidRealWorld
	default:
		return l.Unparsable
	}
}

func formatNumber(n *Number, l Locale) string {
	region, carrier := n.Region, n.Carrier
	if region == "" {
		region = l.Unknown
	}
	if carrier == "" {
		carrier = l.Unknown
	}
	zones := l.Unknown
	if len(n.TimeZones) > 0 {
		zones = strings.Join(n.TimeZones, ", ")
	}

	var b strings.Builder
	b.WriteString(l.Valid + "\n\n")
	b.WriteString(l.Region + region + "\n")
	b.WriteString(l.Carrier + carrier + "\n")
	b.WriteString(l.LineType + l.LineTypeLabel(n.LineType) + "\n")
	b.WriteString(l.TimeZones + zones + "\n\n")
	b.WriteString(l.International + n.International + "\n")
	b.WriteString(l.National + n.National + "\n")
	b.WriteString(l.E164 + n.E164)
	return b.String()
}
