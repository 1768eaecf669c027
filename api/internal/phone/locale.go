package phone

import "strings"

// Locale holds every user-facing string of the bot in one language.
type Locale struct {
	Tag string

	Valid         string
	Region        string
	Carrier       string
	LineType      string
	TimeZones     string
	International string
	National      string
	E164          string
	Unknown       string

	FixedLine         string
	Mobile            string
	FixedLineOrMobile string
	TollFree          string
	PremiumRate       string
	VoIP              string

	Unparsable       string
	ImprobableFormat string
	InvalidRealWorld string

	ProcessingError string
	Usage           string
	Healthy         string
	UnknownCommand  string
}

// Chinese is the bot's default wording.
var Chinese = Locale{
	Tag: "zh",

	Valid:         "✅ 号码有效！",
	Region:        "🌍 地区：",
	Carrier:       "📡 运营商：",
	LineType:      "📞 号码类型：",
	TimeZones:     "🕒 时区：",
	International: "🔢 国际格式：",
	National:      "🔢 国家格式：",
	E164:          "🔢 E.164格式：",
	Unknown:       "未知",

	FixedLine:         "固定电话",
	Mobile:            "移动电话",
	FixedLineOrMobile: "固定或移动电话",
	TollFree:          "免费电话",
	PremiumRate:       "收费电话",
	VoIP:              "VoIP电话",

	Unparsable:       "❌ 无法解析该号码，请确保输入正确，例如：+998901234567",
	ImprobableFormat: "❌ 该号码格式不太可能存在。",
	InvalidRealWorld: "❌ 该号码在现实中无效。",

	ProcessingError: "❌ 处理请求时出错，请稍后再试。",
	Usage:           "👋 发送一个电话号码（例如 +998901234567），我会告诉你它的地区、运营商、号码类型和时区。",
	Healthy:         "✅ OK",
	UnknownCommand:  "未知命令。发送 /help 查看用法。",
}

var English = Locale{
	Tag: "en",

	Valid:         "✅ The number is valid!",
	Region:        "🌍 Region: ",
	Carrier:       "📡 Carrier: ",
	LineType:      "📞 Line type: ",
	TimeZones:     "🕒 Time zones: ",
	International: "🔢 International: ",
	National:      "🔢 National: ",
	E164:          "🔢 E.164: ",
	Unknown:       "unknown",

	FixedLine:         "fixed line",
	Mobile:            "mobile",
	FixedLineOrMobile: "fixed line or mobile",
	TollFree:          "toll free",
	PremiumRate:       "premium rate",
	VoIP:              "VoIP",

	Unparsable:       "❌ Could not parse the number. Make sure it is entered correctly, e.g. +998901234567",
	ImprobableFormat: "❌ This number format is unlikely to exist.",
	InvalidRealWorld: "❌ This number is not valid in the real world.",

	ProcessingError: "❌ Something went wrong while processing your request, please try again later.",
	Usage:           "👋 Send me a phone number (e.g. +998901234567) and I will tell you its region, carrier, line type and time zones.",
	Healthy:         "✅ OK",
	UnknownCommand:  "Unknown command. Send /help for usage.",
}

// LocaleFor looks up a locale by language tag ("zh", "en", "zh-CN", ...).
func LocaleFor(tag string) (Locale, bool) {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(tag)), "-")
	switch base {
	case Chinese.Tag:
		return Chinese, true
	case English.Tag:
		return English, true
	default:
		return Locale{}, false
	}
}

// LineTypeLabel returns the label for t, or Unknown for anything unmapped.
func (l Locale) LineTypeLabel(t LineType) string {
	switch t {
	case FixedLine:
		return l.FixedLine
	case Mobile:
		return l.Mobile
	case FixedLineOrMobile:
		return l.FixedLineOrMobile
	case TollFree:
		return l.TollFree
	case PremiumRate:
		return l.PremiumRate
	case VoIP:
		return l.VoIP
	default:
		return l.Unknown
	}
}
