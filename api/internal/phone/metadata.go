package phone

import (
	"slices"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// unknownTimeZone is what the timezone tables return when nothing matches.
const unknownTimeZone = "Etc/Unknown"

// Metadata is the numbering-plan capability the classifier relies on.
type Metadata interface {
	Parse(text string) (*phonenumbers.PhoneNumber, error)
	IsPossible(num *phonenumbers.PhoneNumber) bool
	IsValid(num *phonenumbers.PhoneNumber) bool
	Region(num *phonenumbers.PhoneNumber, lang string) string
	Carrier(num *phonenumbers.PhoneNumber, lang string) string
	TimeZones(num *phonenumbers.PhoneNumber) []string
	Type(num *phonenumbers.PhoneNumber) phonenumbers.PhoneNumberType
	Format(num *phonenumbers.PhoneNumber, format phonenumbers.PhoneNumberFormat) string
}

// Library implements Metadata on top of libphonenumber's embedded tables.
// The tables are loaded lazily by the library on first use and are read-only.
type Library struct{}

var _ Metadata = Library{}

// Parse parses text without a default region, so a country code is required.
func (Library) Parse(text string) (*phonenumbers.PhoneNumber, error) {
	return phonenumbers.Parse(text, "")
}

func (Library) IsPossible(num *phonenumbers.PhoneNumber) bool {
	return phonenumbers.IsPossibleNumber(num)
}

func (Library) IsValid(num *phonenumbers.PhoneNumber) bool {
	return phonenumbers.IsValidNumber(num)
}

// Region returns the geocoded description of the number. When the tables
// have no area-level entry it falls back to the English country name.
func (Library) Region(num *phonenumbers.PhoneNumber, lang string) string {
	if desc, err := phonenumbers.GetGeocodingForNumber(num, lang); err == nil && desc != "" {
		return desc
	}
	code := phonenumbers.GetRegionCodeForNumber(num)
	if code == "" {
		return ""
	}
	if region, err := language.ParseRegion(code); err == nil {
		if name := display.English.Regions().Name(region); name != "" {
			return name
		}
	}
	return code
}

func (Library) Carrier(num *phonenumbers.PhoneNumber, lang string) string {
	name, err := phonenumbers.GetCarrierForNumber(num, lang)
	if err != nil {
		return ""
	}
	return name
}

func (Library) TimeZones(num *phonenumbers.PhoneNumber) []string {
	zones, err := phonenumbers.GetTimezonesForNumber(num)
	if err != nil {
		return nil
	}
	return slices.DeleteFunc(slices.Clone(zones), func(z string) bool {
		return z == "" || z == unknownTimeZone
	})
}

func (Library) Type(num *phonenumbers.PhoneNumber) phonenumbers.PhoneNumberType {
	return phonenumbers.GetNumberType(num)
}

func (Library) Format(num *phonenumbers.PhoneNumber, format phonenumbers.PhoneNumberFormat) string {
	return phonenumbers.Format(num, format)
}
