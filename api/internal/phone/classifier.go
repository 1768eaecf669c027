// Package phone classifies phone numbers and renders lookup reports.
// The numbering-plan data comes from libphonenumber; this package only
// decides what to ask it and how to present the answer.
package phone

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/nyaruka/phonenumbers"
)

// DefaultLanguage is used for region and carrier names when none is configured.
const DefaultLanguage = "en"

// ErrLookup marks causes that come from a failure inside the metadata
// pipeline rather than from bad input.
var ErrLookup = errors.New("phone lookup failed")

// Options configures a Classifier.
type Options struct {
	// Metadata defaults to Library.
	Metadata Metadata
	// Language for geocoding and carrier names, e.g. "en".
	Language string
}

// Classifier turns a normalized input into a Result. It keeps no mutable
// state and is safe for concurrent use.
type Classifier struct {
	meta Metadata
	lang string
}

// New returns a Classifier configured by opts.
func New(opts Options) *Classifier {
	c := &Classifier{meta: opts.Metadata, lang: opts.Language}
	if c.meta == nil {
		c.meta = Library{}
	}
	if c.lang == "" {
		c.lang = DefaultLanguage
	}
	return c
}

// Classify parses input without a default region and checks it against the
// numbering plan. It never fails: problems are reported through Result.Reason.
func (c *Classifier) Classify(input string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = invalid(ReasonUnparsable, fmt.Errorf("%w: %v", ErrLookup, p))
		}
	}()

	num, err := c.meta.Parse(input)
	if err != nil {
		return invalid(ReasonUnparsable, errors.Wrap(err, "parse"))
	}
	if !c.meta.IsPossible(num) {
		return invalid(ReasonImprobableFormat, nil)
	}
	if !c.meta.IsValid(num) {
		return invalid(ReasonInvalidRealWorld, nil)
	}

	return valid(&Number{
		Region:        c.meta.Region(num, c.lang),
		Carrier:       c.meta.Carrier(num, c.lang),
		LineType:      lineTypeOf(c.meta.Type(num)),
		TimeZones:     c.meta.TimeZones(num),
		International: c.meta.Format(num, phonenumbers.INTERNATIONAL),
		National:      c.meta.Format(num, phonenumbers.NATIONAL),
		E164:          c.meta.Format(num, phonenumbers.E164),
	})
}
