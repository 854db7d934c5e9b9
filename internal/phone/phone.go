package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultCountryCode is prepended to 10 digit national numbers.
const DefaultCountryCode = "91"

// Normalizer turns user-entered phone numbers into the digit string used as
// the path of a click-to-chat link.
//
// The rule is:
//   - drop every character that is not an ASCII digit
//   - an 11 digit number with a leading 0 is a trunk-prefixed national
//     number: drop the 0
//   - a leading 0 in front of the country code and a 10 digit number is
//     dropped too
//   - a 10 digit number gets the country code prepended
//   - anything else is returned as is
//
// Normalize never fails. Malformed input comes back un-normalized and the
// caller decides what to do with it. Normalize is idempotent.
type Normalizer struct {
	// CountryCode defaults to DefaultCountryCode when empty.
	CountryCode string
}

func (n Normalizer) Normalize(raw string) string {
	d := Digits(raw)
	cc := n.countryCode()
	if strings.HasPrefix(d, "0") {
		rest := d[1:]
		if len(rest) == 10 || (len(rest) == len(cc)+10 && strings.HasPrefix(rest, cc)) {
			d = rest
		}
	}
	if len(d) == 10 {
		return cc + d
	}
	return d
}

func (n Normalizer) countryCode() string {
	if cc := Digits(n.CountryCode); cc != "" {
		return cc
	}
	return DefaultCountryCode
}

// Normalize applies the default Normalizer.
func Normalize(raw string) string {
	return Normalizer{}.Normalize(raw)
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Validator checks canonical numbers against libphonenumber metadata.
// It is advisory: nothing in the link path rejects an invalid number.
type Validator struct {
	// Region is used when the number cannot be parsed as international.
	Region string
}

func (v Validator) Valid(canonical string) bool {
	canonical = Digits(canonical)
	if canonical == "" {
		return false
	}
	num, err := phonenumbers.Parse("+"+canonical, "")
	if err != nil && v.Region != "" {
		num, err = phonenumbers.Parse(canonical, strings.ToUpper(v.Region))
	}
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
