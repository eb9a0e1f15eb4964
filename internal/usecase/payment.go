package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

type issuerRule struct {
	name    string
	pattern *regexp.Regexp
}

// South African issuer prefixes. The first matching rule wins, so the order
// of this table settles overlapping ranges: ABSA claims most of the 4xx
// space ahead of the narrower banks. The 411 range is left to the generic
// Visa fallback.
var issuerRules = []issuerRule{
	{name: "ABSA", pattern: regexp.MustCompile(`^4(0[2-9]|1[02-9]|[2-9][0-9])`)},
	{name: "Standard Bank", pattern: regexp.MustCompile(`^4(1[7-9]|[23][0-9]|4[01])`)},
	{name: "FNB", pattern: regexp.MustCompile(`^4(1[02-6]|9[0-9])`)},
	{name: "Nedbank", pattern: regexp.MustCompile(`^4(0[01]|8[0-9])`)},
	{name: "Capitec", pattern: regexp.MustCompile(`^5(4[6-9]|5[0-5])`)},
	{name: "Discovery Bank", pattern: regexp.MustCompile(`^60[0-9]`)},
	{name: "African Bank", pattern: regexp.MustCompile(`^45[0-9]`)},
	{name: "Investec", pattern: regexp.MustCompile(`^49[0-9]`)},
}

var (
	visaPattern       = regexp.MustCompile(`^4`)
	mastercardPattern = regexp.MustCompile(`^5[1-5]`)
	amexPattern       = regexp.MustCompile(`^3[47]`)
)

// CardBrand labels returned by ClassifyCard when no issuer rule matches.
const (
	BrandVisa       = "Visa"
	BrandMastercard = "Mastercard"
	BrandAmex       = "American Express"
)

// StripCardNumber removes all whitespace from a card number.
func StripCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
}

// ClassifyCard names the issuing bank or card brand of number, or returns
// an empty string when nothing matches.
func ClassifyCard(number string) string {
	clean := StripCardNumber(number)
	for _, rule := range issuerRules {
		if rule.pattern.MatchString(clean) {
			return rule.name
		}
	}

	switch {
	case visaPattern.MatchString(clean):
		return BrandVisa
	case mastercardPattern.MatchString(clean):
		return BrandMastercard
	case amexPattern.MatchString(clean):
		return BrandAmex
	}
	return ""
}

// FormatCardNumber groups the stripped number in blocks of four.
func FormatCardNumber(number string) string {
	clean := StripCardNumber(number)
	var b strings.Builder
	n := 0
	for _, r := range clean {
		if n > 0 && n%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// ValidateCardNumber checks a 12 to 19 digit card number using Luhn algorithm.
func ValidateCardNumber(number string) bool {
	clean := StripCardNumber(number)
	if len(clean) < 12 || len(clean) > 19 {
		return false
	}

	var sum int
	var alt bool
	for i := len(clean) - 1; i >= 0; i-- {
		r := rune(clean[i])
		if !unicode.IsDigit(r) {
			return false
		}
		digit := int(r - '0')
		if alt {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alt = !alt
	}

	return sum%10 == 0
}

// LastFour returns the trailing four digits of a card number.
func LastFour(number string) string {
	clean := StripCardNumber(number)
	if len(clean) <= 4 {
		return clean
	}
	return clean[len(clean)-4:]
}

// DescribeCard reports what the checkout form shows for number.
func DescribeCard(number string) model.CardInfo {
	return model.CardInfo{
		Brand:     ClassifyCard(number),
		Formatted: FormatCardNumber(number),
		Valid:     ValidateCardNumber(number),
	}
}
