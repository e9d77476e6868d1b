package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/skynet2/ogwallet-vault/pkg/common"
)

const unknownValue = "Unknown"

var (
	accountRegex = regexp.MustCompile(
		`(?i)(?:\b(?:a/c|acct|account|card)(?:\s*(?:no\.?|number|ending(?:\s+in|\s+with)?))?|\bending(?:\s+in|\s+with)?)\s*[:\-]?\s*(` + handleSpan + `)`)
	merchantDotBoundary = regexp.MustCompile(`\.(?:\s|$)`)
	vpaPrefix           = regexp.MustCompile(`(?i)^vpa\s+`)
	merchantStopWords   = regexp.MustCompile(
		`(?i)\s+(?:on|via|with|approved|ref|using|avl|avail|available|is|has|for|info|dated|thru|towards)\b`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	digitRunRegex   = regexp.MustCompile(`\d{4,}`)
)

// parseAmount strips grouping separators and currency symbols and requires a strictly positive value.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' {
			return r
		}

		return -1
	}, raw)
	cleaned = strings.TrimSuffix(cleaned, ".")

	if cleaned == "" {
		return decimal.Zero, errors.Mark(errors.Newf("no digits in amount token %q", raw), common.ErrParseFailure)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, errors.Mark(errors.Wrapf(err, "failed to parse amount %s", raw), common.ErrParseFailure)
	}

	if !amount.IsPositive() {
		return decimal.Zero, errors.Mark(errors.Newf("amount must be positive, got %s", amount), common.ErrParseFailure)
	}

	return amount, nil
}

func currencyFromMarker(marker string) string {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(marker)), ".") {
	case "$", "usd":
		return "USD"
	case "€", "eur":
		return "EUR"
	default:
		return "INR"
	}
}

// lastFour returns the trailing four digits of the last digit run of a handle span.
func lastFour(span string) string {
	runs := digitRunRegex.FindAllString(span, -1)
	if len(runs) == 0 {
		return ""
	}

	digits := runs[len(runs)-1]
	if len(digits) <= 4 {
		return digits
	}

	return digits[len(digits)-4:]
}

func extractAccountHandle(body string) string {
	matches := accountRegex.FindStringSubmatch(body)
	if len(matches) != 2 {
		return ""
	}

	return lastFour(matches[1])
}

func cleanMerchant(raw string) string {
	merchant := vpaPrefix.ReplaceAllString(strings.TrimSpace(raw), "")

	if loc := merchantDotBoundary.FindStringIndex(merchant); loc != nil {
		merchant = merchant[:loc[0]]
	}

	if loc := merchantStopWords.FindStringIndex(merchant); loc != nil {
		merchant = merchant[:loc[0]]
	}

	merchant = whitespaceRegex.ReplaceAllString(merchant, " ")
	merchant = strings.Trim(merchant, " -*/!?")

	hasLetter := false
	for _, r := range merchant {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}

	if !hasLetter {
		return ""
	}

	return merchant
}

func extractMerchant(body string, extractors []*regexp.Regexp, strict bool) string {
	for _, ex := range extractors {
		for _, match := range ex.FindAllStringSubmatch(body, -1) {
			if len(match) != 2 {
				continue
			}

			merchant := cleanMerchant(match[1])
			if merchant == "" {
				continue
			}

			if strict && !looksLikeMerchant(merchant) {
				continue
			}

			return merchant
		}
	}

	return ""
}

// looksLikeMerchant rejects prose picked up by loose markers in free-form mails.
func looksLikeMerchant(merchant string) bool {
	lower := strings.ToLower(merchant)
	if strings.HasPrefix(lower, "http") {
		return false
	}

	first := []rune(merchant)[0]

	return unicode.IsUpper(first) || unicode.IsDigit(first)
}
