package parser

import (
	"regexp"
	"strings"
)

const (
	// masked or grouped card numbers: XX1234, XXXX XXXX XXXX 3456, 5021-XXXX-7788
	handleSpan   = `(?:[x*]+[ \-]?|\d+[ \-])*\d{4,}`
	moneyToken   = `(?P<currency>\brs\.?|\binr|₹|\busd|\$|\beur|€)\s*(?P<amount>\d[\d,]*(?:\.\d+)?)`
	accountToken = `\b(?:a/c|acct|account|card)(?:\s*(?:no\.?|number|ending(?:\s+in)?))?\s*[:\-]?\s*(?P<handle>` + handleSpan + `)`
)

var (
	atMerchant           = regexp.MustCompile(`(?i)\bat\s+([^\n,;:()]+)`)
	toMerchant           = regexp.MustCompile(`(?i)\bto\s+([^\n,;:()]+)`)
	fromMerchant         = regexp.MustCompile(`(?i)\bfrom\s+([^\n,;:()]+)`)
	byMerchant           = regexp.MustCompile(`(?i)\bby\s+([^\n,;:()]+)`)
	vpaMerchant          = regexp.MustCompile(`(?i)\bvpa\s+([^\s,;()]+)`)
	dateThenOnMerchant   = regexp.MustCompile(`(?i)\bon\s+\d{1,2}[-/][a-z]{3}[-/]\d{2,4}\s+on\s+([^\n,;:()]+)`)
	istLineMerchant      = regexp.MustCompile(`(?i)\bist\s*\n\s*([^\n]+)`)
	trailingDashMerchant = regexp.MustCompile(`\s-\s+([^\n]+?)\s*$`)
)

type template struct {
	name      string
	pattern   *regexp.Regexp
	merchants []*regexp.Regexp
}

func newTemplate(name string, pattern string, merchants ...*regexp.Regexp) *template {
	pattern = strings.ReplaceAll(pattern, "{money}", moneyToken)
	pattern = strings.ReplaceAll(pattern, "{acct}", accountToken)

	return &template{
		name:      name,
		pattern:   regexp.MustCompile(`(?is)` + pattern),
		merchants: merchants,
	}
}

// defaultTemplates is ordered from the most specific layout to the most generic one.
func defaultTemplates() []*template {
	return []*template{
		newTemplate("upi_sent_from_account",
			`\bsent\s+{money}\s+from\s+[^\n]*?{acct}`,
			vpaMerchant, toMerchant),
		newTemplate("amount_spent_on_card",
			`{money}\s+spent\s+(?:on|using)\s+[^\n]*?{acct}`,
			dateThenOnMerchant, atMerchant),
		newTemplate("amount_debited_from_account",
			`{money}\s+(?:has\s+been\s+|is\s+)?debited\s+from\s+[^\n]*?{acct}`,
			atMerchant, vpaMerchant, toMerchant),
		newTemplate("debited_amount_from_account",
			`\bdebited\s+{money}\s+from\s+[^\n]*?{acct}`,
			atMerchant, vpaMerchant, toMerchant),
		newTemplate("account_debited_with_amount",
			`{acct}[^\n]*?\bdebited\s+(?:with|by|for)\s+{money}`,
			atMerchant, vpaMerchant, toMerchant),
		newTemplate("amount_credited_to_account",
			`{money}\s+(?:has\s+been\s+|is\s+)?credited\s+to\s+[^\n]*?{acct}`,
			vpaMerchant, fromMerchant, byMerchant),
		newTemplate("card_payment_received",
			`\bpayment\s+of\s+{money}\s+has\s+been\s+received\s+[^\n]*?{acct}`,
			trailingDashMerchant),
		newTemplate("card_charged_amount",
			`{acct}\s+(?:charged|debited)\s+(?:with\s+|for\s+)?{money}`,
			atMerchant),
		newTemplate("transaction_of_amount_on_card",
			`\btransaction\s+of\s+{money}\s+on\s+[^\n]*?{acct}`,
			atMerchant),
		newTemplate("spent_amount_at_merchant",
			`\bspent\s+{money}\s+at\s+[^\n]*?{acct}`,
			atMerchant),
		newTemplate("spent_amount_card_no",
			`\bspent\s+{money}\s*\n[^\n]*?{acct}`,
			istLineMerchant, atMerchant),
	}
}
