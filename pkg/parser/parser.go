package parser

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"

	"github.com/skynet2/ogwallet-vault/pkg/common"
	"github.com/skynet2/ogwallet-vault/pkg/database"
)

const (
	genericTemplateName = "generic"

	reasonNotTransaction = "not a transaction message"
	reasonAmbiguousType  = "ambiguous type"
)

var (
	debitRegex = regexp.MustCompile(
		`(?i)\b(?:debited|debit alert|spent|purchase|purchased|sent|charged|withdrawn|withdrawal|deducted)\b`)
	creditRegex = regexp.MustCompile(
		`(?i)\b(?:credited|credit alert|received|refund|refunded|reversed|reversal|deposited|cashback)\b`)
	spendContextRegex = regexp.MustCompile(
		`(?i)\b(?:spent|purchase|paid|txn|transaction of|charged)\b`)
	financialKeywordRegex = regexp.MustCompile(
		`(?i)\b(?:debited|credited|spent|debit|credit|upi|inr|paid|purchase|withdrawn|txn)\b|\brs\.|₹`)
	genericMoneyRegex = regexp.MustCompile(`(?i)` + moneyToken)
)

type Parser struct {
	templates []*template
}

func NewParser() *Parser {
	return &Parser{
		templates: defaultTemplates(),
	}
}

func (p *Parser) Type() string {
	return "bank-alert"
}

// Parse classifies a message body. It never panics and does no IO.
func (p *Parser) Parse(body string) database.ParseResult {
	body = strings.ReplaceAll(body, "\r\n", "\n")

	for _, tpl := range p.templates {
		matches := tpl.pattern.FindStringSubmatch(body)
		if matches == nil {
			continue
		}

		return p.fromTemplate(tpl, matches, body)
	}

	return p.parseGeneric(body)
}

func (p *Parser) ParseMessage(msg *database.Message) database.ParseResult {
	if msg == nil {
		return database.Ignored(reasonNotTransaction)
	}

	return p.Parse(msg.Body)
}

func (p *Parser) fromTemplate(
	tpl *template,
	matches []string,
	body string,
) database.ParseResult {
	groups := map[string]string{}
	for i, name := range tpl.pattern.SubexpNames() {
		if name != "" && i < len(matches) {
			groups[name] = matches[i]
		}
	}

	if groups["amount"] == "" || groups["handle"] == "" {
		return database.Failure(errors.Mark(
			errors.Newf("template %s matched without required groups: %v", tpl.name, spew.Sdump(matches)),
			common.ErrParseFailure,
		))
	}

	amount, err := parseAmount(groups["amount"])
	if err != nil {
		return database.Failure(err)
	}

	txType, ok := resolveType(body)
	if !ok {
		return database.Ignored(reasonAmbiguousType)
	}

	merchant := extractMerchant(body, tpl.merchants, false)
	if merchant == "" {
		merchant = unknownValue
	}

	return database.Success(database.RawTransactionMatch{
		Amount:          amount,
		Currency:        currencyFromMarker(groups["currency"]),
		AccountHandle:   lastFour(groups["handle"]),
		MerchantRaw:     merchant,
		TransactionType: txType,
		RawBody:         body,
		Template:        tpl.name,
	})
}

func (p *Parser) parseGeneric(body string) database.ParseResult {
	if !financialKeywordRegex.MatchString(body) {
		return database.Ignored(reasonNotTransaction)
	}

	money := genericMoneyRegex.FindStringSubmatch(body)
	if money == nil {
		return database.Failure(errors.Mark(
			errors.New("financial keywords present but no amount next to a currency marker"),
			common.ErrParseFailure,
		))
	}

	currencyIdx := genericMoneyRegex.SubexpIndex("currency")
	amountIdx := genericMoneyRegex.SubexpIndex("amount")

	amount, err := parseAmount(money[amountIdx])
	if err != nil {
		return database.Failure(err)
	}

	txType, ok := resolveType(body)
	if !ok {
		return database.Ignored(reasonAmbiguousType)
	}

	merchant := extractMerchant(body, []*regexp.Regexp{atMerchant, vpaMerchant, toMerchant}, true)
	if merchant == "" {
		merchant = unknownValue
	}

	handle := extractAccountHandle(body)
	if handle == "" {
		handle = unknownValue
	}

	return database.Success(database.RawTransactionMatch{
		Amount:          amount,
		Currency:        currencyFromMarker(money[currencyIdx]),
		AccountHandle:   handle,
		MerchantRaw:     merchant,
		TransactionType: txType,
		RawBody:         body,
		Template:        genericTemplateName,
	})
}

// resolveType reports false when neither keyword class nor a spend context decides the direction.
func resolveType(body string) (database.TransactionType, bool) {
	isDebit := debitRegex.MatchString(body)
	isCredit := creditRegex.MatchString(body)

	switch {
	case isDebit && !isCredit:
		return database.TransactionTypeDebit, true
	case isCredit && !isDebit:
		return database.TransactionTypeCredit, true
	case spendContextRegex.MatchString(body):
		return database.TransactionTypeDebit, true
	default:
		return "", false
	}
}
