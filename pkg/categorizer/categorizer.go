package categorizer

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/skynet2/ogwallet-vault/pkg/database"
)

type Rule struct {
	Category database.Category `yaml:"category"`
	Keywords []string          `yaml:"keywords"`
}

// DefaultRules is evaluated top to bottom and the first rule with a matching keyword wins.
// Marketplaces sit above entertainment so "AMAZON PRIME" stays SHOPPING, and food delivery
// sits above transport so "UBER EATS" is FOOD.
var DefaultRules = []Rule{
	{
		Category: database.CategoryFood,
		Keywords: []string{
			"swiggy", "zomato", "uber eats", "eatsure", "restaurant", "cafe", "coffee", "starbucks",
			"dominos", "domino's", "pizza", "burger", "mcdonald", "kfc", "subway", "haldiram",
			"biryani", "bakery", "chai", "dhaba", "food",
		},
	},
	{
		Category: database.CategoryGroceries,
		Keywords: []string{
			"bigbasket", "blinkit", "zepto", "dmart", "jiomart", "grofers", "grocery", "supermarket",
			"reliance fresh", "more retail", "nature's basket", "spencer", "instamart",
		},
	},
	{
		Category: database.CategoryShopping,
		Keywords: []string{
			"amazon", "flipkart", "myntra", "ajio", "nykaa", "meesho", "tata cliq", "snapdeal",
			"decathlon", "ikea", "croma", "reliance digital", "lifestyle", "shoppers stop", "mall",
		},
	},
	{
		Category: database.CategoryFuel,
		Keywords: []string{
			"petrol", "fuel", "diesel", "hpcl", "bpcl", "indian oil", "iocl", "shell", "nayara",
			"filling station",
		},
	},
	{
		Category: database.CategoryTransport,
		Keywords: []string{
			"uber", "olacabs", "ola cabs", "rapido", "metro", "irctc", "redbus", "fastag", "parking",
			"blablacar", "yulu",
		},
	},
	{
		Category: database.CategoryEntertainment,
		Keywords: []string{
			"netflix", "prime", "hotstar", "spotify", "apple", "youtube", "bookmyshow", "pvr", "inox",
			"sonyliv", "zee5", "gaana", "steam", "playstation", "cinema",
		},
	},
	{
		Category: database.CategoryBills,
		Keywords: []string{
			"airtel", "jio", "vodafone", "vi postpaid", "bsnl", "electricity", "power", "broadband",
			"recharge", "water bill", "gas bill", "indane", "bescom", "tata play", "act fibernet",
			"insurance", "lic of india",
		},
	},
	{
		Category: database.CategoryHealth,
		Keywords: []string{
			"pharmacy", "apollo", "medplus", "hospital", "clinic", "1mg", "netmeds", "pharmeasy",
			"diagnostic", "practo", "cult.fit", "gym",
		},
	},
	{
		Category: database.CategoryTravel,
		Keywords: []string{
			"makemytrip", "goibibo", "cleartrip", "yatra", "ixigo", "airbnb", "oyo", "hotel",
			"booking.com", "indigo", "air india", "vistara", "spicejet", "akasa",
		},
	},
	{
		Category: database.CategoryEducation,
		Keywords: []string{
			"udemy", "coursera", "byju", "unacademy", "school", "college", "university", "tuition",
			"books",
		},
	},
}

type Categorizer struct {
	rules []Rule
}

func NewCategorizer(rules []Rule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))

		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keywords = append(keywords, k)
			}
		}

		normalized = append(normalized, Rule{Category: r.Category, Keywords: keywords})
	}

	return &Categorizer{
		rules: normalized,
	}
}

func (c *Categorizer) Categorize(merchant string) database.Category {
	lower := strings.ToLower(merchant)
	if strings.TrimSpace(lower) == "" {
		return database.CategoryOther
	}

	for _, r := range c.rules {
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return r.Category
			}
		}
	}

	return database.CategoryOther
}

// LoadRules reads an ordered rule list from a YAML document shaped as a list of
// {category, keywords} entries.
func LoadRules(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read category rules %s", path)
	}

	var rules []Rule
	if err = yaml.Unmarshal(raw, &rules); err != nil {
		return nil, errors.Wrapf(err, "failed to parse category rules %s", path)
	}

	for i, r := range rules {
		category, ok := database.ParseCategory(string(r.Category))
		if !ok {
			return nil, errors.Newf("rule %d: unknown category %q", i, r.Category)
		}

		if len(r.Keywords) == 0 {
			return nil, errors.Newf("rule %d: category %s has no keywords", i, category)
		}

		rules[i].Category = category
	}

	return rules, nil
}
