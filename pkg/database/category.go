package database

import (
	"strings"

	"github.com/samber/lo"
)

type Category string

const (
	CategoryFood          = Category("FOOD")
	CategoryGroceries     = Category("GROCERIES")
	CategoryShopping      = Category("SHOPPING")
	CategoryFuel          = Category("FUEL")
	CategoryTransport     = Category("TRANSPORT")
	CategoryEntertainment = Category("ENTERTAINMENT")
	CategoryBills         = Category("BILLS")
	CategoryHealth        = Category("HEALTH")
	CategoryTravel        = Category("TRAVEL")
	CategoryEducation     = Category("EDUCATION")
	CategoryOther         = Category("OTHER")
)

var AllCategories = []Category{
	CategoryFood,
	CategoryGroceries,
	CategoryShopping,
	CategoryFuel,
	CategoryTransport,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealth,
	CategoryTravel,
	CategoryEducation,
	CategoryOther,
}

func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))

	return c, lo.Contains(AllCategories, c)
}
