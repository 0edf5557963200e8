package feed

import (
	"strings"
)

// Category is a publication-facing category. Stored articles carry one of
// these fixed values, never a raw source category.
type Category string

const (
	CategoryPunjab        Category = "punjab"
	CategoryNational      Category = "national"
	CategoryWorld         Category = "world"
	CategorySports        Category = "sports"
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryGeneral       Category = "general"
)

// MapCategory maps a source's internal category to a publication category.
// Total by construction: unknown source categories fall into the general
// bucket instead of failing.
func MapCategory(sourceCategory string) Category {
	switch strings.ToLower(strings.TrimSpace(sourceCategory)) {
	case "punjab", "punjabi", "regional":
		return CategoryPunjab
	case "national", "india":
		return CategoryNational
	case "world", "international":
		return CategoryWorld
	case "sports", "sport", "cricket":
		return CategorySports
	case "business", "economy", "markets":
		return CategoryBusiness
	case "entertainment", "bollywood", "pollywood":
		return CategoryEntertainment
	default:
		return CategoryGeneral
	}
}
