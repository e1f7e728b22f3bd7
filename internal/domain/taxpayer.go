package domain

import (
	"fmt"
	"strings"
)

// Category identifies the taxpayer class that drives the tax-free threshold
type Category string

const (
	CategoryGeneral          Category = "general"
	CategoryFemale           Category = "female"
	CategorySenior           Category = "senior"
	CategoryDisabled         Category = "disabled"
	CategoryThirdGender      Category = "third_gender"
	CategoryFreedomFighter   Category = "freedom_fighter"
	CategoryParentOfDisabled Category = "parent_disabled"
)

// Categories lists every supported taxpayer category in display order
var Categories = []Category{
	CategoryGeneral,
	CategoryFemale,
	CategorySenior,
	CategoryDisabled,
	CategoryThirdGender,
	CategoryFreedomFighter,
	CategoryParentOfDisabled,
}

var categoryAliases = map[string]Category{
	"women":              CategoryFemale,
	"woman":              CategoryFemale,
	"elderly":            CategorySenior,
	"senior_citizen":     CategorySenior,
	"65+":                CategorySenior,
	"thirdgender":        CategoryThirdGender,
	"third-gender":       CategoryThirdGender,
	"freedom-fighter":    CategoryFreedomFighter,
	"freedomfighter":     CategoryFreedomFighter,
	"parent_of_disabled": CategoryParentOfDisabled,
	"parent-disabled":    CategoryParentOfDisabled,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns a human-readable name for the category
func (c Category) Label() string {
	switch c {
	case CategoryGeneral:
		return "General"
	case CategoryFemale:
		return "Female"
	case CategorySenior:
		return "Senior citizen (65+)"
	case CategoryDisabled:
		return "Person with disability"
	case CategoryThirdGender:
		return "Third gender"
	case CategoryFreedomFighter:
		return "War-wounded freedom fighter"
	case CategoryParentOfDisabled:
		return "Parent of a person with disability"
	default:
		return string(c)
	}
}

// LookupCategory resolves s, including aliases, to a Category
func LookupCategory(s string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c := Category(key); c.Valid() {
		return c, true
	}
	c, ok := categoryAliases[key]
	return c, ok
}

// ParseCategory normalizes s into a Category. Unknown or empty values fall back to general.
func ParseCategory(s string) Category {
	if c, ok := LookupCategory(s); ok {
		return c
	}
	return CategoryGeneral
}

// Location identifies where the taxpayer lives, which drives the minimum tax
type Location string

const (
	LocationDhaka      Location = "dhaka"
	LocationChittagong Location = "chittagong"
	LocationOtherCity  Location = "other_city"
	LocationDistrict   Location = "district"
)

// Locations lists every supported location in display order
var Locations = []Location{LocationDhaka, LocationChittagong, LocationOtherCity, LocationDistrict}

// Valid reports whether l is one of the known locations
func (l Location) Valid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// Label returns a human-readable name for the location
func (l Location) Label() string {
	switch l {
	case LocationDhaka:
		return "Dhaka city corporation"
	case LocationChittagong:
		return "Chattogram city corporation"
	case LocationOtherCity:
		return "Other city corporation"
	case LocationDistrict:
		return "District / other area"
	default:
		return string(l)
	}
}

// LookupLocation resolves s, including common spellings, to a Location
func LookupLocation(s string) (Location, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "chattogram", "ctg":
		return LocationChittagong, true
	case "other-city", "othercity", "city":
		return LocationOtherCity, true
	case "other", "rural":
		return LocationDistrict, true
	}
	l := Location(key)
	return l, l.Valid()
}

// ParseLocation normalizes s into a Location. Unknown or empty values fall back to dhaka.
func ParseLocation(s string) Location {
	if l, ok := LookupLocation(s); ok {
		return l
	}
	return LocationDhaka
}

// TaxpayerProfile describes who is filing
type TaxpayerProfile struct {
	Category Category `yaml:"category" json:"category"`
	Age      *int     `yaml:"age,omitempty" json:"age,omitempty"`
	Location Location `yaml:"location" json:"location"`
}

// DefaultProfile returns the profile used when nothing has been entered yet
func DefaultProfile() TaxpayerProfile {
	return TaxpayerProfile{Category: CategoryGeneral, Location: LocationDhaka}
}

// Normalized returns a copy with category and location coerced to known values
// and a negative age dropped.
func (p TaxpayerProfile) Normalized() TaxpayerProfile {
	out := TaxpayerProfile{
		Category: ParseCategory(string(p.Category)),
		Location: ParseLocation(string(p.Location)),
	}
	if p.Age != nil && *p.Age >= 0 {
		age := *p.Age
		out.Age = &age
	}
	return out
}

// FiscalYear identifies a July-June Bangladesh income year
type FiscalYear string

const (
	FY2024_25 FiscalYear = "2024-25"
	FY2025_26 FiscalYear = "2025-26"
)

// SupportedFiscalYears returns the fiscal years the calculator knows, oldest first
func SupportedFiscalYears() []FiscalYear {
	return []FiscalYear{FY2024_25, FY2025_26}
}

// Label returns the conventional "FY2024-25" form
func (fy FiscalYear) Label() string {
	return "FY" + string(fy)
}

// ParseFiscalYear accepts "2024-25", "FY2024-25", "2024-2025" and "2024"
func ParseFiscalYear(s string) (FiscalYear, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.TrimPrefix(key, "FY")
	key = strings.TrimSpace(key)
	switch key {
	case "2024-25", "2024-2025", "2024", "24-25", "2425":
		return FY2024_25, nil
	case "2025-26", "2025-2026", "2025", "25-26", "2526":
		return FY2025_26, nil
	}
	return "", fmt.Errorf("unsupported fiscal year %q (valid: %s, %s)", s, FY2024_25, FY2025_26)
}
