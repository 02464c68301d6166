// Package models defines the records exchanged between the directory client,
// the local store and the REPL: countries, users and search modes.
package models

import (
	"fmt"
	"sort"
	"strings"
)

// Translation is a pair of common and official names in one language.
type Translation struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type CountryName struct {
	Common     string                 `json:"common"`
	Official   string                 `json:"official"`
	NativeName map[string]Translation `json:"nativeName,omitempty"`
}

type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

type Maps struct {
	GoogleMaps     string `json:"googleMaps"`
	OpenStreetMaps string `json:"openStreetMaps"`
}

// Country is a record as served by the REST Countries v3.1 API.
// CCA3 is the only stable identity; names are not unique.
type Country struct {
	Name         CountryName            `json:"name"`
	CCA2         string                 `json:"cca2"`
	CCA3         string                 `json:"cca3"`
	CCN3         string                 `json:"ccn3,omitempty"`
	Region       string                 `json:"region"`
	Subregion    string                 `json:"subregion,omitempty"`
	Capital      []string               `json:"capital,omitempty"`
	Population   int64                  `json:"population"`
	Area         float64                `json:"area,omitempty"`
	Languages    map[string]string      `json:"languages,omitempty"`
	Currencies   map[string]Currency    `json:"currencies,omitempty"`
	Flags        Flags                  `json:"flags"`
	Flag         string                 `json:"flag,omitempty"`
	Borders      []string               `json:"borders,omitempty"`
	Timezones    []string               `json:"timezones,omitempty"`
	TLD          []string               `json:"tld,omitempty"`
	AltSpellings []string               `json:"altSpellings,omitempty"`
	Translations map[string]Translation `json:"translations,omitempty"`
	Continents   []string               `json:"continents,omitempty"`
	Independent  bool                   `json:"independent"`
	UNMember     bool                   `json:"unMember"`
	Landlocked   bool                   `json:"landlocked"`
	Maps         Maps                   `json:"maps"`
}

// Code returns the three-letter country code.
func (c Country) Code() string { return c.CCA3 }

// LanguageNames returns language names ordered by language code.
func (c Country) LanguageNames() []string {
	codes := sortedKeys(c.Languages)
	out := make([]string, 0, len(codes))
	for _, k := range codes {
		out = append(out, c.Languages[k])
	}
	return out
}

// CurrencyNames renders currencies as "Name (symbol)" ordered by currency code.
func (c Country) CurrencyNames() []string {
	codes := sortedKeys(c.Currencies)
	out := make([]string, 0, len(codes))
	for _, k := range codes {
		cur := c.Currencies[k]
		if cur.Symbol == "" {
			out = append(out, cur.Name)
			continue
		}
		out = append(out, fmt.Sprintf("%s (%s)", cur.Name, cur.Symbol))
	}
	return out
}

func (c Country) InRegion(q string) bool { return ContainsFold(c.Region, q) }

func (c Country) InSubregion(q string) bool { return ContainsFold(c.Subregion, q) }

// HasTranslation reports whether any common or official translation in any
// language contains q.
func (c Country) HasTranslation(q string) bool {
	for _, t := range c.Translations {
		if ContainsFold(t.Common, q) || ContainsFold(t.Official, q) {
			return true
		}
	}
	return false
}

// SpeaksLanguage matches q against language names, not codes.
func (c Country) SpeaksLanguage(q string) bool {
	for _, name := range c.Languages {
		if ContainsFold(name, q) {
			return true
		}
	}
	return false
}

// ContainsFold is a case-insensitive strings.Contains.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Filter keeps countries for which keep returns true, preserving order.
func Filter(cs []Country, keep func(Country) bool) []Country {
	out := make([]Country, 0, len(cs))
	for _, c := range cs {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Intersect returns the elements of a whose code also appears in b, in a's order.
func Intersect(a, b []Country) []Country {
	codes := make(map[string]struct{}, len(b))
	for _, c := range b {
		codes[c.Code()] = struct{}{}
	}
	return Filter(a, func(c Country) bool {
		_, ok := codes[c.Code()]
		return ok
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
