package models

import "strings"

// SearchMode selects which field a free-text query is matched against.
type SearchMode string

const (
	SearchByName        SearchMode = "name"
	SearchByFullText    SearchMode = "fullText"
	SearchByCapital     SearchMode = "capital"
	SearchByCurrency    SearchMode = "currency"
	SearchByLanguage    SearchMode = "lang"
	SearchByCode        SearchMode = "code"
	SearchByCodes       SearchMode = "codes"
	SearchByRegion      SearchMode = "region"
	SearchBySubregion   SearchMode = "subregion"
	SearchByTranslation SearchMode = "translation"
)

var SearchModes = []SearchMode{
	SearchByName, SearchByFullText, SearchByCapital, SearchByCurrency, SearchByLanguage,
	SearchByCode, SearchByCodes, SearchByRegion, SearchBySubregion, SearchByTranslation,
}

// ParseSearchMode is case-insensitive and falls back to SearchByName.
func ParseSearchMode(s string) SearchMode {
	for _, m := range SearchModes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m
		}
	}
	return SearchByName
}

// Native reports whether the remote service filters this mode itself.
func (m SearchMode) Native() bool {
	switch m {
	case SearchByRegion, SearchBySubregion, SearchByTranslation:
		return false
	}
	return true
}

// Regions and Languages back the coarse filter menus.
var (
	Regions   = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}
	Languages = []string{"English", "Spanish", "French", "Arabic", "Chinese", "Russian", "Portuguese", "German"}
)
