package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

func renderList(w io.Writer, cs []models.Country) {
	if len(cs) == 0 {
		fmt.Fprintln(w, "No countries found.")
		return
	}
	for _, c := range cs {
		fmt.Fprintf(w, "%-3s %s %-32s %-9s %s\n",
			c.Code(), flagOf(c), c.Name.Common, c.Region, numbers.Sprintf("%d", c.Population))
	}
}

// renderDetail prints one country. favorite is nil when no user is signed in.
func renderDetail(w io.Writer, c models.Country, borders []models.Country, favorite *bool) {
	fmt.Fprintf(w, "%s %s (%s)\n", flagOf(c), c.Name.Common, c.Code())
	if favorite != nil && *favorite {
		fmt.Fprintln(w, "★ in your favorites")
	}

	row := func(label, value string) {
		if value == "" {
			value = "N/A"
		}
		fmt.Fprintf(w, "  %-16s %s\n", label+":", value)
	}

	row("Official name", c.Name.Official)
	row("Native names", strings.Join(nativeNames(c), ", "))
	row("Capital", strings.Join(c.Capital, ", "))
	row("Region", c.Region)
	row("Subregion", c.Subregion)
	row("Population", numbers.Sprintf("%d", c.Population))
	if c.Area > 0 {
		row("Area", numbers.Sprintf("%.0f km²", c.Area))
	} else {
		row("Area", "")
	}
	row("Languages", strings.Join(c.LanguageNames(), ", "))
	row("Currencies", strings.Join(c.CurrencyNames(), ", "))
	row("Timezones", strings.Join(c.Timezones, ", "))
	row("Top level domain", strings.Join(c.TLD, ", "))
	row("Independent", yesNo(c.Independent))
	row("UN member", yesNo(c.UNMember))
	row("Landlocked", yesNo(c.Landlocked))
	row("Map", c.Maps.GoogleMaps)
	row("Flag", c.Flags.PNG)

	if len(borders) == 0 {
		row("Borders", "none")
		return
	}
	names := make([]string, 0, len(borders))
	for _, b := range borders {
		names = append(names, fmt.Sprintf("%s (%s)", b.Name.Common, b.Code()))
	}
	row("Borders", strings.Join(names, ", "))
}

func nativeNames(c models.Country) []string {
	var out []string
	for _, lang := range slices.Sorted(maps.Keys(c.Name.NativeName)) {
		n := c.Name.NativeName[lang].Common
		if n != "" && n != c.Name.Common {
			out = append(out, n)
		}
	}
	return out
}

func flagOf(c models.Country) string {
	if c.Flag != "" {
		return c.Flag
	}
	return "  "
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
