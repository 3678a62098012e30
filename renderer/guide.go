package renderer

import (
	"fmt"
	"strings"

	"github.com/tripbook/tripbook"
	"github.com/tripbook/tripbook/guide"
)

// Guide renders the stored destination guide together with the weather
// outlook, emergency numbers and travel tips.
func Guide(t tripbook.Trip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s guide\n\n", t.Destination)
	if t.Currency != "" && t.Rate.IsPositive() {
		fmt.Fprintf(&b, "1 %s = %s\n\n", t.Currency, tripbook.M(t.Rate, t.BaseCurrency))
	}
	if t.Weather != nil && t.Weather.Summary != "" {
		fmt.Fprintf(&b, "> %s\n\n", t.Weather.Summary)
	}
	if t.Emergency != nil {
		b.WriteString("## Emergency\n\n")
		if t.Emergency.Police != "" {
			fmt.Fprintf(&b, "- Police: %s\n", t.Emergency.Police)
		}
		if t.Emergency.Ambulance != "" {
			fmt.Fprintf(&b, "- Ambulance: %s\n", t.Emergency.Ambulance)
		}
		if t.Emergency.Embassy != "" {
			fmt.Fprintf(&b, "- Embassy: %s\n", t.Emergency.Embassy)
		}
		b.WriteString("\n")
	}
	if len(t.Tips) > 0 {
		b.WriteString("## Tips\n\n")
		for _, tip := range t.Tips {
			fmt.Fprintf(&b, "- %s\n", tip)
		}
		b.WriteString("\n")
	}
	if t.Guide != "" {
		b.WriteString(t.Guide)
		b.WriteString("\n")
	} else {
		b.WriteString("No guide stored yet. Run `tbk guide -refresh`.\n")
	}
	return b.String()
}

// Recommendations renders fetched place suggestions by bucket.
func Recommendations(destination string, recs *guide.Recommendations) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Suggestions for %s\n\n", destination)
	writeRecs(&b, "Attractions", recs.Attractions)
	writeRecs(&b, "Restaurants", recs.Restaurants)
	writeRecs(&b, "Hidden gems", recs.HiddenGems)
	return b.String()
}

func writeRecs(b *strings.Builder, title string, recs []guide.Recommendation) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, r := range recs {
		fmt.Fprintf(b, "- **%s** (%s): %s\n", r.Name, r.Location, r.Description)
	}
	b.WriteString("\n")
}
