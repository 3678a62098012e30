package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/tripbook/tripbook"
	"github.com/tripbook/tripbook/guide"
	"github.com/tripbook/tripbook/renderer"
	"google.golang.org/genai"
)

type guideCmd struct {
	refresh bool
	section string
}

func (*guideCmd) Name() string     { return "guide" }
func (*guideCmd) Synopsis() string { return "fetch or show the destination guide" }
func (*guideCmd) Usage() string {
	return `tbk guide [-refresh] [-s <section>]

  Shows the destination guide of the active trip. With -refresh (or when no
  guide is stored yet), asks Gemini for the destination's currency, exchange
  rate, weather, emergency numbers, tips and guide, and stores the answer on
  the trip. Requires GEMINI_API_KEY.
`
}

func (c *guideCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "Fetch fresh destination info even when a guide is stored.")
	f.StringVar(&c.section, "s", "", "Show only the section whose title contains this text.")
}

func (c *guideCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}

	if c.refresh || t.Guide == "" {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}
		svc := guide.New(client, cfg.Model)
		info, err := svc.FetchDestinationInfo(ctx, t.Destination, t.StartDate.Month(), t.Duration(), t.BaseCurrency)
		if err != nil {
			return fail(err)
		}
		t = applyDestinationInfo(t, info)
		if err := saveTrip(s, t); err != nil {
			return fail(err)
		}
	}

	if c.section == "" {
		printMarkdown(renderer.Guide(t))
		return subcommands.ExitSuccess
	}
	q := strings.ToLower(c.section)
	for _, sec := range guide.Sections(t.Guide) {
		if strings.Contains(strings.ToLower(sec.Title), q) {
			printMarkdown("## " + sec.Title + "\n\n" + sec.Body + "\n")
			return subcommands.ExitSuccess
		}
	}
	return fail(fmt.Errorf("no guide section matches %q", c.section))
}

// applyDestinationInfo merges a fetched answer into the trip. The stored rate
// only changes when the answer carries a positive one.
func applyDestinationInfo(t tripbook.Trip, info *guide.DestinationInfo) tripbook.Trip {
	n := t.Clone()
	n.Currency = info.Currency
	if info.Rate > 0 {
		n.Rate = decimal.NewFromFloat(info.Rate)
	}
	if info.WeatherSummary != "" || len(info.DailyWeather) > 0 {
		n.Weather = &tripbook.Weather{Summary: info.WeatherSummary, Daily: info.DailyWeather}
	}
	if info.Police != "" || info.Ambulance != "" || info.Embassy != "" {
		n.Emergency = &tripbook.EmergencyInfo{
			Police:    info.Police,
			Ambulance: info.Ambulance,
			Embassy:   info.Embassy,
		}
	}
	if len(info.Tips) > 0 {
		n.Tips = info.Tips
	}
	if info.Guide != "" {
		n.Guide = info.Guide
	}
	return n
}

type recommendCmd struct{}

func (*recommendCmd) Name() string     { return "recommend" }
func (*recommendCmd) Synopsis() string { return "suggest places that fit the itinerary" }
func (*recommendCmd) Usage() string {
	return `tbk recommend

  Asks Gemini for attractions, restaurants and hidden gems that complement
  the active trip's itinerary. Requires GEMINI_API_KEY.
`
}
func (*recommendCmd) SetFlags(*flag.FlagSet) {}

func (*recommendCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openStore()
	if err != nil {
		return fail(err)
	}
	t, err := activeTrip(s)
	if err != nil {
		return fail(err)
	}
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	svc := guide.New(client, cfg.Model)
	recs, err := svc.FetchRecommendations(ctx, t.Destination, renderer.Itinerary(t))
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Recommendations(t.Destination, recs))
	return subcommands.ExitSuccess
}
