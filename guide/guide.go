// Package guide talks to Gemini for destination information and itinerary
// recommendations. It is a remote collaborator of the trip document model:
// callers await one result and perform a single document replacement, a
// failed call leaves local state untouched.
package guide

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used unless the caller overrides it.
const DefaultModel = "gemini-2.5-flash"

// Service wraps the Gemini client with the model choice.
type Service struct {
	client *genai.Client
	model  string
}

// New creates a guide service. An empty model selects DefaultModel.
func New(client *genai.Client, model string) *Service {
	if model == "" {
		model = DefaultModel
	}
	return &Service{client: client, model: model}
}

// ask sends one prompt and returns the raw JSON text of the response.
func (s *Service) ask(ctx context.Context, prompt string) ([]byte, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("guide request failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("guide request returned no content")
	}
	return []byte(text), nil
}

// DestinationInfo is the structured answer to a destination query.
type DestinationInfo struct {
	Currency       string   `json:"currency"`       // local currency code
	Rate           float64  `json:"rate"`           // local currency to base currency
	WeatherSummary string   `json:"weatherSummary"` // one-line month outlook
	DailyWeather   []string `json:"dailyWeather"`   // one string per trip day
	Police         string   `json:"police"`
	Ambulance      string   `json:"ambulance"`
	Embassy        string   `json:"embassy"`
	Tips           []string `json:"tips"`
	Guide          string   `json:"guide"` // markdown destination guide
}

// FetchDestinationInfo asks for currency, exchange rate, weather, emergency
// contacts, travel tips and a markdown guide for a destination and month.
func (s *Service) FetchDestinationInfo(ctx context.Context, destination string, month time.Month, days int, baseCurrency string) (*DestinationInfo, error) {
	prompt := fmt.Sprintf(`You are a travel planning assistant.
Destination: %s. Month of travel: %s. Trip length: %d days. The traveler's home currency is %s.

Reply with a single JSON object with these fields:
- "currency": the destination's ISO 4217 currency code
- "rate": the approximate value of one unit of the destination currency in %s, as a number
- "weatherSummary": one sentence on typical %s weather there
- "dailyWeather": an array of %d short per-day weather strings
- "police", "ambulance", "embassy": local emergency phone numbers as strings
- "tips": an array of 5 practical travel tips
- "guide": a markdown destination guide with "## " sections for Highlights, Food, Transport and Etiquette`,
		destination, month, days, baseCurrency, baseCurrency, month, days)

	raw, err := s.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var info DestinationInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("cannot parse destination info: %w", err)
	}
	if info.Currency == "" {
		return nil, fmt.Errorf("destination info is missing the currency code")
	}
	return &info, nil
}

// Recommendation is one suggested place.
type Recommendation struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Recommendations categorizes the suggestions derived from an itinerary.
type Recommendations struct {
	Attractions []Recommendation `json:"attractions"`
	Restaurants []Recommendation `json:"restaurants"`
	HiddenGems  []Recommendation `json:"hiddenGems"`
}

// FetchRecommendations asks for attraction, restaurant and hidden-gem
// suggestions that complement an existing itinerary, given as plain text.
func (s *Service) FetchRecommendations(ctx context.Context, destination, itinerary string) (*Recommendations, error) {
	prompt := fmt.Sprintf(`You are a travel planning assistant.
A traveler is visiting %s with this itinerary:

%s

Suggest places that complement it, avoiding anything already planned.
Reply with a single JSON object with fields "attractions", "restaurants" and
"hiddenGems", each an array of objects with "name", "location" and
"description" strings. Three entries per array.`, destination, itinerary)

	raw, err := s.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var recs Recommendations
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("cannot parse recommendations: %w", err)
	}
	return &recs, nil
}
