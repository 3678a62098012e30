package tripbook

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeTrip writes the canonical JSON form of a trip.
func EncodeTrip(w io.Writer, t Trip) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("cannot marshal trip %q: %w", t.ID, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("cannot write trip: %w", err)
	}
	return nil
}

// DecodeTrip reads a trip from its canonical JSON form. Unknown fields are
// ignored, missing fields stay zero-valued.
func DecodeTrip(r io.Reader) (Trip, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Trip{}, fmt.Errorf("cannot read trip: %w", err)
	}
	var t Trip
	if err := json.Unmarshal(data, &t); err != nil {
		return Trip{}, fmt.Errorf("cannot parse trip: %w", err)
	}
	return t, nil
}
