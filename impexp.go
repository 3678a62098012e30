package tripbook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// The file-based export/import codec: the full-fidelity variant of the
// sharing codec, images and all, exchanged as a downloadable text file.

// ExportFilename derives the deterministic file name for a trip export from
// its destination and start date.
func ExportFilename(t Trip) string {
	dest := strings.ToLower(strings.TrimSpace(t.Destination))
	dest = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, dest)
	dest = strings.Trim(dest, "-")
	if dest == "" {
		dest = "trip"
	}
	return fmt.Sprintf("%s-%s.tripbook", dest, t.StartDate)
}

// ExportTrip writes the entire trip, images included, as a compressed
// textual payload. Auxiliary undo history is not part of the exchange
// format.
func ExportTrip(w io.Writer, t Trip) error {
	full := t.Clone()
	full.History = nil
	data, err := json.Marshal(full)
	if err != nil {
		return fmt.Errorf("cannot marshal trip %q for export: %w", t.ID, err)
	}
	token, err := deflateToken(data)
	if err != nil {
		return fmt.Errorf("cannot compress trip %q for export: %w", t.ID, err)
	}
	if _, err := io.WriteString(w, token); err != nil {
		return fmt.Errorf("cannot write trip export: %w", err)
	}
	return nil
}

// ImportTrip reads an exported trip file. Decompression is attempted first;
// text that does not decompress is treated as legacy plain JSON. The payload
// must carry both an identity and an itinerary to be accepted, and the
// accepted trip gets a fresh identity to avoid colliding with local trips.
func ImportTrip(r io.Reader) (Trip, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return Trip{}, fmt.Errorf("cannot read trip file: %w", err)
	}

	data, err := inflateToken(strings.TrimSpace(string(text)))
	if err != nil {
		// legacy plain-JSON file
		data = text
	}

	var probe struct {
		ID        *string         `json:"id"`
		Itinerary json.RawMessage `json:"itinerary"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Trip{}, fmt.Errorf("not a valid trip file: %w", err)
	}
	if probe.ID == nil || probe.Itinerary == nil {
		return Trip{}, fmt.Errorf("not a valid trip file: missing identity or itinerary")
	}

	var t Trip
	if err := json.Unmarshal(data, &t); err != nil {
		return Trip{}, fmt.Errorf("not a valid trip file: %w", err)
	}
	t.ID = NewID()
	return t, nil
}
