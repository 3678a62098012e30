package tripbook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFilename(t *testing.T) {
	tests := []struct {
		destination string
		want        string
	}{
		{"Tokyo", "tokyo-2026-04-01.tripbook"},
		{"New York City", "new-york-city-2026-04-01.tripbook"},
		{"  Côte d'Azur  ", "c-te-d-azur-2026-04-01.tripbook"},
		{"東京", "trip-2026-04-01.tripbook"},
	}
	for _, tt := range tests {
		trip := newTestTrip(t)
		trip.Destination = tt.destination
		assert.Equal(t, tt.want, ExportFilename(trip))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	trip := sharedTrip(t)

	var buf bytes.Buffer
	require.NoError(t, ExportTrip(&buf, trip))

	got, err := ImportTrip(&buf)
	require.NoError(t, err)

	assert.NotEqual(t, trip.ID, got.ID, "imported trip must get a fresh identity")
	assert.Equal(t, trip.Destination, got.Destination)
	assert.Equal(t, trip.StartDate, got.StartDate)
	require.Len(t, got.Itinerary, 3)

	// Unlike sharing, the file format keeps attachments.
	assert.Equal(t, "data:image/png;base64,AAAA", got.Itinerary[0].Items[0].BookingImage)
	assert.Equal(t, "data:image/jpeg;base64,BBBB", got.Expenses[0].Photo)
	require.Len(t, got.Vouchers, 1)
	assert.Equal(t, "hotel voucher", got.Vouchers[0].Title)

	// Auxiliary history is not part of the exchange format.
	assert.Nil(t, got.History)
}

func TestImportTrip_PlainJSONFallback(t *testing.T) {
	trip := newTestTrip(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeTrip(&buf, trip))

	got, err := ImportTrip(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", got.Destination)
	assert.NotEqual(t, trip.ID, got.ID)
}

func TestImportTrip_Rejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not a trip at all", "hello world"},
		{"json without identity", `{"itinerary": []}`},
		{"json without itinerary", `{"id": "x"}`},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportTrip(strings.NewReader(tt.text))
			assert.Error(t, err)
		})
	}
}
