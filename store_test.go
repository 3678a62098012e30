package tripbook

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenStore(dir)
	require.NoError(t, err)
	assert.Empty(t, s.Trips)

	trip := newTestTrip(t)
	s.Add(trip)
	require.NoError(t, s.Save())

	reloaded, err := OpenStore(dir)
	require.NoError(t, err)
	require.Len(t, reloaded.Trips, 1)
	assert.Equal(t, trip.ID, reloaded.Active)

	got, ok := reloaded.ActiveTrip()
	require.True(t, ok)
	assert.Equal(t, "Tokyo", got.Destination)
	assert.Equal(t, trip.StartDate, got.StartDate)
	require.Len(t, got.Itinerary, 3)
}

func TestStoreLegacyMigration(t *testing.T) {
	dir := t.TempDir()
	trip := newTestTrip(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeTrip(&buf, trip))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trip.json"), buf.Bytes(), 0644))

	s, err := OpenStore(dir)
	require.NoError(t, err)
	require.Len(t, s.Trips, 1)
	assert.Equal(t, trip.ID, s.Active)

	// The next save writes the collection format; the legacy file is ignored
	// from then on.
	require.NoError(t, s.Save())
	reloaded, err := OpenStore(dir)
	require.NoError(t, err)
	require.Len(t, reloaded.Trips, 1)
}

func TestStoreGetReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)

	trip := newTestTrip(t)
	trip = mustAddItem(t, trip, 0, ItemDraft{Time: "09:00", Activity: "walk"})
	s.Add(trip)

	got, ok := s.Get(trip.ID)
	require.True(t, ok)
	got.Itinerary[0].Items[0].Activity = "mutated"

	again, _ := s.Get(trip.ID)
	assert.Equal(t, "walk", again.Itinerary[0].Items[0].Activity,
		"mutating a returned trip must not change the store")
}

func TestStoreFind(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)

	tokyo := newTestTrip(t)
	s.Add(tokyo)
	osaka := newTestTrip(t)
	osaka.Destination = "Osaka"
	s.Add(osaka)

	got, err := s.Find("osa")
	require.NoError(t, err)
	assert.Equal(t, "Osaka", got.Destination)

	got, err = s.Find(tokyo.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, "Tokyo", got.Destination)

	_, err = s.Find("nowhere")
	assert.Error(t, err)

	// "o" matches both destinations.
	_, err = s.Find("o")
	assert.Error(t, err)
}

func TestStoreReplace(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)

	trip := newTestTrip(t)
	s.Add(trip)

	trip, err = trip.AddExpense(ExpenseDraft{Label: "coffee", BaseAmount: d("80")})
	require.NoError(t, err)
	require.NoError(t, s.Replace(trip))

	got, _ := s.Get(trip.ID)
	require.Len(t, got.Expenses, 1)

	other := newTestTrip(t)
	assert.Error(t, s.Replace(other), "replacing an unknown trip must fail")
}

func TestStoreRemoveRepointsActive(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)

	first := newTestTrip(t)
	s.Add(first)
	second := newTestTrip(t)
	second.Destination = "Osaka"
	s.Add(second)
	assert.Equal(t, second.ID, s.Active)

	require.NoError(t, s.Remove(second.ID))
	assert.Equal(t, first.ID, s.Active)

	require.NoError(t, s.Remove(first.ID))
	assert.Empty(t, s.Active)
	assert.Error(t, s.Remove(first.ID))
}

func TestStoreSelect(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)

	first := newTestTrip(t)
	s.Add(first)
	second := newTestTrip(t)
	second.Destination = "Osaka"
	s.Add(second)

	require.NoError(t, s.Select(first.ID))
	assert.Equal(t, first.ID, s.Active)
	assert.Error(t, s.Select("nope"))
}

func TestStoreImportShared(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenStore(dir)
	require.NoError(t, err)

	trip := newTestTrip(t)
	token, err := ShareToken(trip)
	require.NoError(t, err)

	got, ok := s.ImportShared(token)
	require.True(t, ok)
	assert.Equal(t, "Tokyo (imported)", got.Destination)
	assert.Equal(t, got.ID, s.Active)

	_, ok = s.ImportShared("garbage")
	assert.False(t, ok)
	require.Len(t, s.Trips, 1)
}
