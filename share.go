package tripbook

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// The sharing codec: a reduced trip compressed into a URL-safe token.
// Decoding is deliberately forgiving, a malformed or truncated link must
// never take the application down.

// ShareParam is the query parameter carrying the share token.
const ShareParam = "trip"

// MaxShareURLLen is the hard ceiling on a generated share URL, chosen to
// stay under common URL-length limits.
const MaxShareURLLen = 8000

// ErrShareTooLarge reports a trip whose share URL would exceed
// MaxShareURLLen. File export carries trips of any size.
var ErrShareTooLarge = fmt.Errorf("trip too large to share as a link (over %d characters), use file export instead", MaxShareURLLen)

// stripped returns a reduced copy of the trip with every heavy binary field
// removed: item booking images, expense photos, and the voucher list.
// Auxiliary history is dropped too.
func (t Trip) stripped() Trip {
	n := t.Clone()
	for i := range n.Itinerary {
		for j := range n.Itinerary[i].Items {
			n.Itinerary[i].Items[j].BookingImage = ""
		}
	}
	for i := range n.Expenses {
		n.Expenses[i].Photo = ""
	}
	n.Vouchers = nil
	n.History = nil
	return n
}

// ShareToken serializes the reduced trip and compresses it into a URL-safe
// token.
func ShareToken(t Trip) (string, error) {
	data, err := json.Marshal(t.stripped())
	if err != nil {
		return "", fmt.Errorf("cannot marshal trip %q for sharing: %w", t.ID, err)
	}
	return deflateToken(data)
}

// ShareURL composes the shareable link by setting the token as a query
// parameter on the application's base URL, preserving any query the base
// already carries. It fails with ErrShareTooLarge past the ceiling.
func ShareURL(base string, t Trip) (string, error) {
	token, err := ShareToken(t)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid share base URL %q: %w", base, err)
	}
	q := u.Query()
	q.Set(ShareParam, token)
	u.RawQuery = q.Encode()
	link := u.String()
	if len(link) > MaxShareURLLen {
		return "", ErrShareTooLarge
	}
	return link, nil
}

// TokenFromURL extracts the share token from a link, if one is present.
func TokenFromURL(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	token := u.Query().Get(ShareParam)
	return token, token != ""
}

// DecodeShareToken decompresses and parses a share token. Any failure, and a
// payload lacking a destination, return false so the caller can fall through
// to its normal load path. The embedded identity is never trusted: the
// decoded trip gets a fresh one and its destination is suffixed as imported.
func DecodeShareToken(token string) (Trip, bool) {
	data, err := inflateToken(token)
	if err != nil {
		Log.Debugw("ignoring malformed share token", "err", err)
		return Trip{}, false
	}

	// Probe for the destination before committing to a full decode.
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		Log.Debugw("ignoring unparseable share payload", "err", err)
		return Trip{}, false
	}
	dest, err := jsonpath.Get("$.destination", payload)
	if err != nil {
		return Trip{}, false
	}
	name, ok := dest.(string)
	if !ok || name == "" {
		return Trip{}, false
	}

	var t Trip
	if err := json.Unmarshal(data, &t); err != nil {
		return Trip{}, false
	}
	t.ID = NewID()
	t.Destination = name + " (imported)"
	return t, true
}

// deflateToken compresses data and encodes it URL-safe without padding.
func deflateToken(data []byte) (string, error) {
	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write(data); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// inflateToken reverses deflateToken.
func inflateToken(token string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token encoding: %w", err)
	}
	zr := flate.NewReader(bytes.NewReader(raw))
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("invalid token payload: %w", err)
	}
	return data, nil
}
