package qr

import (
	"encoding/base64"
	"encoding/json"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

type TicketPayload struct {
	BookingID int64     `json:"booking_id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// DataURL renders the ticket payload as a PNG QR code wrapped in a
// base64 data URL, suitable for inlining in an <img> tag.
func DataURL(p TicketPayload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
