package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// QRDataURL encodes content (the admission token) as a QR code PNG and
// returns it as a data URL ready for an <img src>. Size is the edge
// length in pixels.
func QRDataURL(content string, size int) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
