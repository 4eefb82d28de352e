// Package qrcode renders join links as scannable PNG images for the
// shared table display.
package qrcode

import qr "github.com/skip2/go-qrcode"

const defaultSize = 256

// JoinLink encodes a lobby join URL as a PNG. A size of zero or less
// falls back to the default.
func JoinLink(url string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}
	return qr.Encode(url, qr.Medium, size)
}
