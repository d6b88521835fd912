package model

import (
	"encoding/base64"
	"errors"
	"strings"
)

const imagePayloadPrefix = "data:image/"

var ErrMalformedImagePayload = errors.New("malformed image payload")

// ImagePayload is an image encoded as a data URL, as produced by a capture
// device. It stays opaque until the uploader decodes it.
type ImagePayload string

// LooksValid is the cheap boundary check: the payload must be an image data URL.
func (p ImagePayload) LooksValid() bool {
	return strings.HasPrefix(string(p), imagePayloadPrefix)
}

func (p ImagePayload) IsZero() bool { return p == "" }

// Bytes decodes the base64 body of the data URL.
func (p ImagePayload) Bytes() ([]byte, error) {
	s := string(p)
	if !strings.HasPrefix(s, imagePayloadPrefix) {
		return nil, ErrMalformedImagePayload
	}
	idx := strings.Index(s, ",")
	if idx < 0 {
		return nil, ErrMalformedImagePayload
	}
	meta := s[:idx]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, ErrMalformedImagePayload
	}
	b, err := base64.StdEncoding.DecodeString(s[idx+1:])
	if err != nil {
		return nil, ErrMalformedImagePayload
	}
	return b, nil
}

// NewImagePayload encodes raw bytes with the given mime type, e.g. "image/png".
func NewImagePayload(mime string, data []byte) ImagePayload {
	return ImagePayload("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}
