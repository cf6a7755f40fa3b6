package qr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyPayload is returned when the content to encode would be empty
	// or a required payload field is missing.
	ErrEmptyPayload = errors.New("qr content cannot be empty")

	// ErrInvalidPayload is returned for an unknown payload type or an
	// out-of-range field.
	ErrInvalidPayload = errors.New("invalid payload")
)

// PayloadType selects how Payload fields are assembled into content.
type PayloadType string

const (
	PayloadURL    PayloadType = "url"
	PayloadSMS    PayloadType = "sms"
	PayloadVCard  PayloadType = "vcard"
	PayloadGeoloc PayloadType = "geo"
)

// ParsePayloadType accepts the type names case-insensitively, including the
// long forms "geoloc" and "contact". Empty input yields PayloadURL.
func ParsePayloadType(s string) (PayloadType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "url", "text":
		return PayloadURL, nil
	case "sms":
		return PayloadSMS, nil
	case "vcard", "contact":
		return PayloadVCard, nil
	case "geo", "geoloc", "location":
		return PayloadGeoloc, nil
	}
	return "", fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, s)
}

// Payload holds the fields for every payload type; only those relevant to
// Type are read.
type Payload struct {
	Type PayloadType `json:"type"`

	URL string `json:"url,omitempty"`

	Phone   string `json:"phone,omitempty"`   // sms, vcard
	Message string `json:"message,omitempty"` // sms

	Name  string `json:"name,omitempty"` // vcard
	Email string `json:"email,omitempty"`
	Org   string `json:"org,omitempty"`

	Lat string `json:"lat,omitempty"` // geo, decimal degrees
	Lng string `json:"lng,omitempty"`
}

// Content assembles the string to encode. Type is matched the same way as
// ParsePayloadType, so "SMS" and "sms" are equivalent.
//
// Formats:
//   - url: the trimmed URL (any non-empty text is accepted)
//   - sms: "SMSTO:<phone>:<message>"
//   - vcard: BEGIN:VCARD / VERSION:3.0 / FN / TEL / EMAIL / ORG / END:VCARD,
//     one property per line separated by "\n"
//   - geo: "geo:<lat>,<lng>"
func (p Payload) Content() (string, error) {
	t, err := ParsePayloadType(string(p.Type))
	if err != nil {
		return "", err
	}

	switch t {
	case PayloadURL:
		u := strings.TrimSpace(p.URL)
		if u == "" {
			return "", fmt.Errorf("%w: url is required", ErrEmptyPayload)
		}
		return u, nil

	case PayloadSMS:
		phone := strings.TrimSpace(p.Phone)
		if phone == "" {
			return "", fmt.Errorf("%w: sms phone is required", ErrEmptyPayload)
		}
		return "SMSTO:" + phone + ":" + p.Message, nil

	case PayloadVCard:
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return "", fmt.Errorf("%w: vcard name is required", ErrEmptyPayload)
		}
		lines := []string{
			"BEGIN:VCARD",
			"VERSION:3.0",
			"FN:" + vcardEscape(name),
			"TEL:" + vcardEscape(strings.TrimSpace(p.Phone)),
			"EMAIL:" + vcardEscape(strings.TrimSpace(p.Email)),
			"ORG:" + vcardEscape(strings.TrimSpace(p.Org)),
			"END:VCARD",
		}
		return strings.Join(lines, "\n"), nil

	case PayloadGeoloc:
		lat, err := parseCoordinate("lat", p.Lat, 90)
		if err != nil {
			return "", err
		}
		lng, err := parseCoordinate("lng", p.Lng, 180)
		if err != nil {
			return "", err
		}
		return "geo:" + lat + "," + lng, nil
	}
	return "", fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, t)
}

// parseCoordinate validates a decimal degree value in [-limit, limit] and
// returns it as typed, trimmed.
func parseCoordinate(field, raw string, limit float64) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: geo %s is required", ErrEmptyPayload, field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("%w: geo %s %q is not a number", ErrInvalidPayload, field, raw)
	}
	if v < -limit || v > limit {
		return "", fmt.Errorf("%w: geo %s %v outside [-%v, %v]", ErrInvalidPayload, field, v, limit, limit)
	}
	return s, nil
}

var vcardEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, ",", `\,`, ";", `\;`)

// vcardEscape escapes the characters vCard 3.0 reserves in text values, so a
// field cannot inject extra properties.
func vcardEscape(s string) string {
	return vcardEscaper.Replace(s)
}
