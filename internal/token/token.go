package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"
)

// payload is the middle segment of the session token. Only the fields
// needed to resolve an identity are read, the rest is ignored.
type payload struct {
	UserID         int `json:"userId"`
	PractitionerID int `json:"nutricionistaId"`
}

// ExtractUserID reads the subject ID out of a JWT-shaped token without
// verifying its signature. It is a display-time convenience for picking
// which records to fetch - NEVER an authorization decision (sessions are
// checked against the session store separately).
//
// Malformed tokens are not an error condition here: the caller has to keep
// working in a degraded, identity-less mode, so all failures collapse to
// (0, false).
func ExtractUserID(token string) (int, bool) {
	p, ok := decodePayload(token)
	if !ok || p.UserID <= 0 {
		return 0, false
	}
	return p.UserID, true
}

// ExtractPractitionerID behaves like ExtractUserID, but prefers the
// practitioner ID claim, falling back to the user ID claim when absent.
func ExtractPractitionerID(token string) (int, bool) {
	p, ok := decodePayload(token)
	if !ok {
		return 0, false
	}
	if p.PractitionerID > 0 {
		return p.PractitionerID, true
	}
	if p.UserID > 0 {
		return p.UserID, true
	}
	return 0, false
}

func decodePayload(token string) (payload, bool) {
	var p payload

	if token == "" {
		return p, false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		log.Tracef("token decode: expected 3 segments, got %d", len(parts))
		return p, false
	}

	payloadBytes, err := decodeBase64Segment(parts[1])
	if err != nil {
		log.Tracef("token decode: payload segment: %s", err)
		return p, false
	}

	if err := json.Unmarshal(payloadBytes, &p); err != nil {
		log.Tracef("token decode: unmarshal payload: %s", err)
		return p, false
	}

	return p, true
}

// decodeBase64Segment accepts both raw (JWT style) and padded base64, in
// the URL and standard alphabets.
func decodeBase64Segment(segment string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	}

	var err error
	for _, enc := range encodings {
		var decoded []byte
		if decoded, err = enc.DecodeString(segment); err == nil {
			return decoded, nil
		}
	}

	return nil, err
}
