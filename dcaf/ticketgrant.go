// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package dcaf

import (
	"errors"
	"fmt"
	"time"
)

// MAC methods a SAM may use to derive the verifier from the face
const (
	MacHMACSHA256 = "HMAC_SHA_256"
	MacHMACSHA384 = "HMAC_SHA_384"
	MacHMACSHA512 = "HMAC_SHA_512"
)

// Face is the part of a ticket the client hands to the resource server. It
// restates the granted permissions and how long they are valid.
type Face struct {
	SAI       []ScopeItem `cbor:"1"`
	TS        int64       `cbor:"5"` // issue time, seconds since the epoch
	Lifetime  int64       `cbor:"6"` // seconds
	MacMethod string      `cbor:"7"`
	UH        string      `cbor:"15,omitempty"` // encrypted update hash
}

// IssuedAt returns the issue time of the ticket
func (o Face) IssuedAt() time.Time {
	return time.Unix(o.TS, 0).UTC()
}

// Expiry returns the time the ticket stops being valid
func (o Face) Expiry() time.Time {
	return o.IssuedAt().Add(time.Duration(o.Lifetime) * time.Second)
}

// TicketGrant models the ticket grant message a CAM relays back to the
// client on a successful ticket request
type TicketGrant struct {
	ID       string `cbor:"id,omitempty"`
	Face     Face   `cbor:"8"`
	Verifier []byte `cbor:"9"`
	CAM      string `cbor:"cam,omitempty"`
	Server   string `cbor:"server,omitempty"`
}

// Validate makes sure the grant carries a usable face and verifier
func (o TicketGrant) Validate() error {
	if len(o.Verifier) == 0 {
		return errors.New("missing verifier")
	}

	if len(o.Face.SAI) == 0 {
		return errors.New("face: missing SAI")
	}

	switch o.Face.MacMethod {
	case MacHMACSHA256, MacHMACSHA384, MacHMACSHA512:
	default:
		return fmt.Errorf("face: unexpected MAC method %q", o.Face.MacMethod)
	}

	if o.Face.Lifetime <= 0 {
		return fmt.Errorf("face: non-positive lifetime %d", o.Face.Lifetime)
	}

	return nil
}

// Encode serializes the grant to CBOR
func (o TicketGrant) Encode() ([]byte, error) {
	return Marshal(o)
}

// DecodeTicketGrant parses and validates a CBOR encoded ticket grant
func DecodeTicketGrant(data []byte) (*TicketGrant, error) {
	var o TicketGrant

	if err := Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decoding ticket grant: %w", err)
	}

	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ticket grant: %w", err)
	}

	return &o, nil
}
