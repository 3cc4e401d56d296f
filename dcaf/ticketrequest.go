// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package dcaf

import (
	"errors"
	"fmt"
)

// ScopeItem is one SAI entry: a resource URI and the methods requested on
// it. It is serialized as the two element array [uri, methods].
type ScopeItem struct {
	_       struct{} `cbor:",toarray"`
	URI     string
	Methods Method
}

// NewScopeItem returns a ScopeItem for uri with the supplied method mask
func NewScopeItem(uri string, methods Method) ScopeItem {
	return ScopeItem{URI: uri, Methods: methods}
}

// TicketRequest models the ticket request message a client sends to its
// authorization manager (CAM), which forwards it to the SAM.
type TicketRequest struct {
	SAM string      `cbor:"0"`
	SAI []ScopeItem `cbor:"1"`
	TS  string      `cbor:"5,omitempty"`
}

// DefaultTicketRequest returns the request the probe sends when nothing
// else is configured
func DefaultTicketRequest() TicketRequest {
	return TicketRequest{
		SAM: "127.0.0.1:5684/authorize",
		SAI: []ScopeItem{
			NewScopeItem("coaps://[2001:DB8::dcaf:1234]/update", MethodGET|MethodDELETE),
			NewScopeItem("coaps://resource-server.com/secret/resource2", MethodGET|MethodPUT),
		},
	}
}

// Validate makes sure the request is in good shape before it is sent
func (o TicketRequest) Validate() error {
	if o.SAM == "" {
		return errors.New("missing SAM")
	}

	if len(o.SAI) == 0 {
		return errors.New("missing SAI")
	}

	for i, item := range o.SAI {
		if item.URI == "" {
			return fmt.Errorf("SAI item %d: missing URI", i)
		}
		if item.Methods == 0 {
			return fmt.Errorf("SAI item %d: no methods requested for %q", i, item.URI)
		}
	}

	return nil
}

// Encode serializes the request to CBOR
func (o TicketRequest) Encode() ([]byte, error) {
	return Marshal(o)
}

// DecodeTicketRequest parses a CBOR encoded ticket request
func DecodeTicketRequest(data []byte) (*TicketRequest, error) {
	var o TicketRequest

	if err := Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decoding ticket request: %w", err)
	}

	return &o, nil
}
