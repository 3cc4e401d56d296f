// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

/*
Package dcaf implements the subset of the Delegated CoAP Authentication and
Authorization Framework (DCAF) data model needed to build ticket requests.

DCAF messages are CBOR maps whose keys are short text strings ("0", "1",
...). The package exposes them as constants together with their mnemonics:

	name, _ := dcaf.KeyName(dcaf.SAI) // "SAI"

A ticket request names the SAM and the resources the client wants to access,
each with a bitmask of CoAP methods:

	req := dcaf.TicketRequest{
		SAM: "127.0.0.1:5684/authorize",
		SAI: []dcaf.ScopeItem{
			dcaf.NewScopeItem("coaps://rs.example/update", dcaf.MethodGET|dcaf.MethodDELETE),
		},
	}

	data, err := req.Encode()

Encoding is deterministic: equal requests always serialize to the same
bytes.
*/
package dcaf
