// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package dcaf

import (
	"github.com/fxamacker/cbor/v2"
)

// MediaTypeCBOR is the CoAP Content-Format for application/cbor
const MediaTypeCBOR = 60

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): the same
// record always produces the same bytes.
var encMode cbor.EncMode

// decMode leaves DefaultMapType unset so that maps decoded into an
// interface{} come out as map[interface{}]interface{}. DCAF peers are not
// bound to text keys.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("dcaf: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("dcaf: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v. Trailing bytes are an error.
func Unmarshal(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}

// Decode decodes a single CBOR data item without a target schema
func Decode(data []byte) (interface{}, error) {
	var v interface{}
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
