// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fmt"
	"time"
)

// TimeoutError is returned when no response arrives before the configured
// timeout expires
type TimeoutError struct {
	Timeout time.Duration
	Err     error
}

func (o *TimeoutError) Error() string {
	return fmt.Sprintf("no response within %s: %v", o.Timeout, o.Err)
}

func (o *TimeoutError) Unwrap() error {
	return o.Err
}

// ConnectionError is returned when the CoAP session cannot be established or
// the request cannot be delivered
type ConnectionError struct {
	Address string
	Err     error
}

func (o *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", o.Address, o.Err)
}

func (o *ConnectionError) Unwrap() error {
	return o.Err
}

// DecodeError is returned when the response payload is not valid CBOR
type DecodeError struct {
	Payload []byte
	Err     error
}

func (o *DecodeError) Error() string {
	return fmt.Sprintf("malformed payload (%d bytes): %v", len(o.Payload), o.Err)
}

func (o *DecodeError) Unwrap() error {
	return o.Err
}

// EncodeError is returned when the ticket request cannot be serialized
type EncodeError struct {
	Err error
}

func (o *EncodeError) Error() string {
	return fmt.Sprintf("encoding ticket request: %v", o.Err)
}

func (o *EncodeError) Unwrap() error {
	return o.Err
}
