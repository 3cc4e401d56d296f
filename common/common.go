// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"fmt"
	"io"

	"github.com/plgd-dev/go-coap/v3/message/pool"
)

// ReadBody returns the payload of msg, or nil if it has none
func ReadBody(msg *pool.Message) ([]byte, error) {
	body := msg.Body()
	if body == nil {
		return nil, nil
	}

	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding payload: %w", err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	return data, nil
}
