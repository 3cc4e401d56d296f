// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Pretty returns a multi-line, human readable rendering of the response
func (o Response) Pretty() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Type: %s\n", o.Type)
	fmt.Fprintf(&b, "MID: %d\n", o.MessageID)
	fmt.Fprintf(&b, "Code: %d.%02d %s\n", uint8(o.Code)>>5, uint8(o.Code)&0x1f, o.Code)
	fmt.Fprintf(&b, "Token: %x\n", []byte(o.Token))

	for _, opt := range o.Options {
		fmt.Fprintf(&b, "%s: %s\n", opt.ID, optionValue(opt.Value))
	}

	fmt.Fprintf(&b, "Payload: %x", o.Payload)

	return b.String()
}

// Render writes the response and, if a payload was decoded, its value in
// CBOR diagnostic notation on a line of its own
func (o Result) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, o.Response.Pretty()); err != nil {
		return err
	}

	if !o.HasPayload() {
		return nil
	}

	_, err := fmt.Fprintln(w, o.Diagnostic)

	return err
}

func optionValue(v []byte) string {
	if len(v) == 0 {
		return `""`
	}

	for _, r := range string(v) {
		if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
			return fmt.Sprintf("0x%x", v)
		}
	}

	return fmt.Sprintf("%q", v)
}
