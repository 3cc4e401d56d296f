// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package dcaf

import (
	"fmt"
	"strconv"
	"strings"
)

// Method is the bitmask of CoAP methods granted (or requested) on a
// resource. It is carried as a plain unsigned integer in SAI items.
type Method uint

const (
	MethodGET    Method = 1 << iota // 1
	MethodPOST                      // 2
	MethodPUT                       // 4
	MethodDELETE                    // 8
	MethodPATCH                     // 16
)

var methodNames = []struct {
	m    Method
	name string
}{
	{MethodGET, "GET"},
	{MethodPOST, "POST"},
	{MethodPUT, "PUT"},
	{MethodDELETE, "DELETE"},
	{MethodPATCH, "PATCH"},
}

// Methods returns the single methods set in the mask, in ascending bit order
func (o Method) Methods() []Method {
	var ms []Method
	for _, e := range methodNames {
		if o&e.m != 0 {
			ms = append(ms, e.m)
		}
	}
	return ms
}

// String representation of the Method, e.g. "GET|DELETE"
func (o *Method) String() string {
	if *o == 0 {
		return "none"
	}

	var parts []string
	for _, e := range methodNames {
		if *o&e.m != 0 {
			parts = append(parts, e.name)
		}
	}

	// bits above PATCH have no name
	if rest := *o &^ (MethodPATCH<<1 - 1); rest != 0 {
		parts = append(parts, strconv.FormatUint(uint64(rest), 10))
	}

	return strings.Join(parts, "|")
}

// Set the value of the Method from either a decimal code ("9") or a
// "|"-separated list of method names ("GET|DELETE")
func (o *Method) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("empty Method")
	}

	if n, err := strconv.ParseUint(v, 10, 32); err == nil {
		*o = Method(n)
		return nil
	}

	var m Method
	for _, part := range strings.Split(v, "|") {
		found := false
		for _, e := range methodNames {
			if strings.EqualFold(strings.TrimSpace(part), e.name) {
				m |= e.m
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unexpected Method %q", part)
		}
	}

	*o = m

	return nil
}
