// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"testing"
	"time"

	"github.com/beduino/dcafprobe/common"
	"github.com/beduino/dcafprobe/dcaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "127.0.0.1:8003", cfg.Address)
	assert.Equal(t, "client-authorize", cfg.Path)
	assert.Equal(t, 100*time.Second, cfg.Timeout)
	assert.Equal(t, dcaf.DefaultTicketRequest(), cfg.Request)
	assert.Nil(t, cfg.Client)
	assert.NoError(t, cfg.check())
}

func TestConfig_SetAddress(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.SetAddress("[::1]:5683"))
	assert.Equal(t, "[::1]:5683", cfg.Address)

	assert.EqualError(t, cfg.SetAddress("127.0.0.1"),
		"malformed address: address 127.0.0.1: missing port in address")
	assert.EqualError(t, cfg.SetAddress(":5683"),
		`address must be in host:port form: ":5683"`)
}

func TestConfig_SetPath(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.SetPath("authorize"))
	assert.EqualError(t, cfg.SetPath("/"), "no path supplied")
}

func TestConfig_SetTimeout(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.SetTimeout(time.Second))
	assert.EqualError(t, cfg.SetTimeout(0), "non-positive timeout supplied: 0s")
}

func TestConfig_SetRequest(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.SetRequest(dcaf.DefaultTicketRequest()))
	assert.EqualError(t, cfg.SetRequest(dcaf.TicketRequest{}), "invalid ticket request: missing SAM")
}

func TestConfig_SetClient(t *testing.T) {
	cfg := Config{}
	assert.NoError(t, cfg.SetClient(common.NewClient()))
	assert.EqualError(t, cfg.SetClient(nil), "no client supplied")
}

func TestConfig_Configure(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Configure(map[string]interface{}{
		"address": "cam.example:5683",
		"timeout": "3s",
		"sai": []interface{}{
			map[string]interface{}{"uri": "coap://rs.example/temp", "methods": "GET|PUT"},
			map[string]interface{}{"uri": "coap://rs.example/led", "methods": 8},
		},
		"ts": "33452",
	})
	require.NoError(t, err)

	assert.Equal(t, "cam.example:5683", cfg.Address)
	assert.Equal(t, DefaultPath, cfg.Path)
	assert.Equal(t, 3*time.Second, cfg.Timeout)

	expected := dcaf.TicketRequest{
		SAM: "127.0.0.1:5684/authorize",
		SAI: []dcaf.ScopeItem{
			dcaf.NewScopeItem("coap://rs.example/temp", dcaf.MethodGET|dcaf.MethodPUT),
			dcaf.NewScopeItem("coap://rs.example/led", dcaf.MethodDELETE),
		},
		TS: "33452",
	}
	assert.Equal(t, expected, cfg.Request)
}

func TestConfig_Configure_errors(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.Configure(map[string]interface{}{
		"address": "cam.example:5683",
		"port":    5683,
		"host":    "cam.example",
	})
	assert.EqualError(t, err, "unexpected fields in config: host, port")

	err = cfg.Configure(map[string]interface{}{
		"sai": []interface{}{
			map[string]interface{}{"uri": "coap://rs.example/temp", "methods": "FETCH"},
		},
	})
	assert.EqualError(t, err, `sai[0]: unexpected Method "FETCH"`)

	err = cfg.Configure(map[string]interface{}{
		"sai": []interface{}{},
	})
	assert.EqualError(t, err, "invalid ticket request: missing SAI")

	err = cfg.Configure(map[string]interface{}{
		"timeout": "0s",
	})
	assert.EqualError(t, err, "non-positive timeout supplied: 0s")
}

func TestConfig_Configure_timeout_units(t *testing.T) {
	tvs := []struct {
		in       interface{}
		expected time.Duration
	}{
		{100, 100 * time.Second},
		{uint8(7), 7 * time.Second},
		{1.5, 1500 * time.Millisecond},
		{"250ms", 250 * time.Millisecond},
		{"2m", 2 * time.Minute},
	}

	for _, tv := range tvs {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Configure(map[string]interface{}{"timeout": tv.in}))
		assert.Equal(t, tv.expected, cfg.Timeout, "timeout: %v", tv.in)
	}

	cfg := DefaultConfig()
	assert.EqualError(t, cfg.Configure(map[string]interface{}{"timeout": -1}),
		"non-positive timeout supplied: -1s")
}
