// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package dcaf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTicketGrant() TicketGrant {
	return TicketGrant{
		ID: "3f0c1c1e-1d7a-4a38-9f0e-5f1a2b3c4d5e",
		Face: Face{
			SAI:       []ScopeItem{NewScopeItem(testURI1, 9)},
			TS:        1760000000,
			Lifetime:  3600,
			MacMethod: MacHMACSHA256,
		},
		Verifier: []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func TestTicketGrant_round_trip(t *testing.T) {
	expected := testTicketGrant()

	data, err := expected.Encode()
	require.NoError(t, err)

	actual, err := DecodeTicketGrant(data)
	require.NoError(t, err)
	assert.Equal(t, &expected, actual)
}

func TestTicketGrant_Encode_keys(t *testing.T) {
	g := testTicketGrant()
	g.Face.UH = "c2VjcmV0"

	data, err := g.Encode()
	require.NoError(t, err)

	v, err := Decode(data)
	require.NoError(t, err)

	m, ok := v.(map[interface{}]interface{})
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, m[V])
	assert.NotContains(t, m, "cam")

	face, ok := m[F].(map[interface{}]interface{})
	require.True(t, ok)
	assert.Equal(t, uint64(3600), face[L])
	assert.Equal(t, MacHMACSHA256, face[G])
	assert.Equal(t, "c2VjcmV0", face[UH])
}

func TestFace_Expiry(t *testing.T) {
	f := testTicketGrant().Face
	assert.Equal(t, time.Unix(1760000000, 0).UTC(), f.IssuedAt())
	assert.Equal(t, time.Unix(1760003600, 0).UTC(), f.Expiry())
}

func TestDecodeTicketGrant_invalid(t *testing.T) {
	g := testTicketGrant()
	g.Verifier = nil
	data, err := g.Encode()
	require.NoError(t, err)
	_, err = DecodeTicketGrant(data)
	assert.EqualError(t, err, "invalid ticket grant: missing verifier")

	g = testTicketGrant()
	g.Face.MacMethod = "MD5"
	data, err = g.Encode()
	require.NoError(t, err)
	_, err = DecodeTicketGrant(data)
	assert.EqualError(t, err, `invalid ticket grant: face: unexpected MAC method "MD5"`)

	data, err = Marshal(map[string]string{"result": "ok"})
	require.NoError(t, err)
	_, err = DecodeTicketGrant(data)
	assert.EqualError(t, err, "invalid ticket grant: missing verifier")

	_, err = DecodeTicketGrant([]byte{0xff})
	assert.ErrorContains(t, err, "decoding ticket grant")
}
