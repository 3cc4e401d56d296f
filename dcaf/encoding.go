// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package dcaf

// DCAF message field keys. On the wire they are CBOR text strings, not
// integers.
const (
	SAM = "0"  // Server Authorization Manager
	SAI = "1"  // Server Authorization Information
	CAI = "2"  // Client Authorization Information
	E   = "3"  // encrypted ticket face
	K   = "4"  // key
	TS  = "5"  // timestamp / token sharing identifier
	L   = "6"  // lifetime
	G   = "7"  // MAC method
	F   = "8"  // ticket face
	V   = "9"  // verifier
	A   = "10" // accepted encodings
	D   = "11" // key derivation
	N   = "12" // nonce
	UA  = "13" // update attributes
	S   = "14" // signature
	UH  = "15" // update hash
)

var keyNames = map[string]string{
	SAM: "SAM",
	SAI: "SAI",
	CAI: "CAI",
	E:   "E",
	K:   "K",
	TS:  "TS",
	L:   "L",
	G:   "G",
	F:   "F",
	V:   "V",
	A:   "A",
	D:   "D",
	N:   "N",
	UA:  "UA",
	S:   "S",
	UH:  "UH",
}

var namesToKeys = func() map[string]string {
	m := make(map[string]string, len(keyNames))
	for k, n := range keyNames {
		m[n] = k
	}
	return m
}()

// KeyName returns the mnemonic of an encoding key, e.g. "SAM" for "0"
func KeyName(key string) (string, bool) {
	n, ok := keyNames[key]
	return n, ok
}

// KeyFromName returns the encoding key of a mnemonic, e.g. "0" for "SAM"
func KeyFromName(name string) (string, bool) {
	k, ok := namesToKeys[name]
	return k, ok
}

// Label walks a decoded CBOR value and replaces known encoding keys with
// their mnemonics. Keys that are not in the registry (including non-string
// keys) are kept as they are.
func Label(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[interface{}]interface{}, len(t))
		for k, e := range t {
			out[labelKey(k)] = Label(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[interface{}]interface{}, len(t))
		for k, e := range t {
			out[labelKey(k)] = Label(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = Label(e)
		}
		return out
	default:
		return v
	}
}

func labelKey(k interface{}) interface{} {
	s, ok := k.(string)
	if !ok {
		return k
	}
	if n, ok := KeyName(s); ok {
		return n
	}
	return s
}
