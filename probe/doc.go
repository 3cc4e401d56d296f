// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

/*
Package probe sends a single DCAF ticket request to a client authorization
manager (CAM) over CoAP and collects the response.

The user creates a Config, usually starting from the defaults:

	cfg := probe.DefaultConfig()

and optionally tunes it:

	if err := cfg.SetAddress("cam.example:5683"); err != nil { ... }

	cfg.Request.TS = "33452"

Then Run performs the exchange. It blocks until a response arrives or the
configured timeout expires:

	res, err := cfg.Run(ctx)

Failures are reported as *TimeoutError, *ConnectionError, *DecodeError or
*EncodeError and can be told apart with errors.As. A *DecodeError comes with
the Result holding the undecodable response.

On success the response can be printed:

	_ = res.Render(os.Stdout)
*/
package probe
