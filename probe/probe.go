// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/beduino/dcafprobe/common"
	"github.com/beduino/dcafprobe/dcaf"
	"github.com/google/uuid"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"
	"github.com/plgd-dev/go-coap/v3/message/pool"
	"github.com/sirupsen/logrus"
)

// Response is a copy of the CoAP response that outlives the session it was
// received on
type Response struct {
	Code      codes.Code
	Type      message.Type
	MessageID int32
	Token     message.Token
	Options   message.Options
	Payload   []byte
}

// Result is the outcome of one ticket request exchange
type Result struct {
	ID         uuid.UUID   // correlates the log lines of the exchange
	Response   Response    // the response as received
	Decoded    interface{} // the decoded payload, nil if there was none
	Diagnostic string      // Decoded in CBOR diagnostic notation

	// Grant is set when a 2.05 Content response carries a valid ticket
	// grant message
	Grant *dcaf.TicketGrant
}

// HasPayload reports whether the response carried a payload that was decoded
func (o Result) HasPayload() bool {
	return o.Diagnostic != ""
}

// Run POSTs the configured ticket request and waits for the response, at most
// for cfg.Timeout. The session is closed before Run returns.
//
// A response whose payload is not valid CBOR is returned together with a
// *DecodeError so that callers can still show what was received.
func (cfg Config) Run(ctx context.Context) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	// Attach the default client if the user hasn't supplied one
	if cfg.Client == nil {
		cfg.Client = common.NewClient()
	}

	payload, err := cfg.Request.Encode()
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	id := uuid.New()
	log := logrus.WithFields(logrus.Fields{
		"exchange": id.String(),
		"address":  cfg.Address,
		"path":     cfg.Path,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	sess, err := cfg.Client.Dial(ctx, cfg.Address)
	if err != nil {
		return nil, cfg.classify(ctx, err)
	}

	defer func() {
		if err := sess.Close(); err != nil {
			log.WithError(err).Warn("closing CoAP session failed")
		}
	}()

	log.WithField("bytes", len(payload)).Debug("sending ticket request")

	msg, err := sess.Post(ctx, cfg.Path, message.MediaType(dcaf.MediaTypeCBOR), bytes.NewReader(payload))
	if err != nil {
		return nil, cfg.classify(ctx, err)
	}

	res, err := newResult(id, msg)
	if err != nil {
		return nil, &ConnectionError{Address: cfg.Address, Err: err}
	}

	log.WithFields(logrus.Fields{
		"code":    res.Response.Code.String(),
		"payload": len(res.Response.Payload),
	}).Debug("received response")

	if len(res.Response.Payload) == 0 {
		return res, nil
	}

	if err := res.decode(); err != nil {
		return res, err
	}

	log.WithField("decoded", dcaf.Label(res.Decoded)).Debug("decoded response payload")

	if res.Response.Code == codes.Content {
		grant, err := dcaf.DecodeTicketGrant(res.Response.Payload)
		if err != nil {
			log.WithError(err).Debug("payload is not a ticket grant")
			return res, nil
		}

		res.Grant = grant
		log.WithFields(logrus.Fields{
			"ticket":  grant.ID,
			"mac":     grant.Face.MacMethod,
			"expires": grant.Face.Expiry(),
		}).Info("ticket granted")
	}

	return res, nil
}

// classify maps a failed request to the matching typed error
func (cfg Config) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: cfg.Timeout, Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("ticket request canceled: %w", err)
	}

	return &ConnectionError{Address: cfg.Address, Err: err}
}

func newResult(id uuid.UUID, msg *pool.Message) (*Result, error) {
	payload, err := common.ReadBody(msg)
	if err != nil {
		return nil, err
	}

	// option values may point into pooled buffers
	opts := make(message.Options, 0, len(msg.Options()))
	for _, o := range msg.Options() {
		opts = append(opts, message.Option{
			ID:    o.ID,
			Value: append([]byte(nil), o.Value...),
		})
	}

	return &Result{
		ID: id,
		Response: Response{
			Code:      msg.Code(),
			Type:      msg.Type(),
			MessageID: msg.MessageID(),
			Token:     append(message.Token(nil), msg.Token()...),
			Options:   opts,
			Payload:   payload,
		},
	}, nil
}

func (o *Result) decode() error {
	v, err := dcaf.Decode(o.Response.Payload)
	if err != nil {
		return &DecodeError{Payload: o.Response.Payload, Err: err}
	}

	diag, err := dcaf.Diagnose(o.Response.Payload)
	if err != nil {
		return &DecodeError{Payload: o.Response.Payload, Err: err}
	}

	o.Decoded = v
	o.Diagnostic = diag

	return nil
}
