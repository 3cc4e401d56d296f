// Copyright 2026 Contributors to the dcafprobe project.
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/beduino/dcafprobe/common"
	"github.com/beduino/dcafprobe/dcaf"
	"github.com/mitchellh/mapstructure"
)

const (
	DefaultAddress = "127.0.0.1:8003"
	DefaultPath    = "client-authorize"
	DefaultTimeout = 100 * time.Second
)

// Config holds the configuration of a ticket request exchange
type Config struct {
	Address string             // host:port of the client authorization manager
	Path    string             // target resource path
	Timeout time.Duration      // upper bound on the wait for a response
	Request dcaf.TicketRequest // the ticket request sent as payload
	Client  *common.Client     // CoAP session configuration
}

// DefaultConfig returns the configuration of the stock probe: the default
// ticket request POSTed to the local CAM
func DefaultConfig() Config {
	return Config{
		Address: DefaultAddress,
		Path:    DefaultPath,
		Timeout: DefaultTimeout,
		Request: dcaf.DefaultTicketRequest(),
	}
}

// SetAddress sets the host:port address of the server
func (cfg *Config) SetAddress(address string) error {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("malformed address: %w", err)
	}
	if host == "" || port == "" {
		return fmt.Errorf("address must be in host:port form: %q", address)
	}
	cfg.Address = address
	return nil
}

// SetPath sets the target resource path
func (cfg *Config) SetPath(path string) error {
	if strings.Trim(path, "/") == "" {
		return errors.New("no path supplied")
	}
	cfg.Path = path
	return nil
}

// SetTimeout sets the response timeout
func (cfg *Config) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("non-positive timeout supplied: %s", timeout)
	}
	cfg.Timeout = timeout
	return nil
}

// SetRequest sets the ticket request after validating it
func (cfg *Config) SetRequest(req dcaf.TicketRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid ticket request: %w", err)
	}
	cfg.Request = req
	return nil
}

// SetClient sets the CoAP session configuration
func (cfg *Config) SetClient(client *common.Client) error {
	if client == nil {
		return errors.New("no client supplied")
	}
	cfg.Client = client
	return nil
}

// Configure overlays the values found in the supplied map onto cfg. Missing
// keys leave the current values untouched. Supplying "sam" or "sai" replaces
// the respective part of the ticket request.
func (cfg *Config) Configure(m map[string]interface{}) error {
	decoded := struct {
		Address string        `mapstructure:"address"`
		Path    string        `mapstructure:"path"`
		Timeout time.Duration `mapstructure:"timeout"` // "3s", or seconds if a bare number
		SAM     string        `mapstructure:"sam"`
		SAI     []struct {
			URI     string `mapstructure:"uri"`
			Methods string `mapstructure:"methods"`
		} `mapstructure:"sai"`
		TS   string                 `mapstructure:"ts"`
		Rest map[string]interface{} `mapstructure:",remain"`
	}{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			secondsToDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           &decoded,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(m); err != nil {
		return err
	}

	if len(decoded.Rest) > 0 {
		var unexpected []string
		for k := range decoded.Rest {
			unexpected = append(unexpected, k)
		}
		sort.Strings(unexpected)
		return fmt.Errorf("unexpected fields in config: %s",
			strings.Join(unexpected, ", "))
	}

	if decoded.Address != "" {
		if err := cfg.SetAddress(decoded.Address); err != nil {
			return err
		}
	}

	if decoded.Path != "" {
		if err := cfg.SetPath(decoded.Path); err != nil {
			return err
		}
	}

	if _, ok := m["timeout"]; ok {
		if err := cfg.SetTimeout(decoded.Timeout); err != nil {
			return err
		}
	}

	req := cfg.Request

	if decoded.SAM != "" {
		req.SAM = decoded.SAM
	}

	if decoded.SAI != nil {
		req.SAI = nil
		for i, item := range decoded.SAI {
			var methods dcaf.Method
			if err := methods.Set(item.Methods); err != nil {
				return fmt.Errorf("sai[%d]: %w", i, err)
			}
			req.SAI = append(req.SAI, dcaf.NewScopeItem(item.URI, methods))
		}
	}

	if decoded.TS != "" {
		req.TS = decoded.TS
	}

	return cfg.SetRequest(req)
}

// secondsToDurationHookFunc reads bare numbers as a count of seconds when
// the target is a time.Duration, so that "timeout: 100" means 100s
func secondsToDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		durationType := reflect.TypeOf(time.Duration(0))
		if t != durationType || f == durationType {
			return data, nil
		}

		v := reflect.ValueOf(data)

		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return time.Duration(v.Int()) * time.Second, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return time.Duration(v.Uint()) * time.Second, nil
		case reflect.Float32, reflect.Float64:
			return time.Duration(v.Float() * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}

// check makes sure that the config object is in good shape
func (cfg Config) check() error {
	if cfg.Address == "" {
		return errors.New("bad configuration: no server address")
	}

	if cfg.Path == "" {
		return errors.New("bad configuration: no resource path")
	}

	if cfg.Timeout <= 0 {
		return errors.New("bad configuration: non-positive timeout")
	}

	if err := cfg.Request.Validate(); err != nil {
		return fmt.Errorf("bad configuration: %w", err)
	}

	// It's OK if we don't have a client at this point in time; if needed we
	// will instantiate the default one later.

	return nil
}
