// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package basic

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultSchemeName is the scheme name used when none is configured.
const DefaultSchemeName = "Basic"

// Option defines functional options for the Basic handler.
type Option func(*Options)

// Options holds the handler configuration. It is read-only once [New]
// returns.
type Options struct {
	// Realm is sent in the challenge. Empty is allowed.
	Realm string `validate:"realm"`

	// SchemeName identifies the scheme in the registry and in result caching.
	SchemeName string `validate:"required,token"`

	// DisplayName is a human readable scheme name. Defaults to SchemeName.
	DisplayName string `validate:"required"`

	// Issuer is recorded on established identities. Defaults to SchemeName.
	Issuer string `validate:"required"`

	Events Events

	Logger         *slog.Logger         `validate:"required"`
	TracerProvider trace.TracerProvider `validate:"required"`
	MeterProvider  metric.MeterProvider `validate:"required"`

	verifier *VerifierProvider
}

// VerifierLifetime returns the lifetime of the configured verifier.
func (o Options) VerifierLifetime() Lifetime {
	if o.verifier == nil {
		return Transient
	}

	return o.verifier.Lifetime()
}

func defaultOptions() *Options {
	return &Options{
		SchemeName: DefaultSchemeName,
	}
}

// complete fills derived defaults after all options ran.
func (o *Options) complete() {
	if o.DisplayName == "" {
		o.DisplayName = o.SchemeName
	}
	if o.Issuer == "" {
		o.Issuer = o.SchemeName
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.TracerProvider == nil {
		o.TracerProvider = otel.GetTracerProvider()
	}
	if o.MeterProvider == nil {
		o.MeterProvider = otel.GetMeterProvider()
	}
}

// reToken matches an RFC 7230 token.
var reToken = regexp.MustCompile("^[!#$%&'*+.^_`|~0-9A-Za-z-]+$")

var optionsValidator = newOptionsValidator()

func newOptionsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("token", func(fl validator.FieldLevel) bool {
		return reToken.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("basic: failed to register token validator: %v", err))
	}

	if err := v.RegisterValidation("realm", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
	}); err != nil {
		panic(fmt.Sprintf("basic: failed to register realm validator: %v", err))
	}

	return v
}

// validate checks the completed options.
func (o *Options) validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return fmt.Errorf("basic: invalid options: %w", err)
	}
	if o.verifier == nil {
		return ErrNoVerifier
	}

	return nil
}

// WithRealm sets the realm sent in the challenge.
// Default: "" (the header still carries `realm=""`).
//
// Example:
//
//	basic.New(basic.WithRealm("Admin Panel"), ...)
func WithRealm(realm string) Option {
	return func(o *Options) {
		o.Realm = realm
	}
}

// WithSchemeName sets the scheme name. Default: "Basic".
func WithSchemeName(name string) Option {
	return func(o *Options) {
		o.SchemeName = name
	}
}

// WithDisplayName sets the display name. Default: the scheme name.
func WithDisplayName(name string) Option {
	return func(o *Options) {
		o.DisplayName = name
	}
}

// WithIssuer sets the issuer recorded on identities. Default: the scheme name.
func WithIssuer(issuer string) Option {
	return func(o *Options) {
		o.Issuer = issuer
	}
}

// WithEvents sets the lifecycle hooks.
func WithEvents(events Events) Option {
	return func(o *Options) {
		o.Events = events
	}
}

// WithLogger sets the logger. Default: [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithTracerProvider sets the tracer provider. Default: the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) {
		o.TracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. Default: the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) {
		o.MeterProvider = mp
	}
}

// WithVerifier sets a verifier instance shared by all requests.
func WithVerifier(v Verifier) Option {
	return func(o *Options) {
		if v == nil {
			o.verifier = nil
			return
		}
		o.verifier = staticProvider(v)
	}
}

// WithVerifierFunc sets a function verifier. Function verifiers are
// singletons.
//
// Example:
//
//	basic.WithVerifierFunc(func(ctx context.Context, username, password string) (bool, error) {
//	    user, err := store.FindUser(ctx, username)
//	    if err != nil {
//	        return false, err
//	    }
//	    return user.CheckPassword(password), nil
//	})
func WithVerifierFunc(fn func(ctx context.Context, username, password string) (bool, error)) Option {
	return func(o *Options) {
		if fn == nil {
			o.verifier = nil
			return
		}
		o.verifier = staticProvider(VerifierFunc(fn))
	}
}

// WithValidator sets a context-free boolean validator, matching the router
// basicauth middleware's option of the same name.
func WithValidator(fn func(username, password string) bool) Option {
	return func(o *Options) {
		if fn == nil {
			o.verifier = nil
			return
		}
		o.verifier = staticProvider(VerifierFunc(func(_ context.Context, username, password string) (bool, error) {
			return fn(username, password), nil
		}))
	}
}

// WithUsers sets a static username to password map.
//
// Example:
//
//	basic.WithUsers(map[string]string{
//	    "admin": "secret123",
//	    "user":  "password456",
//	})
func WithUsers(users map[string]string) Option {
	return func(o *Options) {
		o.verifier = staticProvider(NewUsersVerifier(users))
	}
}

// WithVerifierFactory sets a factory that builds the verifier according to
// lifetime. Use [Transient] for verifiers holding per-request resources.
func WithVerifierFactory(factory VerifierFactory, lifetime Lifetime) Option {
	return func(o *Options) {
		if factory == nil {
			o.verifier = nil
			return
		}
		o.verifier = NewVerifierProvider(factory, lifetime)
	}
}
