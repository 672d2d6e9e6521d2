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
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/authentication"
)

const instrumentationName = "rivaas.dev/authentication/basic"

// Outcome labels recorded on spans and metrics.
const (
	outcomeNone    = "none"
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeError   = "error"
)

// Handler authenticates requests carrying HTTP Basic credentials (RFC 7617)
// and writes Basic challenges. It implements [authentication.Handler] and
// is safe for concurrent use.
type Handler struct {
	opts     *Options
	tracer   trace.Tracer
	attempts metric.Int64Counter
}

// New creates a Basic handler. A verifier must be configured with one of
// [WithVerifier], [WithVerifierFunc], [WithValidator], [WithUsers] or
// [WithVerifierFactory].
//
// Example:
//
//	h, err := basic.New(
//	    basic.WithRealm("Admin Panel"),
//	    basic.WithUsers(map[string]string{"admin": "secret"}),
//	)
func New(opts ...Option) (*Handler, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	o.complete()

	if err := o.validate(); err != nil {
		return nil, err
	}

	attempts, err := o.MeterProvider.Meter(instrumentationName).Int64Counter(
		"auth.basic.attempts",
		metric.WithDescription("Basic authentication attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	return &Handler{
		opts:     o,
		tracer:   o.TracerProvider.Tracer(instrumentationName),
		attempts: attempts,
	}, nil
}

// MustNew is like [New] but panics on error.
// Use it in main or initialization code.
func MustNew(opts ...Option) *Handler {
	h, err := New(opts...)
	if err != nil {
		panic("basic: " + err.Error())
	}

	return h
}

// Options returns a copy of the handler options.
func (h *Handler) Options() Options {
	return *h.opts
}

// Authenticate reads the Authorization header of r and verifies it.
//
// It returns [authentication.NoResult] when no Basic credentials are present
// and a [*authentication.Failure] when the verifier rejects them. Malformed
// credentials and verifier errors go through OnAuthenticationFailed; unless
// the hook sets a result they are returned as errors.
func (h *Handler) Authenticate(ctx context.Context, r *http.Request) (authentication.Outcome, error) {
	ctx, span := h.tracer.Start(ctx, "basicauth.authenticate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("auth.scheme", h.opts.SchemeName)),
	)
	defer span.End()

	outcome, err := h.authenticate(ctx, r)
	h.record(ctx, span, outcome, err)

	return outcome, err
}

func (h *Handler) authenticate(ctx context.Context, r *http.Request) (authentication.Outcome, error) {
	creds, err := DecodeHeader(r.Header.Get("Authorization"))
	if errors.Is(err, ErrNotPresent) {
		return authentication.None(), nil
	}
	if err != nil {
		return h.failed(ctx, r, err)
	}

	verifier, err := h.opts.verifier.Resolve()
	if err != nil {
		return h.failed(ctx, r, &VerifierError{Username: creds.Username, Err: err})
	}

	ok, err := verifier.Verify(ctx, creds.Username, creds.Password)
	if err != nil {
		return h.failed(ctx, r, &VerifierError{Username: creds.Username, Err: err})
	}
	if !ok {
		h.opts.Logger.InfoContext(ctx, "basic authentication failed",
			"scheme", h.opts.SchemeName,
			"user", creds.Username,
		)

		return authentication.Fail("invalid credentials", nil), nil
	}

	vc := &ValidatedContext{
		Request:  r,
		Scheme:   h.opts.SchemeName,
		Username: creds.Username,
		Identity: &authentication.Identity{
			Name:   creds.Username,
			Issuer: h.opts.Issuer,
			Scheme: h.opts.SchemeName,
		},
	}
	if hook := h.opts.Events.OnCredentialsValidated; hook != nil {
		if err := hook(ctx, vc); err != nil {
			return nil, err
		}
	}
	if res := vc.Result(); res != nil {
		return res, nil
	}
	if vc.Identity == nil {
		return authentication.Fail("identity removed by validation hook", nil), nil
	}

	h.opts.Logger.InfoContext(ctx, "basic authentication succeeded",
		"scheme", h.opts.SchemeName,
		"user", vc.Identity.Name,
	)

	return authentication.Succeed(vc.Identity), nil
}

// failed runs OnAuthenticationFailed for cause.
func (h *Handler) failed(ctx context.Context, r *http.Request, cause error) (authentication.Outcome, error) {
	level := slog.LevelError
	if errors.Is(cause, context.Canceled) {
		// client went away
		level = slog.LevelDebug
	}
	h.opts.Logger.Log(ctx, level, "basic authentication error",
		"scheme", h.opts.SchemeName,
		"error", cause,
	)

	fc := &FailedContext{Request: r, Scheme: h.opts.SchemeName, Err: cause}
	if hook := h.opts.Events.OnAuthenticationFailed; hook != nil {
		if err := hook(ctx, fc); err != nil {
			return nil, err
		}
	}
	if res := fc.Result(); res != nil {
		return res, nil
	}

	return nil, cause
}

// record annotates span and counts the attempt.
func (h *Handler) record(ctx context.Context, span trace.Span, outcome authentication.Outcome, err error) {
	label := outcomeLabel(outcome, err)
	span.SetAttributes(attribute.String("auth.outcome", label))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "basic authentication error")
	}

	h.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("auth.scheme", h.opts.SchemeName),
		attribute.String("auth.outcome", label),
	))
}

func outcomeLabel(outcome authentication.Outcome, err error) string {
	if err != nil {
		return outcomeError
	}
	switch outcome.(type) {
	case *authentication.Success:
		return outcomeSuccess
	case *authentication.Failure:
		return outcomeFailure
	default:
		return outcomeNone
	}
}

// Challenge writes the Basic challenge for r.
//
// The request is authenticated first (once per request when request state
// is installed) so OnChallenge can see why access was denied. Unless the
// hook calls HandleResponse, a `WWW-Authenticate: Basic realm="..."` header
// is added and the status is set to 401 with an empty body.
func (h *Handler) Challenge(ctx context.Context, w http.ResponseWriter, r *http.Request, props authentication.Properties) error {
	key := authentication.SchemeFromContext(ctx, h.opts.SchemeName)
	outcome, err := authentication.AuthenticateOnce(ctx, key, func() (authentication.Outcome, error) {
		return h.Authenticate(ctx, r)
	})

	failure := err
	if failure == nil {
		if f := authentication.FailureOf(outcome); f != nil {
			failure = f
		}
	}

	cc := &ChallengeContext{
		Request:             r,
		Response:            w,
		Scheme:              h.opts.SchemeName,
		Realm:               h.opts.Realm,
		Properties:          props,
		AuthenticateFailure: failure,
	}
	if hook := h.opts.Events.OnChallenge; hook != nil {
		if err := hook(ctx, cc); err != nil {
			return err
		}
	}
	if cc.Handled() {
		return nil
	}

	w.Header().Add("WWW-Authenticate", Challenge(h.opts.Realm))
	w.WriteHeader(http.StatusUnauthorized)

	return nil
}
