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
	"net/http"

	"rivaas.dev/authentication"
)

// Events holds optional hooks fired by the handler. Nil hooks are skipped.
// Hooks run on the request goroutine and may block; a non-nil error is
// returned to the caller of the handler as is.
//
// Example:
//
//	basic.WithEvents(basic.Events{
//	    OnCredentialsValidated: func(ctx context.Context, vc *basic.ValidatedContext) error {
//	        vc.Identity.SetClaim("role", roles.Lookup(vc.Username))
//	        return nil
//	    },
//	})
type Events struct {
	// OnAuthenticationFailed fires when decoding or verification raised an
	// error. Without a result override the error is returned.
	OnAuthenticationFailed func(ctx context.Context, fc *FailedContext) error

	// OnCredentialsValidated fires after the verifier accepted the credentials.
	// Without a result override the (possibly replaced) identity succeeds.
	OnCredentialsValidated func(ctx context.Context, vc *ValidatedContext) error

	// OnChallenge fires before the default challenge is written.
	// Call HandleResponse to write the response yourself.
	OnChallenge func(ctx context.Context, cc *ChallengeContext) error
}

// resultContext carries the outcome override set by a hook.
type resultContext struct {
	result authentication.Outcome
}

// Success completes authentication with id.
func (rc *resultContext) Success(id *authentication.Identity) {
	rc.result = authentication.Succeed(id)
}

// Fail completes authentication with a failure.
func (rc *resultContext) Fail(reason string) {
	rc.result = authentication.Fail(reason, nil)
}

// NoResult completes authentication as if no credentials were sent.
func (rc *resultContext) NoResult() {
	rc.result = authentication.None()
}

// Result returns the override, or nil when the hook did not set one.
func (rc *resultContext) Result() authentication.Outcome {
	return rc.result
}

// FailedContext is passed to OnAuthenticationFailed.
type FailedContext struct {
	resultContext

	Request *http.Request
	Scheme  string

	// Err is a [*DecodeError] or a [*VerifierError].
	Err error
}

// Fail completes authentication with a failure caused by Err.
func (fc *FailedContext) Fail(reason string) {
	fc.result = authentication.Fail(reason, fc.Err)
}

// ValidatedContext is passed to OnCredentialsValidated.
type ValidatedContext struct {
	resultContext

	Request  *http.Request
	Scheme   string
	Username string

	// Identity is the identity about to be established. Hooks may modify or
	// replace it.
	Identity *authentication.Identity
}

// ChallengeContext is passed to OnChallenge.
type ChallengeContext struct {
	Request    *http.Request
	Response   http.ResponseWriter
	Scheme     string
	Realm      string
	Properties authentication.Properties

	// AuthenticateFailure is the error or failure produced by authenticating
	// the request, if any.
	AuthenticateFailure error

	handled bool
}

// HandleResponse tells the handler the hook wrote the response.
func (cc *ChallengeContext) HandleResponse() {
	cc.handled = true
}

// Handled reports whether HandleResponse was called.
func (cc *ChallengeContext) Handled() bool {
	return cc.handled
}
