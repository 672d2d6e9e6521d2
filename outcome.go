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

package authentication

// Outcome is the result of a single authentication attempt.
//
// Outcome is a closed set: the only implementations are [*NoResult],
// [*Success] and [*Failure]. Inspect it with a type switch:
//
//	switch o := outcome.(type) {
//	case *authentication.Success:
//	    log.Println("authenticated", o.Identity.Name)
//	case *authentication.Failure:
//	    log.Println("rejected:", o.Reason)
//	case *authentication.NoResult:
//	    // no credentials for this scheme, try the next one
//	}
type Outcome interface {
	// Succeeded reports whether the outcome carries an authenticated identity.
	Succeeded() bool

	outcome()
}

// NoResult means the scheme found no credentials it could handle.
// It is not an error; the pipeline may try other schemes or treat the
// request as anonymous.
type NoResult struct{}

// Success carries the identity established by a scheme.
type Success struct {
	Identity *Identity
}

// Failure means credentials were presented but could not be accepted.
//
// Failure implements error so that it can be handed to challenge hooks as the
// failure detail of the request. Err is nil for ordinary rejections (for
// example a verifier returning false) and set when a hook turns an error into
// a failure.
type Failure struct {
	Reason string
	Err    error
}

// None returns the outcome for "no credentials presented".
func None() Outcome {
	return &NoResult{}
}

// Succeed returns a successful outcome for id.
func Succeed(id *Identity) Outcome {
	return &Success{Identity: id}
}

// Fail returns a failed outcome with the given reason and optional cause.
func Fail(reason string, err error) Outcome {
	return &Failure{Reason: reason, Err: err}
}

func (*NoResult) Succeeded() bool { return false }
func (*NoResult) outcome()        {}

func (s *Success) Succeeded() bool { return s.Identity != nil }
func (*Success) outcome()          {}

func (*Failure) Succeeded() bool { return false }
func (*Failure) outcome()        {}

// Error returns the failure reason, followed by the cause when there is one.
func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Reason
	}
	if f.Reason == "" {
		return f.Err.Error()
	}

	return f.Reason + ": " + f.Err.Error()
}

// Unwrap returns the underlying cause, if any.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Code returns a machine-readable code for error formatters.
func (*Failure) Code() string {
	return "AUTHENTICATION_FAILED"
}

// IdentityOf returns the identity carried by o, or nil if o is not a success.
func IdentityOf(o Outcome) *Identity {
	if s, ok := o.(*Success); ok {
		return s.Identity
	}

	return nil
}

// FailureOf returns o as a *Failure, or nil if o is not a failure.
func FailureOf(o Outcome) *Failure {
	if f, ok := o.(*Failure); ok {
		return f
	}

	return nil
}
