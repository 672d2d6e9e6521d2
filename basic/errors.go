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
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNotPresent means the request carries no Basic credentials.
	// The handler maps it to a no-result outcome.
	ErrNotPresent = errors.New("basic credentials not present")

	// ErrNoVerifier is returned by [New] when no verifier was configured.
	ErrNoVerifier = errors.New("basic: no credential verifier configured")
)

// DecodeError reports a malformed Basic payload.
type DecodeError struct {
	Reason string
	Err    error
}

// Error returns the decode failure message.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("basic: %s: %v", e.Reason, e.Err)
	}

	return "basic: " + e.Reason
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Code returns a machine-readable error code.
func (*DecodeError) Code() string {
	return "MALFORMED_CREDENTIALS"
}

// VerifierError wraps an error returned by a credential verifier.
type VerifierError struct {
	Username string
	Err      error
}

func (e *VerifierError) Error() string {
	return fmt.Sprintf("basic: verifying credentials for %q: %v", e.Username, e.Err)
}

func (e *VerifierError) Unwrap() error {
	return e.Err
}

// Code returns a machine-readable error code.
func (*VerifierError) Code() string {
	return "CREDENTIAL_VERIFIER_ERROR"
}
