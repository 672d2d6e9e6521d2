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

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrSchemeNotFound  = errors.New("authentication scheme not found")
	ErrDuplicateScheme = errors.New("authentication scheme already registered")
	ErrInvalidScheme   = errors.New("invalid authentication scheme")
	ErrNoSchemes       = errors.New("no authentication schemes registered")
)

// SchemeError describes an error raised while a registered scheme was
// authenticating or challenging a request.
type SchemeError struct {
	Scheme    string // Name of the scheme
	Operation string // "authenticate", "challenge" or "register"
	Err       error  // The underlying error
}

// Error returns a formatted error message with the scheme and operation.
func (e *SchemeError) Error() string {
	return fmt.Sprintf("authentication scheme %q failed during %s: %v", e.Scheme, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemeError) Unwrap() error {
	return e.Err
}

// Code returns a machine-readable error code.
// When the underlying error carries its own code, that code is used.
func (e *SchemeError) Code() string {
	var coded interface{ Code() string }
	if errors.As(e.Err, &coded) {
		return coded.Code()
	}

	return "AUTHENTICATION_ERROR"
}
