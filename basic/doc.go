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

// Package basic implements the HTTP Basic authentication scheme (RFC 7617)
// for rivaas.dev/authentication.
//
// The handler reads `Authorization: Basic <base64(username:password)>`,
// delegates the check to a [Verifier] and produces an identity named after
// the username. Requests without Basic credentials yield no result so other
// schemes can run; rejected credentials yield a failure; malformed headers
// and verifier errors go through the OnAuthenticationFailed hook.
//
// # Basic Usage
//
//	registry := authentication.NewRegistry()
//	_, err := basic.Register(registry,
//	    basic.WithRealm("Restricted Area"),
//	    basic.WithValidator(func(username, password string) bool {
//	        return username == "admin" && password == "secret"
//	    }),
//	)
//
// # Verifiers
//
//   - WithUsers: static map, constant-time comparison
//   - WithValidator: boolean function, as in the router basicauth middleware
//   - WithVerifierFunc / WithVerifier: context-aware verifiers, shared
//   - WithVerifierFactory: built per attempt ([Transient]) or once ([Singleton])
//
// # Events
//
// [Events] hooks can replace the outcome of an attempt, enrich the identity,
// or take over the challenge response.
//
// # Challenge
//
// The default challenge is a 401 with `WWW-Authenticate: Basic realm="<realm>"`
// and an empty body. The realm defaults to the empty string.
//
// # Security Considerations
//
// Basic Authentication sends credentials in base64-encoded form with each request.
// Always use HTTPS in production to protect credentials in transit.
package basic
