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
	"crypto/subtle"
	"fmt"
	"maps"
	"sync"
)

// Verifier checks a username/password pair.
//
// Verify returns false for rejected credentials. A non-nil error means the
// check itself could not be performed (for example, the user store is down).
type Verifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// VerifierFunc adapts a function to [Verifier].
type VerifierFunc func(ctx context.Context, username, password string) (bool, error)

// Verify calls f.
func (f VerifierFunc) Verify(ctx context.Context, username, password string) (bool, error) {
	return f(ctx, username, password)
}

// usersVerifier checks credentials against a static map.
type usersVerifier struct {
	users map[string]string
}

// NewUsersVerifier returns a verifier backed by a static username to
// password map. Passwords are compared in constant time.
func NewUsersVerifier(users map[string]string) Verifier {
	return &usersVerifier{users: maps.Clone(users)}
}

func (v *usersVerifier) Verify(_ context.Context, username, password string) (bool, error) {
	expected, ok := v.users[username]
	if !ok {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1, nil
}

// Lifetime controls how often a verifier factory is invoked.
type Lifetime int

const (
	// Transient creates a new verifier for every authentication attempt.
	Transient Lifetime = iota

	// Singleton creates the verifier once and reuses it.
	Singleton
)

// String returns the lifetime name.
func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// VerifierFactory creates a verifier.
type VerifierFactory func() (Verifier, error)

// VerifierProvider resolves a verifier according to its lifetime.
// It is safe for concurrent use.
type VerifierProvider struct {
	factory  VerifierFactory
	lifetime Lifetime

	once     sync.Once
	instance Verifier
	err      error
}

// NewVerifierProvider returns a provider that builds verifiers with factory.
func NewVerifierProvider(factory VerifierFactory, lifetime Lifetime) *VerifierProvider {
	return &VerifierProvider{factory: factory, lifetime: lifetime}
}

// staticProvider returns a singleton provider for an existing verifier.
func staticProvider(v Verifier) *VerifierProvider {
	return NewVerifierProvider(func() (Verifier, error) { return v, nil }, Singleton)
}

// Lifetime returns the provider's lifetime.
func (p *VerifierProvider) Lifetime() Lifetime {
	return p.lifetime
}

// Resolve returns the verifier for one authentication attempt.
// A singleton factory error is cached like its result.
func (p *VerifierProvider) Resolve() (Verifier, error) {
	if p.lifetime == Singleton {
		p.once.Do(func() {
			p.instance, p.err = p.build()
		})

		return p.instance, p.err
	}

	return p.build()
}

func (p *VerifierProvider) build() (Verifier, error) {
	v, err := p.factory()
	if err != nil {
		return nil, fmt.Errorf("basic: creating verifier: %w", err)
	}
	if v == nil {
		return nil, ErrNoVerifier
	}

	return v, nil
}
