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
	"context"
	"maps"
)

// Identity is the authenticated principal of the current request.
type Identity struct {
	// Name is the principal name, e.g. the Basic auth username.
	Name string

	// Issuer identifies who vouched for the identity.
	Issuer string

	// Scheme is the name of the scheme that produced the identity.
	Scheme string

	// Claims carries additional data added by hooks.
	Claims map[string]string
}

// Claim returns the claim value for key and whether it was present.
func (id *Identity) Claim(key string) (string, bool) {
	if id == nil || id.Claims == nil {
		return "", false
	}
	v, ok := id.Claims[key]

	return v, ok
}

// SetClaim sets a claim, allocating the claim map if needed.
func (id *Identity) SetClaim(key, value string) {
	if id.Claims == nil {
		id.Claims = make(map[string]string)
	}
	id.Claims[key] = value
}

// Clone returns a deep copy of id.
func (id *Identity) Clone() *Identity {
	if id == nil {
		return nil
	}
	c := *id
	c.Claims = maps.Clone(id.Claims)

	return &c
}

// identityKey is a private type for the identity context key.
type identityKey struct{}

// WithIdentity stores the authenticated identity in the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the authenticated identity.
// Returns nil if the request is anonymous.
func IdentityFromContext(ctx context.Context) *Identity {
	if v, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return v
	}

	return nil
}
