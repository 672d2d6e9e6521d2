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
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Properties is the mutable property bag handed to challenge hooks.
type Properties map[string]string

// Handler authenticates and challenges requests for one scheme.
//
// Authenticate returns an error only for failures the handler could not
// resolve into an [Outcome]; the pipeline treats such errors as server errors.
type Handler interface {
	Authenticate(ctx context.Context, r *http.Request) (Outcome, error)
	Challenge(ctx context.Context, w http.ResponseWriter, r *http.Request, props Properties) error
}

// Scheme binds a Handler to a name.
type Scheme struct {
	// Name is the unique scheme name used for lookup and result caching.
	Name string

	// DisplayName is a human readable name. Defaults to Name.
	DisplayName string

	Handler Handler
}

// Registry holds the schemes known to the pipeline.
// Schemes are registered at startup; lookups are safe for concurrent use.
type Registry struct {
	mu            sync.RWMutex
	schemes       map[string]*Scheme
	order         []string
	defaultScheme string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemes: make(map[string]*Scheme)}
}

// Add registers s. The first registered scheme becomes the default.
func (r *Registry) Add(s Scheme) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidScheme)
	}
	if s.Handler == nil {
		return fmt.Errorf("%w: scheme %q has no handler", ErrInvalidScheme, s.Name)
	}
	if s.DisplayName == "" {
		s.DisplayName = s.Name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemes[s.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateScheme, s.Name)
	}
	r.schemes[s.Name] = &s
	r.order = append(r.order, s.Name)
	if r.defaultScheme == "" {
		r.defaultScheme = s.Name
	}

	return nil
}

// SetDefault makes name the default scheme.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrSchemeNotFound, name)
	}
	r.defaultScheme = name

	return nil
}

// Default returns the default scheme name.
func (r *Registry) Default() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.defaultScheme, r.defaultScheme != ""
}

// Scheme returns a copy of the scheme registered under name.
func (r *Registry) Scheme(name string) (Scheme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemes[name]
	if !ok {
		return Scheme{}, false
	}

	return *s, true
}

// Schemes returns all schemes in registration order.
func (r *Registry) Schemes() []Scheme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Scheme, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.schemes[name])
	}

	return out
}

// Authenticate runs the named scheme against req.
// Within one request (see [WithRequestState]) the scheme is evaluated once
// and later calls return the cached outcome.
func (r *Registry) Authenticate(ctx context.Context, req *http.Request, name string) (Outcome, error) {
	s, ok := r.Scheme(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemeNotFound, name)
	}

	ctx = WithScheme(ctx, s.Name)
	outcome, err := AuthenticateOnce(ctx, s.Name, func() (Outcome, error) {
		return s.Handler.Authenticate(ctx, req)
	})
	if err != nil {
		return nil, &SchemeError{Scheme: s.Name, Operation: "authenticate", Err: err}
	}

	return outcome, nil
}

// Challenge asks the named scheme to write its challenge to w.
func (r *Registry) Challenge(ctx context.Context, w http.ResponseWriter, req *http.Request, name string, props Properties) error {
	s, ok := r.Scheme(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSchemeNotFound, name)
	}
	if props == nil {
		props = Properties{}
	}

	if err := s.Handler.Challenge(WithScheme(ctx, s.Name), w, req, props); err != nil {
		return &SchemeError{Scheme: s.Name, Operation: "challenge", Err: err}
	}

	return nil
}
