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
	"sync"
)

// requestState holds per-request authentication results keyed by scheme name.
// It lives in the request context and is never shared between requests.
type requestState struct {
	mu      sync.Mutex
	results map[string]*memo
}

type memo struct {
	once    sync.Once
	outcome Outcome
	err     error
}

type stateKey struct{}

// schemeKey carries the registry name of the scheme being run.
type schemeKey struct{}

// WithScheme records name as the scheme currently handling the request.
// The registry sets it before calling a handler.
func WithScheme(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, schemeKey{}, name)
}

// SchemeFromContext returns the scheme name set by [WithScheme], or fallback
// when none is set. Handlers use it as their [AuthenticateOnce] key so that
// results are shared with the registry whatever name they were added under.
func SchemeFromContext(ctx context.Context, fallback string) string {
	if name, ok := ctx.Value(schemeKey{}).(string); ok && name != "" {
		return name
	}

	return fallback
}

// WithRequestState returns a context that memoizes authentication results for
// the lifetime of one request. The middleware installs it automatically; hosts
// driving handlers by hand should call it once per request.
//
// Calling WithRequestState on a context that already carries state returns ctx
// unchanged, so nested middleware share one set of results.
func WithRequestState(ctx context.Context) context.Context {
	if _, ok := ctx.Value(stateKey{}).(*requestState); ok {
		return ctx
	}

	return context.WithValue(ctx, stateKey{}, &requestState{results: make(map[string]*memo)})
}

// AuthenticateOnce runs fn at most once per request for the given scheme and
// returns the cached result on later calls, including a cached error.
//
// Without request state in ctx, fn is called every time.
func AuthenticateOnce(ctx context.Context, scheme string, fn func() (Outcome, error)) (Outcome, error) {
	st, ok := ctx.Value(stateKey{}).(*requestState)
	if !ok {
		return fn()
	}

	st.mu.Lock()
	m, ok := st.results[scheme]
	if !ok {
		m = &memo{}
		st.results[scheme] = m
	}
	st.mu.Unlock()

	m.once.Do(func() {
		m.outcome, m.err = fn()
	})

	return m.outcome, m.err
}
