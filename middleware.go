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
	"encoding/json"
	"net/http"

	rerrors "rivaas.dev/errors"
)

// Middleware returns net/http middleware that authenticates every request
// against the registry.
//
// Schemes are tried in order; the first [Success] wins and its identity is
// stored in the request context (see [IdentityFromContext]). [NoResult] and
// [Failure] move on to the next scheme.
//
// Without [WithRequireAuthenticated] anonymous requests continue. With it,
// requests without an identity are challenged by the first scheme and the
// chain stops. Errors no hook resolved are written with the configured
// formatter, except on protected routes where they end in a challenge.
//
// Example:
//
//	registry := authentication.NewRegistry()
//	basic.Register(registry, basic.WithUsers(map[string]string{"admin": "secret"}))
//
//	mux := http.NewServeMux()
//	mux.Handle("/admin/", registry.Middleware(
//	    authentication.WithRequireAuthenticated(),
//	)(adminHandler))
func (r *Registry) Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			req, ok := r.handle(w, req, cfg)
			if !ok {
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// handle runs the pipeline for one request. It returns the request to pass
// downstream and whether the chain should continue.
func (r *Registry) handle(w http.ResponseWriter, req *http.Request, cfg *config) (*http.Request, bool) {
	if cfg.skipPaths[req.URL.Path] {
		return req, true
	}

	schemes := cfg.schemes
	if len(schemes) == 0 {
		name, ok := r.Default()
		if !ok {
			cfg.logger.Error("authentication middleware has no scheme to run", "error", ErrNoSchemes)
			writeError(w, req, cfg.formatter, ErrNoSchemes)

			return req, false
		}
		schemes = []string{name}
	}

	req = req.WithContext(WithRequestState(req.Context()))
	ctx := req.Context()

	var identity *Identity
	for _, name := range schemes {
		outcome, err := r.Authenticate(ctx, req, name)
		if err != nil {
			if cfg.require {
				// The challenge below picks the cached error up as failure detail.
				cfg.logger.WarnContext(ctx, "authentication error on protected route",
					"scheme", name,
					"path", req.URL.Path,
					"error", err,
				)

				break
			}
			cfg.logger.ErrorContext(ctx, "authentication error",
				"scheme", name,
				"path", req.URL.Path,
				"error", err,
			)
			writeError(w, req, cfg.formatter, err)

			return req, false
		}

		if id := IdentityOf(outcome); id != nil {
			identity = id

			break
		}
	}

	if identity != nil {
		return req.WithContext(WithIdentity(ctx, identity)), true
	}

	if !cfg.require {
		return req, true
	}

	if err := r.Challenge(ctx, w, req, schemes[0], nil); err != nil {
		cfg.logger.ErrorContext(ctx, "authentication challenge failed",
			"scheme", schemes[0],
			"error", err,
		)
		writeError(w, req, cfg.formatter, err)
	}

	return req, false
}

// writeError writes err using f.
func writeError(w http.ResponseWriter, req *http.Request, f rerrors.Formatter, err error) {
	resp := f.Format(req, err)

	h := w.Header()
	for k, vs := range resp.Headers {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	h.Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}
