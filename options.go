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
	"log/slog"

	rerrors "rivaas.dev/errors"
)

// Option defines functional options for the authentication middleware.
type Option func(*config)

// config holds the configuration for the authentication middleware.
type config struct {
	// schemes are tried in order; empty means the registry default
	schemes []string

	// require challenges requests that end up without an identity
	require bool

	// skipPaths are paths that bypass authentication
	skipPaths map[string]bool

	// formatter writes unresolved errors
	formatter rerrors.Formatter

	logger *slog.Logger
}

func defaultConfig() *config {
	return &config{
		skipPaths: make(map[string]bool),
		formatter: rerrors.NewSimple(),
		logger:    slog.Default(),
	}
}

// WithSchemes sets the schemes the middleware authenticates, in order.
// The first scheme is the one challenged on protected routes.
// Default: the registry's default scheme.
//
// Example:
//
//	registry.Middleware(authentication.WithSchemes("Basic", "Admin"))
func WithSchemes(names ...string) Option {
	return func(cfg *config) {
		cfg.schemes = append(cfg.schemes[:0], names...)
	}
}

// WithRequireAuthenticated challenges every request that does not end up
// with an identity. Without it the middleware only attaches identities and
// lets anonymous requests through.
func WithRequireAuthenticated() Option {
	return func(cfg *config) {
		cfg.require = true
	}
}

// WithSkipPaths sets paths that bypass authentication entirely.
//
// Example:
//
//	registry.Middleware(authentication.WithSkipPaths("/health", "/metrics"))
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) {
		for _, path := range paths {
			cfg.skipPaths[path] = true
		}
	}
}

// WithErrorFormatter sets the formatter used for errors no scheme or hook
// resolved. Default: [rerrors.NewSimple].
func WithErrorFormatter(f rerrors.Formatter) Option {
	return func(cfg *config) {
		if f != nil {
			cfg.formatter = f
		}
	}
}

// WithLogger sets the logger. Default: [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
