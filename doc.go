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

// Package authentication provides a small authentication pipeline for
// net/http and the rivaas router: a registry of named schemes, request
// scoped result caching, and middleware that attaches the authenticated
// identity to the request context.
//
// Schemes implement [Handler]. The Basic scheme lives in
// rivaas.dev/authentication/basic.
//
// # Basic Usage
//
//	registry := authentication.NewRegistry()
//	basic.Register(registry,
//	    basic.WithRealm("Admin Panel"),
//	    basic.WithUsers(map[string]string{"admin": "secret"}),
//	)
//
//	r := router.MustNew()
//	r.Use(registry.RouterMiddleware())
//	admin := r.Group("/admin", registry.RouterMiddleware(
//	    authentication.WithRequireAuthenticated(),
//	))
//
// # Outcomes
//
// A scheme answers each request with an [Outcome]: [NoResult] when it found
// no credentials, [Success] with an [Identity], or [Failure]. Errors are
// reserved for problems the scheme could not turn into an outcome.
//
// # Request State
//
// The middleware installs request state with [WithRequestState]. Within one
// request each scheme is evaluated once and later calls, including the one
// made while challenging, reuse the cached result.
//
// # Accessing the Identity
//
//	func handler(c *router.Context) {
//	    if id := authentication.CurrentIdentity(c); id != nil {
//	        c.JSON(http.StatusOK, map[string]string{"user": id.Name})
//	    }
//	}
package authentication
