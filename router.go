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

	"rivaas.dev/router"
	"rivaas.dev/router/middleware"
)

// RouterMiddleware is the rivaas router form of [Registry.Middleware].
//
// On success the identity name is also stored under
// [middleware.AuthUsernameKey], so code written against the router's
// basicauth middleware keeps working.
//
// Example:
//
//	r := router.MustNew()
//	admin := r.Group("/admin", registry.RouterMiddleware(
//	    authentication.WithRequireAuthenticated(),
//	))
//	admin.GET("/dashboard", func(c *router.Context) {
//	    id := authentication.CurrentIdentity(c)
//	    c.JSON(http.StatusOK, map[string]string{"user": id.Name})
//	})
func (r *Registry) RouterMiddleware(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		req, ok := r.handle(c.Response, c.Request, cfg)
		if !ok {
			c.Abort()

			return
		}

		if id := IdentityFromContext(req.Context()); id != nil {
			ctx := context.WithValue(req.Context(), middleware.AuthUsernameKey, id.Name)
			req = req.WithContext(ctx)
		}
		c.Request = req
		c.Next()
	}
}

// CurrentIdentity returns the identity attached to the router context, or nil.
func CurrentIdentity(c *router.Context) *Identity {
	return IdentityFromContext(c.Request.Context())
}

// Username returns the authenticated principal name, or an empty string.
func Username(c *router.Context) string {
	if id := CurrentIdentity(c); id != nil {
		return id.Name
	}

	return ""
}
