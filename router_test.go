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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/router"
	"rivaas.dev/router/middleware"
)

func TestRouterMiddleware(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.Add(Scheme{Name: "Fake", Handler: &fakeHandler{}}))

	r := router.MustNew()
	r.Use(reg.RouterMiddleware(WithLogger(quietLogger())))

	r.GET("/public", func(c *router.Context) {
		name := Username(c)
		if name == "" {
			name = "anonymous"
		}
		//nolint:errcheck // Test handler
		c.String(http.StatusOK, name)
	})

	admin := r.Group("/admin", reg.RouterMiddleware(
		WithRequireAuthenticated(),
		WithLogger(quietLogger()),
	))
	admin.GET("/dashboard", func(c *router.Context) {
		username, _ := c.Request.Context().Value(middleware.AuthUsernameKey).(string)
		//nolint:errcheck // Test handler
		c.String(http.StatusOK, "dashboard:"+username+":"+CurrentIdentity(c).Issuer)
	})

	tests := []struct {
		name          string
		path          string
		authorization string
		wantStatus    int
		wantBody      string
	}{
		{name: "public anonymous", path: "/public", wantStatus: http.StatusOK, wantBody: "anonymous"},
		{name: "public authenticated", path: "/public", authorization: "Fake admin", wantStatus: http.StatusOK, wantBody: "admin"},
		{name: "protected anonymous", path: "/admin/dashboard", wantStatus: http.StatusUnauthorized},
		{name: "protected failure", path: "/admin/dashboard", authorization: "Fake ", wantStatus: http.StatusUnauthorized},
		{name: "protected authenticated", path: "/admin/dashboard", authorization: "Fake admin", wantStatus: http.StatusOK, wantBody: "dashboard:admin:fake"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Fake", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
