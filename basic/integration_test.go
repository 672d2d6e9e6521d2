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

// This file contains integration tests for the Basic scheme running behind
// the authentication middleware on a rivaas router.

//go:build integration

package basic_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/logging"
	"rivaas.dev/router"

	"rivaas.dev/authentication"
	"rivaas.dev/authentication/basic"
)

// logLines decodes JSON log lines written by the logging package.
func logLines(buf *bytes.Buffer) []map[string]any {
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		Expect(json.Unmarshal([]byte(line), &entry)).To(Succeed())
		lines = append(lines, entry)
	}

	return lines
}

func hasLog(lines []map[string]any, msg, key, value string) bool {
	for _, l := range lines {
		if l["msg"] == msg && l[key] == value {
			return true
		}
	}

	return false
}

var _ = Describe("Basic Authentication Integration", Label("integration", "basic"), func() {
	var (
		logs      *bytes.Buffer
		r         *router.Router
		verifies  atomic.Int32
		challenge func(ctx context.Context, cc *basic.ChallengeContext) error
	)

	do := func(path, authorization string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		return w
	}

	BeforeEach(func() {
		logs = &bytes.Buffer{}
		verifies.Store(0)
		challenge = nil

		logger := logging.MustNew(
			logging.WithJSONHandler(),
			logging.WithOutput(logs),
			logging.WithDebugLevel(),
			logging.WithServiceName("basic-integration"),
		).Logger()

		registry := authentication.NewRegistry()
		_, err := basic.Register(registry,
			basic.WithRealm("Integration"),
			basic.WithLogger(logger),
			basic.WithVerifierFunc(func(_ context.Context, username, password string) (bool, error) {
				verifies.Add(1)
				return username == "some-user" && password == "password", nil
			}),
			basic.WithEvents(basic.Events{
				OnCredentialsValidated: func(_ context.Context, vc *basic.ValidatedContext) error {
					vc.Identity.SetClaim("role", "member")
					return nil
				},
				OnChallenge: func(ctx context.Context, cc *basic.ChallengeContext) error {
					if challenge != nil {
						return challenge(ctx, cc)
					}
					return nil
				},
			}),
		)
		Expect(err).NotTo(HaveOccurred())

		r = router.MustNew()

		r.GET("/public", registry.RouterMiddleware(authentication.WithLogger(logger)), func(c *router.Context) {
			//nolint:errcheck // Test handler
			c.JSON(http.StatusOK, map[string]string{"user": authentication.Username(c)})
		})

		protected := r.Group("/api", registry.RouterMiddleware(
			authentication.WithRequireAuthenticated(),
			authentication.WithLogger(logger),
		))
		protected.GET("/me", func(c *router.Context) {
			id := authentication.CurrentIdentity(c)
			role, _ := id.Claim("role")
			//nolint:errcheck // Test handler
			c.JSON(http.StatusOK, map[string]string{"user": id.Name, "role": role, "issuer": id.Issuer})
		})
	})

	Describe("protected routes", func() {
		It("should accept valid credentials without a challenge", func() {
			w := do("/api/me", basic.EncodeHeader("some-user", "password"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("WWW-Authenticate")).To(BeEmpty())
			Expect(w.Body.String()).To(MatchJSON(`{"user":"some-user","role":"member","issuer":"Basic"}`))
		})

		It("should challenge anonymous requests", func() {
			w := do("/api/me", "")

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Header().Values("WWW-Authenticate")).To(ConsistOf(`Basic realm="Integration"`))
			Expect(w.Body.Len()).To(BeZero())
			Expect(verifies.Load()).To(BeZero())
		})

		It("should challenge rejected credentials and log the user", func() {
			w := do("/api/me", basic.EncodeHeader("some-user", "wrong"))

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Header().Get("WWW-Authenticate")).To(Equal(`Basic realm="Integration"`))
			Expect(hasLog(logLines(logs), "basic authentication failed", "user", "some-user")).To(BeTrue())
		})

		It("should verify credentials once per request across authentication and challenge", func() {
			do("/api/me", basic.EncodeHeader("some-user", "wrong"))

			Expect(verifies.Load()).To(Equal(int32(1)))
		})

		It("should challenge malformed credentials", func() {
			w := do("/api/me", "Basic !!not-base64!!")

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(hasLog(logLines(logs), "authentication error on protected route", "scheme", "Basic")).To(BeTrue())
		})

		It("should let the challenge hook take over the response", func() {
			challenge = func(_ context.Context, cc *basic.ChallengeContext) error {
				cc.Response.Header().Set("Content-Type", "application/json")
				cc.Response.WriteHeader(http.StatusUnauthorized)
				_, _ = cc.Response.Write([]byte(`{"error":"login required"}`))
				cc.HandleResponse()
				return nil
			}

			w := do("/api/me", "")

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Header().Get("WWW-Authenticate")).To(BeEmpty())
			Expect(w.Body.String()).To(MatchJSON(`{"error":"login required"}`))
		})
	})

	Describe("public routes", func() {
		It("should attach the identity when credentials are valid", func() {
			w := do("/public", basic.EncodeHeader("some-user", "password"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"user":"some-user"}`))
		})

		It("should let anonymous requests through", func() {
			w := do("/public", "")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"user":""}`))
		})

		It("should report malformed credentials as a server error", func() {
			w := do("/public", "Basic !!not-base64!!")

			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			var body map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("code", "MALFORMED_CREDENTIALS"))
		})
	})
})
