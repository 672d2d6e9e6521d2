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

// Package main runs an example server protected by HTTP Basic authentication.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"rivaas.dev/config"
	"rivaas.dev/config/codec"
	"rivaas.dev/logging"
	"rivaas.dev/metrics"
	"rivaas.dev/router"
	"rivaas.dev/tracing"

	"rivaas.dev/authentication"
	"rivaas.dev/authentication/basic"
)

// defaults are used when no auth.yaml is present.
var defaults = []byte(`
realm: Admin Panel
users:
  - username: admin
    password: secret123
  - username: user
    password: password456
`)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})

	if err := run(ctx, banner); err != nil {
		banner.Fatal(err)
	}
}

func run(ctx context.Context, banner *log.Logger) error {
	logger := logging.MustNew(
		logging.WithJSONHandler(),
		logging.WithServiceName("basicauth-example"),
	).Logger()

	sources := []config.Option{config.WithContent(defaults, codec.TypeYAML)}
	if _, err := os.Stat("auth.yaml"); err == nil {
		sources = append(sources, config.WithFile("auth.yaml"))
	}
	sources = append(sources, config.WithEnv("BASICAUTH_"))

	settings, err := basic.LoadSettings(ctx, sources...)
	if err != nil {
		return err
	}

	recorder, err := metrics.New(
		metrics.WithServiceName("basicauth-example"),
		metrics.WithPrometheus(":9090", "/metrics"),
		metrics.WithGlobalMeterProvider(),
	)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := recorder.Start(ctx); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	tracer, err := tracing.New(
		tracing.WithServiceName("basicauth-example"),
		tracing.WithStdout(),
		tracing.WithGlobalTracerProvider(),
	)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracer.Shutdown(shutdownCtx)
		_ = recorder.Shutdown(shutdownCtx)
	}()

	registry := authentication.NewRegistry()
	if _, err := basic.Register(registry, append(settings.Options(),
		basic.WithLogger(logger),
		basic.WithEvents(basic.Events{
			OnCredentialsValidated: func(_ context.Context, vc *basic.ValidatedContext) error {
				if vc.Username == "admin" {
					vc.Identity.SetClaim("role", "admin")
				}
				return nil
			},
		}),
	)...); err != nil {
		return err
	}

	r := router.MustNew()

	// Public routes - identity is attached when credentials are sent
	r.Use(registry.RouterMiddleware(
		authentication.WithLogger(logger),
		authentication.WithSkipPaths("/health"),
	))

	r.GET("/", func(c *router.Context) {
		user := authentication.Username(c)
		if user == "" {
			user = "anonymous"
		}
		//nolint:errcheck // Example handler
		c.JSON(http.StatusOK, map[string]string{
			"message": "Welcome! Visit /admin for protected content.",
			"user":    user,
		})
	})

	r.GET("/health", func(c *router.Context) {
		//nolint:errcheck // Example handler
		c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Protected admin routes
	admin := r.Group("/admin", registry.RouterMiddleware(
		authentication.WithRequireAuthenticated(),
		authentication.WithLogger(logger),
	))

	admin.GET("/dashboard", func(c *router.Context) {
		id := authentication.CurrentIdentity(c)
		role, _ := id.Claim("role")
		//nolint:errcheck // Example handler
		c.JSON(http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Welcome to admin dashboard, %s!", id.Name),
			"user":    id.Name,
			"role":    role,
		})
	})

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	banner.Info("🚀 Server starting on http://localhost:8080")
	banner.Print("")
	banner.Print("📝 Available endpoints:")
	banner.Print("  GET /                    - Public route (identity optional)")
	banner.Print("  GET /health              - Health check (no auth)")
	banner.Print("  GET /admin/dashboard     - Protected admin route")
	banner.Print("")
	banner.Print("📋 Example commands:")
	banner.Print("  curl -i http://localhost:8080/admin/dashboard")
	banner.Print("  curl -u admin:secret123 http://localhost:8080/admin/dashboard")
	banner.Print("  curl http://localhost:9090/metrics | grep auth_basic_attempts")
	banner.Print("")
	banner.Printf("🔐 Realm %q, %d configured users", settings.Realm, len(settings.Users))
	banner.Print("⚠️  WARNING: Basic Auth transmits credentials in base64 (not encrypted).")
	banner.Print("   Always use HTTPS in production!")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
