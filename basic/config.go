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

package basic

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"rivaas.dev/config"
)

// UserSettings is one configured user.
type UserSettings struct {
	Username string `config:"username"`
	Password string `config:"password"`
}

// Settings is the file/environment form of the handler options.
//
// Example YAML:
//
//	realm: Admin Panel
//	scheme: Basic
//	users:
//	  - username: admin
//	    password: secret
type Settings struct {
	Realm       string         `config:"realm"`
	Scheme      string         `config:"scheme" default:"Basic"`
	DisplayName string         `config:"displayname"`
	Issuer      string         `config:"issuer"`
	Users       []UserSettings `config:"users"`
}

// Validate checks the settings after binding.
func (s *Settings) Validate() error {
	if s.Scheme == "" {
		return errors.New("scheme is required")
	}

	seen := make(map[string]bool, len(s.Users))
	for i, u := range s.Users {
		if u.Username == "" {
			return fmt.Errorf("users[%d]: username is required", i)
		}
		if seen[u.Username] {
			return fmt.Errorf("users[%d]: duplicate username %q", i, u.Username)
		}
		seen[u.Username] = true
	}

	return nil
}

// Options converts the settings to handler options. A users verifier is
// included only when users are configured, so callers can supply their own
// verifier after these options.
func (s *Settings) Options() []Option {
	opts := []Option{
		WithRealm(s.Realm),
		WithSchemeName(s.Scheme),
	}
	if s.DisplayName != "" {
		opts = append(opts, WithDisplayName(s.DisplayName))
	}
	if s.Issuer != "" {
		opts = append(opts, WithIssuer(s.Issuer))
	}
	if len(s.Users) > 0 {
		users := make(map[string]string, len(s.Users))
		for _, u := range s.Users {
			users[u.Username] = u.Password
		}
		opts = append(opts, WithUsers(users))
	}

	return opts
}

// LoadSettings loads settings from the given config sources.
//
// Example:
//
//	settings, err := basic.LoadSettings(ctx,
//	    config.WithFile("auth.yaml"),
//	    config.WithEnv("BASICAUTH_"),
//	)
func LoadSettings(ctx context.Context, sources ...config.Option) (*Settings, error) {
	var s Settings

	cfg, err := config.New(append(slices.Clone(sources), config.WithBinding(&s))...)
	if err != nil {
		return nil, fmt.Errorf("basic: creating settings config: %w", err)
	}
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("basic: loading settings: %w", err)
	}

	return &s, nil
}
