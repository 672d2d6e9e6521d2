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
	"fmt"

	"rivaas.dev/authentication"
)

// Register builds a Basic handler and adds it to reg under its scheme name.
//
// Example:
//
//	registry := authentication.NewRegistry()
//	if _, err := basic.Register(registry,
//	    basic.WithRealm("Admin Panel"),
//	    basic.WithUsers(map[string]string{"admin": "secret"}),
//	); err != nil {
//	    log.Fatal(err)
//	}
func Register(reg *authentication.Registry, opts ...Option) (*Handler, error) {
	h, err := New(opts...)
	if err != nil {
		return nil, err
	}

	if err := reg.Add(authentication.Scheme{
		Name:        h.opts.SchemeName,
		DisplayName: h.opts.DisplayName,
		Handler:     h,
	}); err != nil {
		return nil, fmt.Errorf("basic: registering scheme %q: %w", h.opts.SchemeName, err)
	}

	return h, nil
}
