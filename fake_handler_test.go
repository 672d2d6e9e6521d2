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
	"net/http"
	"strings"
	"sync/atomic"
)

// fakeHandler accepts "Fake <name>" authorization headers.
type fakeHandler struct {
	calls      atomic.Int32
	challenges atomic.Int32
	status     int
	err        error
}

func (h *fakeHandler) Authenticate(_ context.Context, r *http.Request) (Outcome, error) {
	h.calls.Add(1)
	if h.err != nil {
		return nil, h.err
	}

	name, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Fake ")
	switch {
	case !ok:
		return None(), nil
	case name == "":
		return Fail("empty name", nil), nil
	default:
		return Succeed(&Identity{Name: name, Issuer: "fake"}), nil
	}
}

func (h *fakeHandler) Challenge(_ context.Context, w http.ResponseWriter, _ *http.Request, _ Properties) error {
	h.challenges.Add(1)
	w.Header().Add("WWW-Authenticate", "Fake")
	status := h.status
	if status == 0 {
		status = http.StatusUnauthorized
	}
	w.WriteHeader(status)

	return nil
}
