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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAdd(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	_, ok := reg.Default()
	assert.False(t, ok)

	require.NoError(t, reg.Add(Scheme{Name: "Fake", Handler: &fakeHandler{}}))
	require.NoError(t, reg.Add(Scheme{Name: "Other", DisplayName: "Other scheme", Handler: &fakeHandler{}}))

	err := reg.Add(Scheme{Name: "Fake", Handler: &fakeHandler{}})
	require.ErrorIs(t, err, ErrDuplicateScheme)

	require.ErrorIs(t, reg.Add(Scheme{Name: " ", Handler: &fakeHandler{}}), ErrInvalidScheme)
	require.ErrorIs(t, reg.Add(Scheme{Name: "NoHandler"}), ErrInvalidScheme)

	name, ok := reg.Default()
	require.True(t, ok)
	assert.Equal(t, "Fake", name)

	s, ok := reg.Scheme("Fake")
	require.True(t, ok)
	assert.Equal(t, "Fake", s.DisplayName)

	schemes := reg.Schemes()
	require.Len(t, schemes, 2)
	assert.Equal(t, "Fake", schemes[0].Name)
	assert.Equal(t, "Other scheme", schemes[1].DisplayName)

	require.NoError(t, reg.SetDefault("Other"))
	name, _ = reg.Default()
	assert.Equal(t, "Other", name)
	require.ErrorIs(t, reg.SetDefault("Missing"), ErrSchemeNotFound)
}

func TestRegistryAuthenticate(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{}
	reg := NewRegistry()
	require.NoError(t, reg.Add(Scheme{Name: "Fake", Handler: h}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Fake admin")
	ctx := WithRequestState(req.Context())

	for range 3 {
		outcome, err := reg.Authenticate(ctx, req, "Fake")
		require.NoError(t, err)
		assert.Equal(t, "admin", IdentityOf(outcome).Name)
	}
	assert.Equal(t, int32(1), h.calls.Load())

	_, err := reg.Authenticate(ctx, req, "Missing")
	require.ErrorIs(t, err, ErrSchemeNotFound)
}

func TestRegistryAuthenticateError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reg := NewRegistry()
	require.NoError(t, reg.Add(Scheme{Name: "Fake", Handler: &fakeHandler{err: boom}}))

	_, err := reg.Authenticate(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil), "Fake")
	require.ErrorIs(t, err, boom)

	var schemeErr *SchemeError
	require.ErrorAs(t, err, &schemeErr)
	assert.Equal(t, "Fake", schemeErr.Scheme)
	assert.Equal(t, "authenticate", schemeErr.Operation)
	assert.Equal(t, "AUTHENTICATION_ERROR", schemeErr.Code())
}

func TestRegistryChallenge(t *testing.T) {
	t.Parallel()

	h := &fakeHandler{}
	reg := NewRegistry()
	require.NoError(t, reg.Add(Scheme{Name: "Fake", Handler: h}))

	w := httptest.NewRecorder()
	err := reg.Challenge(context.Background(), w, httptest.NewRequest(http.MethodGet, "/", nil), "Fake", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Fake", w.Header().Get("WWW-Authenticate"))

	err = reg.Challenge(context.Background(), w, httptest.NewRequest(http.MethodGet, "/", nil), "Missing", nil)
	require.ErrorIs(t, err, ErrSchemeNotFound)
}

type codedError struct{}

func (codedError) Error() string { return "coded" }
func (codedError) Code() string  { return "CUSTOM" }

func TestSchemeErrorCode(t *testing.T) {
	t.Parallel()

	err := &SchemeError{Scheme: "Fake", Operation: "challenge", Err: codedError{}}
	assert.Equal(t, "CUSTOM", err.Code())
	assert.Equal(t, `authentication scheme "Fake" failed during challenge: coded`, err.Error())
}
