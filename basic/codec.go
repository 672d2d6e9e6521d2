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
	"encoding/base64"
	"strings"
)

const prefix = "Basic "

// Credentials is a decoded username/password pair.
type Credentials struct {
	Username string
	Password string
}

// DecodeHeader parses the value of an Authorization header.
//
// It returns [ErrNotPresent] when the value is empty, uses another scheme,
// or carries no payload. A payload that is present but malformed yields a
// [*DecodeError]. The scheme prefix is matched case-insensitively.
//
// Example:
//
//	creds, err := basic.DecodeHeader(r.Header.Get("Authorization"))
//	if errors.Is(err, basic.ErrNotPresent) {
//	    // anonymous
//	}
func DecodeHeader(value string) (Credentials, error) {
	if len(value) < len(prefix) || !strings.EqualFold(value[:len(prefix)], prefix) {
		return Credentials{}, ErrNotPresent
	}

	payload := strings.TrimSpace(value[len(prefix):])
	if payload == "" {
		return Credentials{}, ErrNotPresent
	}

	return Decode(payload)
}

// Decode decodes a base64 "username:password" payload.
// The payload is split on the first colon, so passwords may contain colons.
// Empty usernames and passwords are allowed.
func Decode(payload string) (Credentials, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Credentials{}, &DecodeError{Reason: "invalid base64 payload", Err: err}
	}

	decoded := strings.ToValidUTF8(string(raw), "�")

	username, password, ok := strings.Cut(decoded, ":")
	if !ok {
		return Credentials{}, &DecodeError{Reason: "missing separator"}
	}

	return Credentials{Username: username, Password: password}, nil
}

// EncodeHeader returns the Authorization header value for the given
// credentials.
func EncodeHeader(username, password string) string {
	return prefix + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
