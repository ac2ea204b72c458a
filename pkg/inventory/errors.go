/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches every *NetworkError through errors.Is.
	ErrNetwork = errors.New("network error")
	// ErrDecode is returned when a 2xx body is not a machine list.
	ErrDecode = errors.New("failed to decode response")
	// ErrBackend is returned when the backend answers 2xx with an {"error": ...} object.
	ErrBackend = errors.New("backend reported an error")

	errBaseURLRequired = errors.New("base URL is required")
	errInvalidBaseURL  = errors.New("base URL must be an absolute http(s) URL")
)

// NetworkError is a transport failure or a non-2xx response.
// StatusCode is zero when no response was received.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("%s %s: HTTP %d: %s", e.Op, e.URL, e.StatusCode, e.Body)
		}

		return fmt.Sprintf("%s %s: HTTP %d", e.Op, e.URL, e.StatusCode)
	}

	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (*NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
