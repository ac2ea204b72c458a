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

// Package models holds the wire types shared by the admin dashboard components.
package models

import "strconv"

// Well-known keys inside the optional check payloads.
const (
	CheckKeyStatus   = "status"
	CheckKeyUpToDate = "up_to_date"
)

// flagTrue is the literal the inventory backend stores for a passing check.
// Checks are stringified server side, so a JSON boolean true is not a match.
const flagTrue = "true"

// CheckResult is one optional check payload reported by an endpoint agent
// (disk_encryption, os_update, antivirus, inactivity_sleep). The backend does
// not pin the value types, so fields are kept as decoded JSON.
type CheckResult map[string]interface{}

// Flag reports whether key holds exactly the string "true".
// A nil CheckResult, a missing key, or any non-string value is false.
func (c CheckResult) Flag(key string) bool {
	if c == nil {
		return false
	}

	s, ok := c[key].(string)

	return ok && s == flagTrue
}

// MachineRecord is one inventory entry as returned by the backend.
// Records are read-only once decoded.
type MachineRecord struct {
	MachineID       string      `json:"machine_id"`
	System          string      `json:"system"`
	Release         string      `json:"release"`
	Version         string      `json:"version,omitempty"`
	Arch            string      `json:"arch"`
	CheckedAt       string      `json:"checked_at,omitempty"`
	ReportedAt      string      `json:"reported_at"`
	DiskEncryption  CheckResult `json:"disk_encryption,omitempty"`
	OSUpdate        CheckResult `json:"os_update,omitempty"`
	Antivirus       CheckResult `json:"antivirus,omitempty"`
	InactivitySleep CheckResult `json:"inactivity_sleep,omitempty"`
}

// IsEncrypted reports whether disk_encryption.status is the string "true".
func (m *MachineRecord) IsEncrypted() bool {
	return m.DiskEncryption.Flag(CheckKeyStatus)
}

// IsUpToDate reports whether os_update.up_to_date is the string "true".
func (m *MachineRecord) IsUpToDate() bool {
	return m.OSUpdate.Flag(CheckKeyUpToDate)
}

// FilterCriteria constrains the filtered listing endpoint.
// OS is an exact match and empty means no filter; nil booleans are omitted
// from the request entirely.
type FilterCriteria struct {
	OS          string `json:"os,omitempty"`
	Outdated    *bool  `json:"outdated,omitempty"`
	Unencrypted *bool  `json:"unencrypted,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (f FilterCriteria) IsEmpty() bool {
	return f.OS == "" && f.Outdated == nil && f.Unencrypted == nil
}

// ParseTriState converts a flag value into an optional boolean.
// An empty string yields nil.
func ParseTriState(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
