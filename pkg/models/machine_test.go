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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineRecord_StringFlags(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		wantEncrypted bool
		wantUpToDate  bool
	}{
		{
			name:          "string literal true",
			payload:       `{"machine_id":"m1","disk_encryption":{"status":"true"},"os_update":{"up_to_date":"true"}}`,
			wantEncrypted: true,
			wantUpToDate:  true,
		},
		{
			name:    "boolean true is not a match",
			payload: `{"machine_id":"m1","disk_encryption":{"status":true},"os_update":{"up_to_date":true}}`,
		},
		{
			name:    "string false",
			payload: `{"machine_id":"m1","disk_encryption":{"status":"false"},"os_update":{"up_to_date":"false"}}`,
		},
		{
			name:    "checks absent",
			payload: `{"machine_id":"m1"}`,
		},
		{
			name:    "checks null",
			payload: `{"machine_id":"m1","disk_encryption":null,"os_update":null}`,
		},
		{
			name:    "uppercase string",
			payload: `{"machine_id":"m1","disk_encryption":{"status":"TRUE"},"os_update":{"up_to_date":"True"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec MachineRecord

			require.NoError(t, json.Unmarshal([]byte(tt.payload), &rec))
			assert.Equal(t, tt.wantEncrypted, rec.IsEncrypted())
			assert.Equal(t, tt.wantUpToDate, rec.IsUpToDate())
		})
	}
}

func TestMachineRecord_DecodesFullPayload(t *testing.T) {
	payload := `{
		"machine_id": "4c4c4544-0042",
		"system": "Windows",
		"release": "10",
		"version": "10.0.19045",
		"arch": "AMD64",
		"checked_at": "2024-01-01T00:00:00+00:00",
		"reported_at": "2024-01-01T00:00:05Z",
		"disk_encryption": {"supported": true, "status": "true"},
		"os_update": {"up_to_date": "false", "pending": 3},
		"antivirus": {"name": "Defender", "enabled": true},
		"inactivity_sleep": {"minutes": 10}
	}`

	var rec MachineRecord

	require.NoError(t, json.Unmarshal([]byte(payload), &rec))
	assert.Equal(t, "4c4c4544-0042", rec.MachineID)
	assert.Equal(t, "Windows", rec.System)
	assert.Equal(t, "10.0.19045", rec.Version)
	assert.Equal(t, "Defender", rec.Antivirus["name"])
	assert.InDelta(t, 10, rec.InactivitySleep["minutes"], 0)
	assert.True(t, rec.IsEncrypted())
	assert.False(t, rec.IsUpToDate())
}

func TestCheckResult_FlagNil(t *testing.T) {
	var c CheckResult

	assert.False(t, c.Flag(CheckKeyStatus))
}

func TestFilterCriteria_IsEmpty(t *testing.T) {
	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.False(t, FilterCriteria{OS: "Linux"}.IsEmpty())
	assert.False(t, FilterCriteria{Outdated: Bool(false)}.IsEmpty())
	assert.False(t, FilterCriteria{Unencrypted: Bool(true)}.IsEmpty())
}

func TestParseTriState(t *testing.T) {
	v, err := ParseTriState("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseTriState("false")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.False(t, *v)

	v, err = ParseTriState("true")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	_, err = ParseTriState("maybe")
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Duration
		wantErr  bool
	}{
		{name: "string duration", input: `"5s"`, expected: Duration(5 * time.Second)},
		{name: "numeric nanoseconds", input: `5000000000`, expected: Duration(5 * time.Second)},
		{name: "compound string", input: `"1m30s"`, expected: Duration(90 * time.Second)},
		{name: "invalid string", input: `"soon"`, wantErr: true},
		{name: "invalid type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration(15 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"15s"`, string(b))
}
