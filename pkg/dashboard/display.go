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

package dashboard

import (
	"time"

	"github.com/carverauto/admindash/pkg/models"
)

// Badge labels.
const (
	BadgeEncrypted    = "Encrypted"
	BadgeNotEncrypted = "Not Encrypted"
	BadgeUpToDate     = "Up-to-date"
	BadgeOutdated     = "Outdated"
)

// TimestampLayout is how check-in times are shown.
const TimestampLayout = "2006-01-02 15:04:05 MST"

// offset-less ISO timestamps written by the backend's utcnow().isoformat()
const localISOLayout = "2006-01-02T15:04:05.999999999"

// Columns are the table headings, in display order.
var Columns = []string{
	"Machine ID",
	"OS",
	"Release",
	"Arch",
	"Last Check-in",
	"Encryption",
	"OS Update",
}

// OSOption is one entry of the OS selector.
type OSOption struct {
	Label string
	Value string
}

// OSOptions lists the selector entries; the empty value means all systems.
var OSOptions = []OSOption{
	{Label: "All OS", Value: ""},
	{Label: "Windows", Value: "Windows"},
	{Label: "MacOS", Value: "Darwin"},
	{Label: "Linux", Value: "Linux"},
}

// OSLabel returns the selector label for value, or value itself if unknown.
func OSLabel(value string) string {
	for _, o := range OSOptions {
		if o.Value == value {
			return o.Label
		}
	}

	return value
}

// Row is the display form of one record. Key is the record's machine_id.
type Row struct {
	Key         string
	MachineID   string
	OS          string
	Release     string
	Arch        string
	LastCheckIn string
	Encryption  string
	Update      string
	Encrypted   bool
	UpToDate    bool
}

// Cells returns the row values in Columns order.
func (r Row) Cells() []string {
	return []string{r.MachineID, r.OS, r.Release, r.Arch, r.LastCheckIn, r.Encryption, r.Update}
}

// EncryptionBadge reports whether the disk check flagged the machine as encrypted.
func EncryptionBadge(rec *models.MachineRecord) string {
	if rec.IsEncrypted() {
		return BadgeEncrypted
	}

	return BadgeNotEncrypted
}

// UpdateBadge reports whether the update check flagged the machine as up to date.
func UpdateBadge(rec *models.MachineRecord) string {
	if rec.IsUpToDate() {
		return BadgeUpToDate
	}

	return BadgeOutdated
}

// FormatTimestamp renders an ISO-8601 instant in loc. Timestamps without an
// offset are read as local wall time in loc. Unparseable input is returned
// unchanged.
func FormatTimestamp(raw string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc).Format(TimestampLayout)
	}

	if t, err := time.ParseInLocation(localISOLayout, raw, loc); err == nil {
		return t.Format(TimestampLayout)
	}

	return raw
}

// BuildRows derives one Row per record, preserving order.
func BuildRows(records []models.MachineRecord, loc *time.Location) []Row {
	rows := make([]Row, 0, len(records))

	for i := range records {
		rec := &records[i]

		rows = append(rows, Row{
			Key:         rec.MachineID,
			MachineID:   rec.MachineID,
			OS:          rec.System,
			Release:     rec.Release,
			Arch:        rec.Arch,
			LastCheckIn: FormatTimestamp(rec.ReportedAt, loc),
			Encryption:  EncryptionBadge(rec),
			Update:      UpdateBadge(rec),
			Encrypted:   rec.IsEncrypted(),
			UpToDate:    rec.IsUpToDate(),
		})
	}

	return rows
}
