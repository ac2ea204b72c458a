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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/admindash/pkg/logger"
	"github.com/carverauto/admindash/pkg/models"
)

func linuxMachine() models.MachineRecord {
	return models.MachineRecord{
		MachineID:  "m1",
		System:     "Linux",
		Release:    "22.04",
		Arch:       "x86_64",
		ReportedAt: "2024-01-01T00:00:00Z",
	}
}

func newTable(source MachineSource, opts ...func(*Table)) *Table {
	opts = append([]func(*Table){WithLocation(time.UTC), WithLogger(logger.NewTestLogger())}, opts...)

	return NewTable(source, opts...)
}

func TestTable_InitialState(t *testing.T) {
	ctrl := gomock.NewController(t)
	table := newTable(NewMockMachineSource(ctrl))

	s := table.Snapshot()
	assert.Empty(t, s.Records)
	assert.Empty(t, s.Rows)
	assert.Empty(t, s.OSFilter)
	assert.False(t, s.IsLoading)
	assert.NoError(t, s.Err)
}

func TestTable_LoadRendersRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	var table *Table

	source.EXPECT().FetchAll(gomock.Any()).DoAndReturn(func(context.Context) ([]models.MachineRecord, error) {
		assert.True(t, table.Snapshot().IsLoading, "loading flag must be set while the request is in flight")

		return []models.MachineRecord{linuxMachine()}, nil
	})

	table = newTable(source)

	require.NoError(t, table.Load(context.Background()))

	s := table.Snapshot()
	assert.False(t, s.IsLoading)
	require.Len(t, s.Rows, 1)

	row := s.Rows[0]
	assert.Equal(t, "m1", row.Key)
	assert.Equal(t, "Linux", row.OS)
	assert.Equal(t, "22.04", row.Release)
	assert.Equal(t, "x86_64", row.Arch)
	assert.Equal(t, "2024-01-01 00:00:00 UTC", row.LastCheckIn)
	assert.Equal(t, BadgeNotEncrypted, row.Encryption)
	assert.Equal(t, BadgeOutdated, row.Update)
}

func TestTable_RowCountMatchesRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	records := []models.MachineRecord{
		{MachineID: "a", System: "Windows"},
		{MachineID: "b", System: "Darwin"},
		{MachineID: "c", System: "Linux"},
	}
	source.EXPECT().FetchAll(gomock.Any()).Return(records, nil)

	table := newTable(source)
	require.NoError(t, table.Load(context.Background()))

	s := table.Snapshot()
	require.Len(t, s.Rows, len(records))

	for i, row := range s.Rows {
		assert.Equal(t, records[i].MachineID, row.Key)
	}
}

func TestTable_LoadFailureKeepsRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	backendErr := errors.New("dial tcp 127.0.0.1:8001: connect: connection refused")
	source.EXPECT().FetchAll(gomock.Any()).Return(nil, backendErr)

	table := newTable(source)

	err := table.Load(context.Background())
	require.ErrorIs(t, err, backendErr)

	s := table.Snapshot()
	assert.Empty(t, s.Records)
	assert.False(t, s.IsLoading)
	require.ErrorIs(t, s.Err, backendErr)
}

func TestTable_FailureAfterSuccessKeepsPreviousRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	gomock.InOrder(
		source.EXPECT().FetchAll(gomock.Any()).Return([]models.MachineRecord{linuxMachine()}, nil),
		source.EXPECT().FetchFiltered(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout")),
		source.EXPECT().FetchAll(gomock.Any()).Return([]models.MachineRecord{linuxMachine()}, nil),
	)

	table := newTable(source)
	require.NoError(t, table.Load(context.Background()))
	require.Error(t, table.ApplyFilter(context.Background()))

	s := table.Snapshot()
	require.Len(t, s.Records, 1)
	require.Error(t, s.Err)

	require.NoError(t, table.Load(context.Background()))
	assert.NoError(t, table.Snapshot().Err, "a successful request clears the error")
}

func TestTable_ApplyFilterSendsSelectedOS(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	darwin := models.MachineRecord{MachineID: "mac-1", System: "Darwin"}
	source.EXPECT().
		FetchFiltered(gomock.Any(), models.FilterCriteria{OS: "Darwin"}).
		Return([]models.MachineRecord{darwin}, nil)

	table := newTable(source)
	table.SetOSFilter("Darwin")
	assert.Equal(t, "Darwin", table.OSFilter())

	require.NoError(t, table.ApplyFilter(context.Background()))

	s := table.Snapshot()
	assert.Equal(t, "Darwin", s.OSFilter)
	assert.False(t, s.IsLoading)
	require.Len(t, s.Rows, 1)
	assert.Equal(t, "mac-1", s.Rows[0].Key)
}

func TestTable_ApplyFilterAllOS(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	source.EXPECT().FetchFiltered(gomock.Any(), models.FilterCriteria{}).Return([]models.MachineRecord{}, nil)

	table := newTable(source)
	require.NoError(t, table.ApplyFilter(context.Background()))
}

func TestTable_NewerRequestSupersedesOlder(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	started := make(chan struct{})

	source.EXPECT().FetchAll(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]models.MachineRecord, error) {
		close(started)
		<-ctx.Done()

		return []models.MachineRecord{{MachineID: "stale"}}, ctx.Err()
	})
	source.EXPECT().
		FetchFiltered(gomock.Any(), models.FilterCriteria{OS: "Linux"}).
		Return([]models.MachineRecord{linuxMachine()}, nil)

	table := newTable(source)

	loadErr := make(chan error, 1)

	go func() {
		loadErr <- table.Load(context.Background())
	}()

	<-started

	table.SetOSFilter("Linux")
	require.NoError(t, table.ApplyFilter(context.Background()))

	select {
	case err := <-loadErr:
		require.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("superseded load did not return")
	}

	s := table.Snapshot()
	require.Len(t, s.Records, 1)
	assert.Equal(t, "m1", s.Records[0].MachineID)
	assert.False(t, s.IsLoading)
	assert.NoError(t, s.Err)
}

func TestTable_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)
	saver := NewMockSaver(ctrl)

	payload := []byte("machine_id,system\r\nm1,Linux\r\n")

	source.EXPECT().FetchAll(gomock.Any()).Return([]models.MachineRecord{linuxMachine()}, nil)
	source.EXPECT().ExportCSV(gomock.Any()).Return(payload, nil)
	saver.EXPECT().Save(ExportFileName, payload).Return("/tmp/machines.csv", nil)

	table := newTable(source, WithSaver(saver))
	require.NoError(t, table.Load(context.Background()))

	path, err := table.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/machines.csv", path)

	s := table.Snapshot()
	assert.Equal(t, "/tmp/machines.csv", s.LastExport)
	assert.Len(t, s.Records, 1, "export must not touch the record set")
	assert.False(t, s.IsLoading)
}

func TestTable_ExportFailures(t *testing.T) {
	t.Run("backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := NewMockMachineSource(ctrl)
		saver := NewMockSaver(ctrl)

		source.EXPECT().ExportCSV(gomock.Any()).Return(nil, errors.New("HTTP 500"))

		table := newTable(source, WithSaver(saver))

		_, err := table.Export(context.Background())
		require.Error(t, err)
		assert.Error(t, table.Snapshot().Err)
	})

	t.Run("saver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		source := NewMockMachineSource(ctrl)
		saver := NewMockSaver(ctrl)

		saveErr := errors.New("read-only file system")

		source.EXPECT().ExportCSV(gomock.Any()).Return([]byte("x"), nil)
		saver.EXPECT().Save(ExportFileName, gomock.Any()).Return("", saveErr)

		table := newTable(source, WithSaver(saver))

		_, err := table.Export(context.Background())
		require.ErrorIs(t, err, saveErr)
		assert.Empty(t, table.Snapshot().LastExport)
	})

	t.Run("no saver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		table := newTable(NewMockMachineSource(ctrl))

		_, err := table.Export(context.Background())
		require.ErrorIs(t, err, errNoSaver)
	})
}

func TestTable_SnapshotIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := NewMockMachineSource(ctrl)

	source.EXPECT().FetchAll(gomock.Any()).Return([]models.MachineRecord{linuxMachine()}, nil)

	table := newTable(source)
	require.NoError(t, table.Load(context.Background()))

	s := table.Snapshot()
	s.Records[0].MachineID = "mutated"

	assert.Equal(t, "m1", table.Snapshot().Records[0].MachineID)
}
