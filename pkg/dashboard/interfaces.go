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

	"github.com/carverauto/admindash/pkg/models"
)

//go:generate mockgen -destination=mock_dashboard.go -package=dashboard github.com/carverauto/admindash/pkg/dashboard MachineSource,Saver

// MachineSource is the backend the table reads from. *inventory.Client implements it.
type MachineSource interface {
	FetchAll(ctx context.Context) ([]models.MachineRecord, error)
	FetchFiltered(ctx context.Context, criteria models.FilterCriteria) ([]models.MachineRecord, error)
	ExportCSV(ctx context.Context) ([]byte, error)
}

// Saver persists an exported payload under name and returns where it went.
type Saver interface {
	Save(name string, data []byte) (string, error)
}
