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

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit(t *testing.T) {
	config := &Config{
		Level:  "debug",
		Debug:  true,
		Output: "discard",
	}

	err := Init(config)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	level := Global().WithComponent("test").GetLevel()
	if level != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %v", level)
	}
}

func TestInit_NilConfig(t *testing.T) {
	if err := Init(nil); err == nil {
		t.Fatal("Expected error for nil config")
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	if err := Init(&Config{Level: "loud", Output: "discard"}); err == nil {
		t.Fatal("Expected error for invalid level")
	}
}

func TestInit_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admindash.log")

	if err := Init(&Config{Level: "info", Output: path}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Global().Info().Str("component", "test").Msg("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if len(data) == 0 {
		t.Error("Expected log file to contain the entry")
	}

	if err := Init(&Config{Output: "discard"}); err != nil {
		t.Fatalf("Failed to reset logger: %v", err)
	}
}

func TestNewTestLogger(t *testing.T) {
	l := NewTestLogger()

	if l == nil {
		t.Fatal("NewTestLogger should not return nil")
	}

	if l.WithComponent("x").GetLevel() != zerolog.Disabled {
		t.Error("Test logger should be disabled")
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_OUTPUT", "")

	config := DefaultConfig()

	if config.Level != "info" {
		t.Errorf("Expected default level info, got %q", config.Level)
	}

	if config.Output != "stderr" {
		t.Errorf("Expected default output stderr, got %q", config.Output)
	}
}
