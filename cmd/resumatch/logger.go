// Copyright 2025 The Resumatch Authors
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

package main

import (
	"io"
	"os"

	"github.com/resumatch/resumatch/logger"
)

// initLogging configures the process-wide slog logger from CLI flags.
func initLogging(cli *CLI) error {
	level, err := logger.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}

	var output io.Writer = os.Stderr
	if cli.LogFile != "" {
		// The log file stays open for the process lifetime.
		file, _, err := logger.OpenLogFile(cli.LogFile)
		if err != nil {
			return err
		}
		output = file
	}

	logger.Init(level, output, cli.LogFormat)
	return nil
}
