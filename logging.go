// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jdwp

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/op/go-logging"
)

var stderrFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.6s} jdwp ▶ %{message}`,
)

// defaultLogger builds the package's default diagnostic logger: a stderr
// backend at WARNING level, following the same NewLogBackend +
// AddModuleLevel + SetFormatter shape as kryptco-kr's SetupLogging.
func defaultLogger() *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
	return logging.MustGetLogger("jdwp")
}

// recoverToLog runs f on the current goroutine, logging (rather than
// crashing the process on) any panic. The reader loop is launched this way
// so a decode bug in one malformed packet doesn't bring down the caller's
// process; it still ends the connection, since the reader can no longer be
// trusted to make progress.
func recoverToLog(log *logging.Logger, f func()) {
	defer func() {
		if x := recover(); x != nil {
			if log != nil {
				log.Error(fmt.Sprintf("panic in jdwp reader: %v", x))
				log.Error(string(debug.Stack()))
			}
		}
	}()
	f()
}
