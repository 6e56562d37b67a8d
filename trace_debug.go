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

//go:build debug

package jdwp

import "github.com/op/go-logging"

// trace logs a verbose encode/decode message at DEBUG level, mirroring
// gapid's coder.go const debug = false switch but as a build tag instead of
// a recompile-every-time constant. Only built with -tags debug.
func trace(log *logging.Logger, format string, args ...interface{}) {
	if log != nil {
		log.Debugf(format, args...)
	}
}
