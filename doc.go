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

// Package jdwp implements the Java Debug Wire Protocol: the typed value and
// command catalog, the binary codec that depends on a per-connection
// ID-size context, and a blocking client that performs the handshake,
// multiplexes requests over a single socket, and fans out events.
//
// It does not open sockets, manage debug-session workflow (breakpoints,
// stepping policy), or pool connections: the caller supplies an
// io.ReadWriteCloser and drives everything above request/reply correlation.
package jdwp
