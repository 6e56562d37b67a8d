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
	"context"
	"fmt"
)

// GetClassBySignature returns the single loaded class matching signature.
// It is an error for zero or more than one class to match.
func (c *Connection) GetClassBySignature(signature string) (ClassInfo, error) {
	classes, err := c.GetClassesBySignature(signature)
	if err != nil {
		return ClassInfo{}, err
	}
	if len(classes) != 1 {
		return ClassInfo{}, fmt.Errorf("%d classes found with signature %q", len(classes), signature)
	}
	return classes[0], nil
}

// GetLocationMethodName returns the name of the method a location lies in.
func (c *Connection) GetLocationMethodName(l Location) (string, error) {
	methods, err := c.GetMethods(ReferenceTypeID(l.Class))
	if err != nil {
		return "", err
	}
	method := methods.FindByID(l.Method)
	if method == nil {
		return "", fmt.Errorf("method not found with ID %v", l.Method)
	}
	return method.Name, nil
}

// GetClassMethod looks up the method with the given name and signature on
// class.
func (c *Connection) GetClassMethod(class ClassID, name, signature string) (Method, error) {
	methods, err := c.GetMethods(ReferenceTypeID(class))
	if err != nil {
		return Method{}, err
	}
	method := methods.FindBySignature(name, signature)
	if method == nil {
		return Method{}, fmt.Errorf("method %s%s not found", name, signature)
	}
	return *method, nil
}

// WaitForClassPrepare blocks until a class whose name matches pattern is
// prepared, returning the thread that prepared it. Every thread is left
// suspended when this returns, per the SuspendAll policy it requests.
func (c *Connection) WaitForClassPrepare(ctx context.Context, pattern string) (ThreadID, error) {
	var out ThreadID
	onEvent := func(ev Event) bool {
		out = ev.(*EventClassPrepare).Thread
		return false
	}
	err := c.WatchEvents(ctx, ClassPrepare, SuspendAll, onEvent, ClassMatchEventModifier(pattern))
	return out, err
}

// WaitForMethodEntry blocks until the given method of class is entered,
// returning the entry event. Every thread is left suspended when this
// returns.
func (c *Connection) WaitForMethodEntry(ctx context.Context, class ClassID, method MethodID) (*EventMethodEntry, error) {
	var out *EventMethodEntry
	onEvent := func(ev Event) bool {
		e := ev.(*EventMethodEntry)
		if e.Location.Method == method {
			out = e
			return false
		}
		c.Resume()
		return true
	}
	err := c.WatchEvents(ctx, MethodEntry, SuspendAll, onEvent, ClassOnlyEventModifier(class))
	return out, err
}
