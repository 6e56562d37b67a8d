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

// ObjectType describes the concrete, runtime type of an object.
type ObjectType struct {
	Kind TypeTag
	Type ReferenceTypeID
}

// GetObjectType returns the runtime type of the specified object.
func (c *Connection) GetObjectType(object ObjectID) (ObjectType, error) {
	var res ObjectType
	err := c.get(cmdObjectReferenceReferenceType, object, &res)
	return res, err
}

// GetFieldValues returns the values of the requested instance fields.
func (c *Connection) GetFieldValues(obj ObjectID, fields ...FieldID) ([]Value, error) {
	req := struct {
		Obj    ObjectID
		Fields []FieldID
	}{obj, fields}
	var res []Value
	err := c.get(cmdObjectReferenceGetValues, req, &res)
	return res, err
}

// SetFieldValues sets the values of the given instance fields.
func (c *Connection) SetFieldValues(obj ObjectID, values map[FieldID]Value) error {
	type entry struct {
		Field FieldID
		Value Value
	}
	entries := make([]entry, 0, len(values))
	for f, v := range values {
		entries = append(entries, entry{f, v})
	}
	req := struct {
		Object ObjectID
		Values []entry
	}{obj, entries}
	return c.get(cmdObjectReferenceSetValues, req, nil)
}

// MonitorInfo describes an object monitor's owning thread and waiters.
type MonitorInfo struct {
	Owner    ThreadID
	Entries  int32
	Waiters  []ThreadID
}

// GetMonitorInfo returns monitor ownership information for the specified
// object.
func (c *Connection) GetMonitorInfo(obj ObjectID) (MonitorInfo, error) {
	var res MonitorInfo
	err := c.get(cmdObjectReferenceMonitorInfo, obj, &res)
	return res, err
}

// InvokeMethod invokes the specified instance method, dispatching virtually
// unless options.NonVirtual is set.
func (c *Connection) InvokeMethod(object ObjectID, class ClassID, method MethodID, thread ThreadID, options InvokeOptions, args ...Value) (InvokeResult, error) {
	req := struct {
		Object  ObjectID
		Thread  ThreadID
		Class   ClassID
		Method  MethodID
		Args    []Value
		Options InvokeOptions
	}{object, thread, class, method, args, options}
	var res InvokeResult
	err := c.get(cmdObjectReferenceInvokeMethod, req, &res)
	return res, err
}

// DisableGC prevents the target VM from garbage collecting the specified
// object until EnableGC is called.
func (c *Connection) DisableGC(object ObjectID) error {
	return c.get(cmdObjectReferenceDisableCollection, object, nil)
}

// EnableGC re-allows garbage collection of the specified object.
func (c *Connection) EnableGC(object ObjectID) error {
	return c.get(cmdObjectReferenceEnableCollection, object, nil)
}

// IsCollected reports whether the specified object has been garbage
// collected.
func (c *Connection) IsCollected(object ObjectID) (bool, error) {
	var res bool
	err := c.get(cmdObjectReferenceIsCollected, object, &res)
	return res, err
}

// GetReferringObjects returns up to maxReferrers objects that directly
// reference the specified object. A maxReferrers of 0 requests all of them.
func (c *Connection) GetReferringObjects(object ObjectID, maxReferrers int32) ([]TaggedObjectID, error) {
	req := struct {
		Object       ObjectID
		MaxReferrers int32
	}{object, maxReferrers}
	var res []TaggedObjectID
	err := c.get(cmdObjectReferenceReferringObjects, req, &res)
	return res, err
}
