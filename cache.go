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

import lru "github.com/hashicorp/golang-lru"

// DefaultTypeCacheCapacity bounds the number of reference types whose
// Fields/Methods are cached at once, used when Config.TypeCacheCapacity is
// zero. Debuggers tend to revisit the same handful of classes (the one
// being stepped through, its immediate callers) far more than they sweep
// the whole loaded-class set, so a bounded LRU beats an unbounded map both
// in memory and in not serving stale data forever after a class is
// redefined and evicted.
const DefaultTypeCacheCapacity = 256

// typeCache holds per-Connection Fields/Methods lookups, keyed by
// ReferenceTypeID, so that repeated helpers.go lookups (GetClassMethod,
// GetLocationMethodName) don't round-trip to the target VM every time.
type typeCache struct {
	fields  *lru.Cache
	methods *lru.Cache
}

func newTypeCache(capacity int) *typeCache {
	fields, err := lru.New(capacity)
	if err != nil {
		panic(err) // only fails for a non-positive size; Open replaces zero with the default.
	}
	methods, err := lru.New(capacity)
	if err != nil {
		panic(err)
	}
	return &typeCache{fields: fields, methods: methods}
}

// GetFields returns the cached Fields for ty, fetching and caching them on
// a miss.
func (c *Connection) GetFields(ty ReferenceTypeID) (Fields, error) {
	if v, ok := c.cache.fields.Get(ty); ok {
		return v.(Fields), nil
	}
	var res Fields
	if err := c.get(cmdReferenceTypeFields, ty, &res); err != nil {
		return nil, err
	}
	c.cache.fields.Add(ty, res)
	return res, nil
}

// GetMethods returns the cached Methods for ty, fetching and caching them
// on a miss.
func (c *Connection) GetMethods(ty ReferenceTypeID) (Methods, error) {
	if v, ok := c.cache.methods.Get(ty); ok {
		return v.(Methods), nil
	}
	var res Methods
	if err := c.get(cmdReferenceTypeMethods, ty, &res); err != nil {
		return nil, err
	}
	c.cache.methods.Add(ty, res)
	return res, nil
}

// InvalidateType drops any cached Fields/Methods for ty. Call this after a
// class redefinition event for ty.
func (c *Connection) InvalidateType(ty ReferenceTypeID) {
	c.cache.fields.Remove(ty)
	c.cache.methods.Remove(ty)
}
