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

// GetTypeSignature returns the JNI type signature for the specified type.
// GetFields and GetMethods live in cache.go: they share an LRU keyed by
// ReferenceTypeID rather than hitting the wire on every lookup.
func (c *Connection) GetTypeSignature(ty ReferenceTypeID) (string, error) {
	var res string
	err := c.get(cmdReferenceTypeSignature, ty, &res)
	return res, err
}

// GetClassLoader returns the class loader of the specified type.
func (c *Connection) GetClassLoader(ty ReferenceTypeID) (ClassLoaderID, error) {
	var res ClassLoaderID
	err := c.get(cmdReferenceTypeClassLoader, ty, &res)
	return res, err
}

// GetModifiers returns the JVM access modifier bits of the specified type.
func (c *Connection) GetModifiers(ty ReferenceTypeID) (ModBits, error) {
	var res ModBits
	err := c.get(cmdReferenceTypeModifiers, ty, &res)
	return res, err
}

// GetStaticFieldValues returns the values of the requested static fields.
func (c *Connection) GetStaticFieldValues(ty ReferenceTypeID, fields ...FieldID) ([]Value, error) {
	var res []Value
	req := struct {
		Ty     ReferenceTypeID
		Fields []FieldID
	}{ty, fields}
	err := c.get(cmdReferenceTypeGetValues, req, &res)
	return res, err
}

// GetSourceFile returns the name of the source file the type was compiled
// from.
func (c *Connection) GetSourceFile(ty ReferenceTypeID) (string, error) {
	var res string
	err := c.get(cmdReferenceTypeSourceFile, ty, &res)
	return res, err
}

// GetNestedTypes returns the types directly nested inside the specified
// type.
func (c *Connection) GetNestedTypes(ty ReferenceTypeID) ([]ClassInfo, error) {
	var res []ClassInfo
	err := c.get(cmdReferenceTypeNestedTypes, ty, &res)
	return res, err
}

// GetClassStatus returns the current status of the specified class.
func (c *Connection) GetClassStatus(ty ReferenceTypeID) (ClassStatus, error) {
	var res ClassStatus
	err := c.get(cmdReferenceTypeStatus, ty, &res)
	return res, err
}

// GetImplemented returns the interfaces directly implemented by the
// specified type.
func (c *Connection) GetImplemented(ty ReferenceTypeID) ([]InterfaceID, error) {
	var res []InterfaceID
	err := c.get(cmdReferenceTypeInterfaces, ty, &res)
	return res, err
}

// GetClassObject returns the java.lang.Class object for the specified type.
func (c *Connection) GetClassObject(ty ReferenceTypeID) (ClassObjectID, error) {
	var res ClassObjectID
	err := c.get(cmdReferenceTypeClassObject, ty, &res)
	return res, err
}

// GetSourceDebugExtension returns the JSR-45 source debug extension
// attribute of the specified type.
func (c *Connection) GetSourceDebugExtension(ty ReferenceTypeID) (string, error) {
	var res string
	err := c.get(cmdReferenceTypeSourceDebugExtension, ty, &res)
	return res, err
}

// GetClassFileVersion returns the major/minor class file version the
// specified type was compiled to.
func (c *Connection) GetClassFileVersion(ty ReferenceTypeID) (major, minor int32, err error) {
	res := struct{ Major, Minor int32 }{}
	err = c.get(cmdReferenceTypeClassFileVersion, ty, &res)
	return res.Major, res.Minor, err
}

// GetConstantPool returns the raw constant pool of the specified type.
func (c *Connection) GetConstantPool(ty ReferenceTypeID) (count int32, bytes []byte, err error) {
	res := struct {
		Count int32
		Bytes []byte
	}{}
	err = c.get(cmdReferenceTypeConstantPool, ty, &res)
	return res.Count, res.Bytes, err
}
