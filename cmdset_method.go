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

// LineTableEntry maps a range of bytecode indices to a single source line.
type LineTableEntry struct {
	LineCodeIndex uint64
	LineNumber    int32
}

// LineTable describes the bytecode-index-to-source-line mapping of a
// method.
func (c *Connection) LineTable(classTy ReferenceTypeID, method MethodID) (start, end uint64, lines []LineTableEntry, err error) {
	req := struct {
		Class  ReferenceTypeID
		Method MethodID
	}{classTy, method}
	res := struct {
		Start, End uint64
		Lines      []LineTableEntry
	}{}
	err = c.get(cmdMethodTypeLineTable, req, &res)
	return res.Start, res.End, res.Lines, err
}

// VariableTable returns every local variable visible anywhere in the given
// method.
func (c *Connection) VariableTable(classTy ReferenceTypeID, method MethodID) (VariableTable, error) {
	req := struct {
		Class  ReferenceTypeID
		Method MethodID
	}{classTy, method}
	var res VariableTable
	err := c.get(cmdMethodTypeVariableTable, req, &res)
	return res, err
}

// GetBytecodes returns the raw bytecode of the given method.
func (c *Connection) GetBytecodes(classTy ReferenceTypeID, method MethodID) ([]byte, error) {
	req := struct {
		Class  ReferenceTypeID
		Method MethodID
	}{classTy, method}
	var res []byte
	err := c.get(cmdMethodTypeBytecodes, req, &res)
	return res, err
}

// IsObsolete reports whether the given method has been made obsolete by a
// class redefinition.
func (c *Connection) IsObsolete(classTy ReferenceTypeID, method MethodID) (bool, error) {
	req := struct {
		Class  ReferenceTypeID
		Method MethodID
	}{classTy, method}
	var res bool
	err := c.get(cmdMethodTypeIsObsolete, req, &res)
	return res, err
}
