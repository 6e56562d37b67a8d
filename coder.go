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
	"reflect"
	"unicode/utf8"
)

func unbox(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface {
		return v.Elem()
	}
	return v
}

// encode writes the value v to w, using the JDWP encoding scheme: structs
// are flattened field by field, slices get a 32-bit count prefix, and the
// handful of special-cased interface types (Value, EventModifier) get a
// 1-byte tag or kind discriminator ahead of their payload.
func (c *Connection) encode(w *writer, v reflect.Value) error {
	t := v.Type()
	o := v.Interface()
	trace(c.log, "encode %s = %#v", t, o)

	switch t {
	case reflect.TypeOf((*EventModifier)(nil)).Elem():
		w.Uint8(o.(EventModifier).modKind())

	case reflect.TypeOf((*Value)(nil)).Elem():
		switch o.(type) {
		case ArrayID:
			w.Uint8(uint8(TagArray))
		case byte:
			w.Uint8(uint8(TagByte))
		case Char:
			w.Uint8(uint8(TagChar))
		case ObjectID:
			w.Uint8(uint8(TagObject))
		case float32:
			w.Uint8(uint8(TagFloat))
		case float64:
			w.Uint8(uint8(TagDouble))
		case int, int32:
			w.Uint8(uint8(TagInt))
		case int16:
			w.Uint8(uint8(TagShort))
		case int64:
			w.Uint8(uint8(TagLong))
		case nil:
			// Void carries no payload: return immediately rather than
			// falling into the generic encoder below, which would try to
			// dereference the (necessarily nil) interface value.
			w.Uint8(uint8(TagVoid))
			return w.Error()
		case bool:
			w.Uint8(uint8(TagBoolean))
		case StringID:
			w.Uint8(uint8(TagString))
		case ThreadID:
			w.Uint8(uint8(TagThread))
		case ThreadGroupID:
			w.Uint8(uint8(TagThreadGroup))
		case ClassLoaderID:
			w.Uint8(uint8(TagClassLoader))
		case ClassObjectID:
			w.Uint8(uint8(TagClassObject))
		default:
			panic(fmt.Errorf("got Value of type %T", o))
		}
	}

	switch o := o.(type) {
	case ReferenceTypeID, ClassID, InterfaceID, ArrayTypeID, ClassOnlyEventModifier:
		WriteUint(w, c.idSizes.ReferenceTypeIDSize*8, unbox(v).Uint())

	case MethodID:
		WriteUint(w, c.idSizes.MethodIDSize*8, unbox(v).Uint())

	case FieldID:
		WriteUint(w, c.idSizes.FieldIDSize*8, unbox(v).Uint())

	case FrameID:
		WriteUint(w, c.idSizes.FrameIDSize*8, unbox(v).Uint())

	case ObjectID, ThreadID, ThreadGroupID, StringID, ClassLoaderID, ClassObjectID, ArrayID,
		ThreadOnlyEventModifier, InstanceOnlyEventModifier:
		WriteUint(w, c.idSizes.ObjectIDSize*8, unbox(v).Uint())

	case []byte:
		w.Uint32(uint32(len(o)))
		w.Data(o)

	default:
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface:
			return c.encode(w, v.Elem())
		case reflect.String:
			w.Uint32(uint32(v.Len()))
			w.Data([]byte(v.String()))
		case reflect.Uint8:
			w.Uint8(uint8(v.Uint()))
		case reflect.Uint64:
			w.Uint64(v.Uint())
		case reflect.Int8:
			w.Int8(int8(v.Int()))
		case reflect.Int16:
			w.Int16(int16(v.Int()))
		case reflect.Int32, reflect.Int:
			w.Int32(int32(v.Int()))
		case reflect.Int64:
			w.Int64(v.Int())
		case reflect.Float32:
			w.Float32(float32(v.Float()))
		case reflect.Float64:
			w.Float64(v.Float())
		case reflect.Bool:
			w.Bool(v.Bool())
		case reflect.Struct:
			for i, count := 0, v.NumField(); i < count; i++ {
				if err := c.encode(w, v.Field(i)); err != nil {
					return err
				}
			}
		case reflect.Slice:
			count := v.Len()
			w.Uint32(uint32(count))
			for i := 0; i < count; i++ {
				if err := c.encode(w, v.Index(i)); err != nil {
					return err
				}
			}
		default:
			panic(fmt.Errorf("unhandled type %T %v %v", o, t.Name(), t.Kind()))
		}
	}
	return w.Error()
}

// decode reads the value v from r, using the JDWP encoding scheme. See
// encode for the shape it mirrors.
func (c *Connection) decode(r *reader, v reflect.Value) error {
	trace(c.log, "decode %s", v.Type())
	switch v.Type() {
	case reflect.TypeOf((*Event)(nil)).Elem():
		var kind EventKind
		if err := c.decode(r, reflect.ValueOf(&kind).Elem()); err != nil {
			return err
		}
		event := kind.event()
		if event == nil {
			// A composite event record carries no length prefix of its own
			// (see event.go's compositeEvent), so an unrecognized kind can't
			// be skipped in place: the rest of this composite message is
			// undecodable too. The caller (dispatchComposite) drops only
			// this one bundle, not the connection.
			return UnexpectedTagError{Tag: uint8(kind)}
		}
		v.Set(reflect.ValueOf(event))
		v = v.Elem().Elem()

	case reflect.TypeOf((*Value)(nil)).Elem():
		tag := Tag(r.Uint8())
		var ty reflect.Type
		switch tag {
		case TagArray:
			ty = reflect.TypeOf(ArrayID(0))
		case TagByte:
			ty = reflect.TypeOf(byte(0))
		case TagChar:
			ty = reflect.TypeOf(Char(0))
		case TagObject:
			ty = reflect.TypeOf(ObjectID(0))
		case TagFloat:
			ty = reflect.TypeOf(float32(0))
		case TagDouble:
			ty = reflect.TypeOf(float64(0))
		case TagInt:
			ty = reflect.TypeOf(int(0))
		case TagShort:
			ty = reflect.TypeOf(int16(0))
		case TagLong:
			ty = reflect.TypeOf(int64(0))
		case TagBoolean:
			ty = reflect.TypeOf(false)
		case TagString:
			ty = reflect.TypeOf(StringID(0))
		case TagThread:
			ty = reflect.TypeOf(ThreadID(0))
		case TagThreadGroup:
			ty = reflect.TypeOf(ThreadGroupID(0))
		case TagClassLoader:
			ty = reflect.TypeOf(ClassLoaderID(0))
		case TagClassObject:
			ty = reflect.TypeOf(ClassObjectID(0))
		case TagVoid:
			v.Set(reflect.Zero(v.Type()))
			return r.Error()
		default:
			return UnexpectedTagError{Tag: uint8(tag)}
		}
		data := reflect.New(ty).Elem()
		if err := c.decode(r, data); err != nil {
			return err
		}
		v.Set(data)
		return r.Error()

	case reflect.TypeOf(TaggedObjectID{}):
		tag := Tag(r.Uint8())
		switch tag {
		case TagObject, TagThread, TagThreadGroup, TagString, TagClassLoader, TagClassObject, TagArray:
		default:
			if r.Error() == nil {
				return UnexpectedTagError{Tag: uint8(tag)}
			}
		}
		obj := ObjectID(ReadUint(r, c.idSizes.ObjectIDSize*8))
		v.Set(reflect.ValueOf(TaggedObjectID{Type: tag, Object: obj}))
		return r.Error()
	}

	t := v.Type()
	o := v.Interface()
	switch o := o.(type) {
	case ReferenceTypeID, ClassID, InterfaceID, ArrayTypeID:
		v.Set(reflect.ValueOf(ReadUint(r, c.idSizes.ReferenceTypeIDSize*8)).Convert(t))

	case MethodID:
		v.Set(reflect.ValueOf(ReadUint(r, c.idSizes.MethodIDSize*8)).Convert(t))

	case FieldID:
		v.Set(reflect.ValueOf(ReadUint(r, c.idSizes.FieldIDSize*8)).Convert(t))

	case FrameID:
		v.Set(reflect.ValueOf(ReadUint(r, c.idSizes.FrameIDSize*8)).Convert(t))

	case ObjectID, ThreadID, ThreadGroupID, StringID, ClassLoaderID, ClassObjectID, ArrayID:
		v.Set(reflect.ValueOf(ReadUint(r, c.idSizes.ObjectIDSize*8)).Convert(t))

	case EventModifier:
		return fmt.Errorf("cannot decode an EventModifier")

	default:
		switch t.Kind() {
		case reflect.Ptr:
			if v.IsNil() {
				v.Set(reflect.New(t.Elem()))
			}
			return c.decode(r, v.Elem())
		case reflect.Interface:
			return c.decode(r, v.Elem())
		case reflect.String:
			n := r.boundedCount(int(r.Uint32()))
			data := make([]byte, n)
			r.Data(data)
			if r.err == nil && !utf8.Valid(data) {
				r.err = ErrInvalidUTF8
			}
			v.Set(reflect.ValueOf(string(data)).Convert(t))
		case reflect.Bool:
			v.Set(reflect.ValueOf(r.Bool()).Convert(t))
		case reflect.Uint8:
			v.Set(reflect.ValueOf(r.Uint8()).Convert(t))
		case reflect.Uint64:
			v.Set(reflect.ValueOf(r.Uint64()).Convert(t))
		case reflect.Int8:
			v.Set(reflect.ValueOf(r.Int8()).Convert(t))
		case reflect.Int16:
			v.Set(reflect.ValueOf(r.Int16()).Convert(t))
		case reflect.Int32, reflect.Int:
			v.Set(reflect.ValueOf(r.Int32()).Convert(t))
		case reflect.Int64:
			v.Set(reflect.ValueOf(r.Int64()).Convert(t))
		case reflect.Float32:
			v.Set(reflect.ValueOf(r.Float32()).Convert(t))
		case reflect.Float64:
			v.Set(reflect.ValueOf(r.Float64()).Convert(t))
		case reflect.Struct:
			for i, count := 0, v.NumField(); i < count; i++ {
				if err := c.decode(r, v.Field(i)); err != nil {
					return err
				}
			}
		case reflect.Slice:
			count := r.boundedCount(int(r.Uint32()))
			slice := reflect.MakeSlice(t, count, count)
			for i := 0; i < count; i++ {
				if err := c.decode(r, slice.Index(i)); err != nil {
					return err
				}
			}
			v.Set(slice)
		default:
			return fmt.Errorf("unhandled type %T %v %v", o, t.Name(), t.Kind())
		}
	}
	return r.Error()
}
