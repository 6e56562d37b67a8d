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

import "fmt"

// cmdSet is the namespace for a command identifier — JDWP groups commands
// into sets, one per resource kind (VirtualMachine, ReferenceType, ...).
type cmdSet uint8

// cmdID is a command number, scoped to its cmdSet.
type cmdID uint8

const (
	cmdSetVirtualMachine       = cmdSet(1)
	cmdSetReferenceType        = cmdSet(2)
	cmdSetClassType            = cmdSet(3)
	cmdSetArrayType            = cmdSet(4)
	cmdSetInterfaceType        = cmdSet(5)
	cmdSetMethod               = cmdSet(6)
	cmdSetField                = cmdSet(8)
	cmdSetObjectReference      = cmdSet(9)
	cmdSetStringReference      = cmdSet(10)
	cmdSetThreadReference      = cmdSet(11)
	cmdSetThreadGroupReference = cmdSet(12)
	cmdSetArrayReference       = cmdSet(13)
	cmdSetClassLoaderReference = cmdSet(14)
	cmdSetEventRequest         = cmdSet(15)
	cmdSetStackFrame           = cmdSet(16)
	cmdSetClassObjectReference = cmdSet(17)
	cmdSetEvent                = cmdSet(64)
)

// cmd names a single wire command: its set and its id within that set.
type cmd struct {
	set cmdSet
	id  cmdID
}

func (c cmd) String() string { return fmt.Sprintf("%d/%d", c.set, c.id) }

// The full JDWP command catalog. Every command the protocol defines is
// named here, whether or not a typed Connection method wraps it yet —
// untyped entries remain reachable via the low-level get call, and
// exist so the set is complete for anyone extending the client.
//
// These are vars, not consts: cmd is a struct, and Go doesn't allow
// struct-typed constants.
var (
	cmdVirtualMachineVersion               = cmd{cmdSetVirtualMachine, 1}
	cmdVirtualMachineClassesBySignature     = cmd{cmdSetVirtualMachine, 2}
	cmdVirtualMachineAllClasses             = cmd{cmdSetVirtualMachine, 3}
	cmdVirtualMachineAllThreads             = cmd{cmdSetVirtualMachine, 4}
	cmdVirtualMachineTopLevelThreadGroups   = cmd{cmdSetVirtualMachine, 5}
	cmdVirtualMachineDispose                = cmd{cmdSetVirtualMachine, 6}
	cmdVirtualMachineIDSizes                = cmd{cmdSetVirtualMachine, 7}
	cmdVirtualMachineSuspend                = cmd{cmdSetVirtualMachine, 8}
	cmdVirtualMachineResume                 = cmd{cmdSetVirtualMachine, 9}
	cmdVirtualMachineExit                   = cmd{cmdSetVirtualMachine, 10}
	cmdVirtualMachineCreateString           = cmd{cmdSetVirtualMachine, 11}
	cmdVirtualMachineCapabilities           = cmd{cmdSetVirtualMachine, 12}
	cmdVirtualMachineClassPaths             = cmd{cmdSetVirtualMachine, 13}
	cmdVirtualMachineDisposeObjects         = cmd{cmdSetVirtualMachine, 14}
	cmdVirtualMachineHoldEvents             = cmd{cmdSetVirtualMachine, 15}
	cmdVirtualMachineReleaseEvents          = cmd{cmdSetVirtualMachine, 16}
	cmdVirtualMachineCapabilitiesNew        = cmd{cmdSetVirtualMachine, 17}
	cmdVirtualMachineRedefineClasses        = cmd{cmdSetVirtualMachine, 18}
	cmdVirtualMachineSetDefaultStratum      = cmd{cmdSetVirtualMachine, 19}
	cmdVirtualMachineAllClassesWithGeneric  = cmd{cmdSetVirtualMachine, 20}
	cmdVirtualMachineInstanceCounts         = cmd{cmdSetVirtualMachine, 21}

	cmdReferenceTypeSignature           = cmd{cmdSetReferenceType, 1}
	cmdReferenceTypeClassLoader         = cmd{cmdSetReferenceType, 2}
	cmdReferenceTypeModifiers           = cmd{cmdSetReferenceType, 3}
	cmdReferenceTypeFields              = cmd{cmdSetReferenceType, 4}
	cmdReferenceTypeMethods             = cmd{cmdSetReferenceType, 5}
	cmdReferenceTypeGetValues           = cmd{cmdSetReferenceType, 6}
	cmdReferenceTypeSourceFile          = cmd{cmdSetReferenceType, 7}
	cmdReferenceTypeNestedTypes         = cmd{cmdSetReferenceType, 8}
	cmdReferenceTypeStatus              = cmd{cmdSetReferenceType, 9}
	cmdReferenceTypeInterfaces          = cmd{cmdSetReferenceType, 10}
	cmdReferenceTypeClassObject         = cmd{cmdSetReferenceType, 11}
	cmdReferenceTypeSourceDebugExtension = cmd{cmdSetReferenceType, 12}
	cmdReferenceTypeSignatureWithGeneric = cmd{cmdSetReferenceType, 13}
	cmdReferenceTypeFieldsWithGeneric    = cmd{cmdSetReferenceType, 14}
	cmdReferenceTypeMethodsWithGeneric   = cmd{cmdSetReferenceType, 15}
	cmdReferenceTypeInstances            = cmd{cmdSetReferenceType, 16}
	cmdReferenceTypeClassFileVersion     = cmd{cmdSetReferenceType, 17}
	cmdReferenceTypeConstantPool         = cmd{cmdSetReferenceType, 18}

	cmdClassTypeSuperclass    = cmd{cmdSetClassType, 1}
	cmdClassTypeSetValues     = cmd{cmdSetClassType, 2}
	cmdClassTypeInvokeMethod  = cmd{cmdSetClassType, 3}
	cmdClassTypeNewInstance   = cmd{cmdSetClassType, 4}

	cmdArrayTypeNewInstance = cmd{cmdSetArrayType, 1}

	cmdInterfaceTypeInvokeMethod = cmd{cmdSetInterfaceType, 1}

	cmdMethodTypeLineTable             = cmd{cmdSetMethod, 1}
	cmdMethodTypeVariableTable         = cmd{cmdSetMethod, 2}
	cmdMethodTypeBytecodes             = cmd{cmdSetMethod, 3}
	cmdMethodTypeIsObsolete            = cmd{cmdSetMethod, 4}
	cmdMethodTypeVariableTableWithGeneric = cmd{cmdSetMethod, 5}

	cmdObjectReferenceReferenceType     = cmd{cmdSetObjectReference, 1}
	cmdObjectReferenceGetValues         = cmd{cmdSetObjectReference, 2}
	cmdObjectReferenceSetValues         = cmd{cmdSetObjectReference, 3}
	cmdObjectReferenceMonitorInfo       = cmd{cmdSetObjectReference, 5}
	cmdObjectReferenceInvokeMethod      = cmd{cmdSetObjectReference, 6}
	cmdObjectReferenceDisableCollection = cmd{cmdSetObjectReference, 7}
	cmdObjectReferenceEnableCollection  = cmd{cmdSetObjectReference, 8}
	cmdObjectReferenceIsCollected       = cmd{cmdSetObjectReference, 9}
	cmdObjectReferenceReferringObjects  = cmd{cmdSetObjectReference, 10}

	cmdStringReferenceValue = cmd{cmdSetStringReference, 1}

	cmdThreadReferenceName                  = cmd{cmdSetThreadReference, 1}
	cmdThreadReferenceSuspend                = cmd{cmdSetThreadReference, 2}
	cmdThreadReferenceResume                 = cmd{cmdSetThreadReference, 3}
	cmdThreadReferenceStatus                 = cmd{cmdSetThreadReference, 4}
	cmdThreadReferenceThreadGroup            = cmd{cmdSetThreadReference, 5}
	cmdThreadReferenceFrames                 = cmd{cmdSetThreadReference, 6}
	cmdThreadReferenceFrameCount             = cmd{cmdSetThreadReference, 7}
	cmdThreadReferenceOwnedMonitors           = cmd{cmdSetThreadReference, 8}
	cmdThreadReferenceCurrentContendedMonitor = cmd{cmdSetThreadReference, 9}
	cmdThreadReferenceStop                   = cmd{cmdSetThreadReference, 10}
	cmdThreadReferenceInterrupt              = cmd{cmdSetThreadReference, 11}
	cmdThreadReferenceSuspendCount           = cmd{cmdSetThreadReference, 12}
	cmdThreadReferenceOwnedMonitorsStackDepthInfo = cmd{cmdSetThreadReference, 13}
	cmdThreadReferenceForceEarlyReturn        = cmd{cmdSetThreadReference, 14}

	cmdThreadGroupReferenceName     = cmd{cmdSetThreadGroupReference, 1}
	cmdThreadGroupReferenceParent   = cmd{cmdSetThreadGroupReference, 2}
	cmdThreadGroupReferenceChildren = cmd{cmdSetThreadGroupReference, 3}

	cmdArrayReferenceLength    = cmd{cmdSetArrayReference, 1}
	cmdArrayReferenceGetValues = cmd{cmdSetArrayReference, 2}
	cmdArrayReferenceSetValues = cmd{cmdSetArrayReference, 3}

	cmdClassLoaderReferenceVisibleClasses = cmd{cmdSetClassLoaderReference, 1}

	cmdEventRequestSet   = cmd{cmdSetEventRequest, 1}
	cmdEventRequestClear = cmd{cmdSetEventRequest, 2}
	cmdEventRequestClearAllBreakpoints = cmd{cmdSetEventRequest, 3}

	cmdStackFrameGetValues  = cmd{cmdSetStackFrame, 1}
	cmdStackFrameSetValues  = cmd{cmdSetStackFrame, 2}
	cmdStackFrameThisObject = cmd{cmdSetStackFrame, 3}
	cmdStackFramePopFrames  = cmd{cmdSetStackFrame, 4}

	cmdClassObjectReferenceReflectedType = cmd{cmdSetClassObjectReference, 1}

	cmdEventComposite = cmd{cmdSetEvent, 100}
)

// catalogEntry names a single command and notes whether it may legally be
// sent before the connection's IDSizes has been negotiated (only
// VirtualMachine.IDSizes itself, and the handshake-adjacent Version call,
// qualify).
type catalogEntry struct {
	name         string
	needsIDSizes bool
}

// catalog is the declarative command table: every cmd this package knows
// about, with a human-readable name for logging and errors and a flag
// send() consults to produce ErrNotReady for anything but the bootstrap
// commands when called before Open has finished negotiating ID sizes.
var catalog = map[cmd]catalogEntry{
	cmdVirtualMachineVersion:              {"VirtualMachine.Version", false},
	cmdVirtualMachineClassesBySignature:    {"VirtualMachine.ClassesBySignature", true},
	cmdVirtualMachineAllClasses:            {"VirtualMachine.AllClasses", true},
	cmdVirtualMachineAllThreads:            {"VirtualMachine.AllThreads", true},
	cmdVirtualMachineTopLevelThreadGroups:  {"VirtualMachine.TopLevelThreadGroups", true},
	cmdVirtualMachineDispose:               {"VirtualMachine.Dispose", true},
	cmdVirtualMachineIDSizes:               {"VirtualMachine.IDSizes", false},
	cmdVirtualMachineSuspend:               {"VirtualMachine.Suspend", true},
	cmdVirtualMachineResume:                {"VirtualMachine.Resume", true},
	cmdVirtualMachineExit:                  {"VirtualMachine.Exit", true},
	cmdVirtualMachineCreateString:          {"VirtualMachine.CreateString", true},
	cmdVirtualMachineCapabilities:          {"VirtualMachine.Capabilities", true},
	cmdVirtualMachineClassPaths:            {"VirtualMachine.ClassPaths", true},
	cmdVirtualMachineDisposeObjects:        {"VirtualMachine.DisposeObjects", true},
	cmdVirtualMachineHoldEvents:            {"VirtualMachine.HoldEvents", true},
	cmdVirtualMachineReleaseEvents:         {"VirtualMachine.ReleaseEvents", true},
	cmdVirtualMachineCapabilitiesNew:       {"VirtualMachine.CapabilitiesNew", true},
	cmdVirtualMachineRedefineClasses:       {"VirtualMachine.RedefineClasses", true},
	cmdVirtualMachineSetDefaultStratum:     {"VirtualMachine.SetDefaultStratum", true},
	cmdVirtualMachineAllClassesWithGeneric: {"VirtualMachine.AllClassesWithGeneric", true},
	cmdVirtualMachineInstanceCounts:        {"VirtualMachine.InstanceCounts", true},

	cmdReferenceTypeSignature:            {"ReferenceType.Signature", true},
	cmdReferenceTypeClassLoader:          {"ReferenceType.ClassLoader", true},
	cmdReferenceTypeModifiers:            {"ReferenceType.Modifiers", true},
	cmdReferenceTypeFields:               {"ReferenceType.Fields", true},
	cmdReferenceTypeMethods:              {"ReferenceType.Methods", true},
	cmdReferenceTypeGetValues:            {"ReferenceType.GetValues", true},
	cmdReferenceTypeSourceFile:           {"ReferenceType.SourceFile", true},
	cmdReferenceTypeNestedTypes:          {"ReferenceType.NestedTypes", true},
	cmdReferenceTypeStatus:               {"ReferenceType.Status", true},
	cmdReferenceTypeInterfaces:           {"ReferenceType.Interfaces", true},
	cmdReferenceTypeClassObject:          {"ReferenceType.ClassObject", true},
	cmdReferenceTypeSourceDebugExtension: {"ReferenceType.SourceDebugExtension", true},
	cmdReferenceTypeSignatureWithGeneric:  {"ReferenceType.SignatureWithGeneric", true},
	cmdReferenceTypeFieldsWithGeneric:     {"ReferenceType.FieldsWithGeneric", true},
	cmdReferenceTypeMethodsWithGeneric:    {"ReferenceType.MethodsWithGeneric", true},
	cmdReferenceTypeInstances:             {"ReferenceType.Instances", true},
	cmdReferenceTypeClassFileVersion:      {"ReferenceType.ClassFileVersion", true},
	cmdReferenceTypeConstantPool:          {"ReferenceType.ConstantPool", true},

	cmdClassTypeSuperclass:   {"ClassType.Superclass", true},
	cmdClassTypeSetValues:    {"ClassType.SetValues", true},
	cmdClassTypeInvokeMethod: {"ClassType.InvokeMethod", true},
	cmdClassTypeNewInstance:  {"ClassType.NewInstance", true},

	cmdArrayTypeNewInstance: {"ArrayType.NewInstance", true},

	cmdInterfaceTypeInvokeMethod: {"InterfaceType.InvokeMethod", true},

	cmdMethodTypeLineTable:               {"Method.LineTable", true},
	cmdMethodTypeVariableTable:           {"Method.VariableTable", true},
	cmdMethodTypeBytecodes:               {"Method.Bytecodes", true},
	cmdMethodTypeIsObsolete:              {"Method.IsObsolete", true},
	cmdMethodTypeVariableTableWithGeneric: {"Method.VariableTableWithGeneric", true},

	cmdObjectReferenceReferenceType:     {"ObjectReference.ReferenceType", true},
	cmdObjectReferenceGetValues:         {"ObjectReference.GetValues", true},
	cmdObjectReferenceSetValues:         {"ObjectReference.SetValues", true},
	cmdObjectReferenceMonitorInfo:       {"ObjectReference.MonitorInfo", true},
	cmdObjectReferenceInvokeMethod:      {"ObjectReference.InvokeMethod", true},
	cmdObjectReferenceDisableCollection: {"ObjectReference.DisableCollection", true},
	cmdObjectReferenceEnableCollection:  {"ObjectReference.EnableCollection", true},
	cmdObjectReferenceIsCollected:       {"ObjectReference.IsCollected", true},
	cmdObjectReferenceReferringObjects:  {"ObjectReference.ReferringObjects", true},

	cmdStringReferenceValue: {"StringReference.Value", true},

	cmdThreadReferenceName:                        {"ThreadReference.Name", true},
	cmdThreadReferenceSuspend:                      {"ThreadReference.Suspend", true},
	cmdThreadReferenceResume:                       {"ThreadReference.Resume", true},
	cmdThreadReferenceStatus:                       {"ThreadReference.Status", true},
	cmdThreadReferenceThreadGroup:                  {"ThreadReference.ThreadGroup", true},
	cmdThreadReferenceFrames:                       {"ThreadReference.Frames", true},
	cmdThreadReferenceFrameCount:                   {"ThreadReference.FrameCount", true},
	cmdThreadReferenceOwnedMonitors:                {"ThreadReference.OwnedMonitors", true},
	cmdThreadReferenceCurrentContendedMonitor:      {"ThreadReference.CurrentContendedMonitor", true},
	cmdThreadReferenceStop:                         {"ThreadReference.Stop", true},
	cmdThreadReferenceInterrupt:                    {"ThreadReference.Interrupt", true},
	cmdThreadReferenceSuspendCount:                 {"ThreadReference.SuspendCount", true},
	cmdThreadReferenceOwnedMonitorsStackDepthInfo:  {"ThreadReference.OwnedMonitorsStackDepthInfo", true},
	cmdThreadReferenceForceEarlyReturn:             {"ThreadReference.ForceEarlyReturn", true},

	cmdThreadGroupReferenceName:     {"ThreadGroupReference.Name", true},
	cmdThreadGroupReferenceParent:   {"ThreadGroupReference.Parent", true},
	cmdThreadGroupReferenceChildren: {"ThreadGroupReference.Children", true},

	cmdArrayReferenceLength:    {"ArrayReference.Length", true},
	cmdArrayReferenceGetValues: {"ArrayReference.GetValues", true},
	cmdArrayReferenceSetValues: {"ArrayReference.SetValues", true},

	cmdClassLoaderReferenceVisibleClasses: {"ClassLoaderReference.VisibleClasses", true},

	cmdEventRequestSet:                 {"EventRequest.Set", true},
	cmdEventRequestClear:               {"EventRequest.Clear", true},
	cmdEventRequestClearAllBreakpoints: {"EventRequest.ClearAllBreakpoints", true},

	cmdStackFrameGetValues:  {"StackFrame.GetValues", true},
	cmdStackFrameSetValues:  {"StackFrame.SetValues", true},
	cmdStackFrameThisObject: {"StackFrame.ThisObject", true},
	cmdStackFramePopFrames:  {"StackFrame.PopFrames", true},

	cmdClassObjectReferenceReflectedType: {"ClassObjectReference.ReflectedType", true},

	cmdEventComposite: {"Event.Composite", true},
}

// name returns the catalog name for c, or its numeric form if c isn't in
// the catalog (shouldn't happen for any cmd this package constructs itself).
func (c cmd) name() string {
	if e, ok := catalog[c]; ok {
		return e.name
	}
	return c.String()
}
