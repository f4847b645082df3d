// Copyright 2025 Valora Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

// Fields is a mapping of caller-supplied field names to arbitrary values,
// merged into a record before the protocol fields are added.
type Fields map[string]any

// Record is one structured log entry. Every record carries the protocol
// fields (v, level, name, hostname, pid, time, msg) plus zero or more
// caller-supplied fields. A record is created fresh per emission, transformed
// exactly once by the redaction pipeline, and discarded after the sink write.
type Record map[string]any

// RecordVersion is the value of the "v" protocol field.
const RecordVersion = 0

// TimeLayout is the ISO-8601 millisecond layout of the "time" protocol field.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Protocol field names. These belong to the logging engine's wire contract;
// they are written after caller fields so callers can never override them.
const (
	FieldVersion  = "v"
	FieldLevel    = "level"
	FieldName     = "name"
	FieldHostname = "hostname"
	FieldPID      = "pid"
	FieldTime     = "time"
	FieldMessage  = "msg"
)

var protocolFields = map[string]struct{}{
	FieldVersion:  {},
	FieldLevel:    {},
	FieldName:     {},
	FieldHostname: {},
	FieldPID:      {},
	FieldTime:     {},
	FieldMessage:  {},
}

// redactionExempt holds the protocol fields the redaction pipeline sets
// aside. msg is absent on purpose: the message is caller-supplied text and
// travels through the global replace and path redaction like any other
// field.
var redactionExempt = map[string]struct{}{
	FieldVersion:  {},
	FieldLevel:    {},
	FieldName:     {},
	FieldHostname: {},
	FieldPID:      {},
	FieldTime:     {},
}

// IsProtocolField reports whether name is owned by the wire contract.
func IsProtocolField(name string) bool {
	_, ok := protocolFields[name]
	return ok
}

// IsRedactionExempt reports whether name is a protocol field the redaction
// pipeline leaves untouched. Every protocol field except msg is exempt.
func IsRedactionExempt(name string) bool {
	_, ok := redactionExempt[name]
	return ok
}
