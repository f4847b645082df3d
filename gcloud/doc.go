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

// Package gcloud holds the Google Cloud-specific pieces of the logging
// stack: detection of managed hosting environments (Cloud Run, Cloud
// Functions, App Engine), the X-Cloud-Trace-Context header parser, and the
// reserved structured-log keys the platform recognizes for trace
// correlation.
//
// The [Probe] is the single point of environment access:
//
//	probe := gcloud.NewProbe()
//	if name, ok := probe.ServiceName(); ok {
//	    logger := logging.MustNew(logging.WithName(name))
//	    // ...
//	}
package gcloud
