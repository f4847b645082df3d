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

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// pipelineMetrics are the Prometheus instruments for one logger, registered
// once at construction via [WithMetrics].
type pipelineMetrics struct {
	emitted        *prometheus.CounterVec
	redactedLeaves prometheus.Counter
	failures       prometheus.Counter
}

// newPipelineMetrics registers the pipeline instruments with reg.
func newPipelineMetrics(reg prometheus.Registerer) *pipelineMetrics {
	factory := promauto.With(reg)

	return &pipelineMetrics{
		emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logging",
			Name:      "records_emitted_total",
			Help:      "Records emitted to the sink, by severity.",
		}, []string{"level"}),
		redactedLeaves: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "logging",
			Name:      "redacted_leaves_total",
			Help:      "Leaf values replaced by the path redactor.",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "logging",
			Name:      "pipeline_failures_total",
			Help:      "Emissions that failed in serialization or the sink write.",
		}),
	}
}
