// Copyright 2025 KrakLabs
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
//
// SPDX-License-Identifier: Apache-2.0

package syntax

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// parserMetrics holds Prometheus metrics for the syntax subsystem, following
// the teacher's pkg/ingestion/metrics.go shape (lazily-registered counters
// and histograms, safe to construct repeatedly in tests).
type parserMetrics struct {
	filesParsed   *prometheus.CounterVec
	parseErrors   *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
}

func newParserMetrics() *parserMetrics {
	buckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
	return &parserMetrics{
		filesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "codegraph_syntax_files_parsed_total",
			Help: "Files parsed, by language.",
		}, []string{"language"}),
		parseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "codegraph_syntax_parse_errors_total",
			Help: "Files parsed with recovered syntax errors, by language.",
		}, []string{"language"}),
		parseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "codegraph_syntax_parse_seconds",
			Help:    "Per-file parse duration, by language.",
			Buckets: buckets,
		}, []string{"language"}),
	}
}

// Register adds all syntax metrics to reg. Safe to call once per registry.
func (m *parserMetrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.filesParsed, m.parseErrors, m.parseDuration)
}

type parseTimer struct {
	metrics *parserMetrics
	start   time.Time
}

func (m *parserMetrics) startParse() parseTimer {
	return parseTimer{metrics: m, start: time.Now()}
}

func (t parseTimer) observe(language string) {
	if language == "" {
		return
	}
	t.metrics.filesParsed.WithLabelValues(language).Inc()
	t.metrics.parseDuration.WithLabelValues(language).Observe(time.Since(t.start).Seconds())
}

func (m *parserMetrics) recordParseError(language string) {
	m.parseErrors.WithLabelValues(language).Inc()
}
