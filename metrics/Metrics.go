// Copyright 2024-2025 NetCracker Technology Corporation
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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TotalRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bodhi_http_requests_total",
		Help: "Number of requests.",
	},
	[]string{"path", "code", "method"},
)

var HttpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "bodhi_http_request_duration_seconds_historgram",
		Buckets: []float64{
			0.1, // 100 ms
			0.2,
			0.25,
			0.5,
			1,
			1.5,
			3,
			5,
			10,
		},
	},
	[]string{"path", "code", "method"},
)

var UpdateSubmissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bodhi_update_submissions_total",
		Help: "Update submissions by action (new/edit) and result.",
	},
	[]string{"action", "result"},
)

var PipelineRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bodhi_update_pipeline_rejections_total",
		Help: "Update submissions rejected by validation step and error code.",
	},
	[]string{"step", "code"},
)

var UpstreamCallDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bodhi_upstream_call_duration_seconds",
		Help:    "Duration of calls to upstream services including retries.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"service", "method", "result"},
)

var UpdatesCount = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "bodhi_updates_count",
		Help: "Updates count by release and status",
	},
	[]string{"release", "status"},
)

var NotificationsSent = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bodhi_notifications_total",
		Help: "Update changed events by delivery result of the notification sink.",
	},
	[]string{"action", "result"},
)

func RegisterAllPrometheusApplicationMetrics() {
	prometheus.Register(TotalRequests)
	prometheus.Register(HttpDuration)
	prometheus.Register(UpdateSubmissions)
	prometheus.Register(PipelineRejections)
	prometheus.Register(UpstreamCallDuration)
	prometheus.Register(UpdatesCount)
	prometheus.Register(NotificationsSent)
}
