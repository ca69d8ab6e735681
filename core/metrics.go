// Copyright 2015-2018 trivago N.V.
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

package core

import (
	"fmt"

	metrics "github.com/rcrowley/go-metrics"
)

const (
	metricFaultsName = "Faults"
	metricTasksName  = "Tasks"
)

const (
	metricAllocatorAllocations  = "Allocator:%s:Allocations"
	metricAllocatorFrees        = "Allocator:%s:Frees"
	metricAllocatorLiveBuffers  = "Allocator:%s:LiveBuffers"
	metricAllocatorLiveElements = "Allocator:%s:LiveElements"
)

// MetricsRegistry holds all runtime metrics. The registry is exported by the
// host process, e.g. through prometheus.
var MetricsRegistry = metrics.NewRegistry()

var (
	metricFaults = metrics.NewCounter()
	metricTasks  = metrics.NewCounter()
)

func init() {
	MetricsRegistry.Register(metricFaultsName, metricFaults)
	MetricsRegistry.Register(metricTasksName, metricTasks)
}

// allocatorMetric bundles the metrics of a single allocator.
type allocatorMetric struct {
	allocations  metrics.Counter
	frees        metrics.Counter
	liveBuffers  metrics.Gauge
	liveElements metrics.Gauge
}

func newAllocatorMetric(name string) allocatorMetric {
	return allocatorMetric{
		allocations:  metrics.GetOrRegisterCounter(fmt.Sprintf(metricAllocatorAllocations, name), MetricsRegistry),
		frees:        metrics.GetOrRegisterCounter(fmt.Sprintf(metricAllocatorFrees, name), MetricsRegistry),
		liveBuffers:  metrics.GetOrRegisterGauge(fmt.Sprintf(metricAllocatorLiveBuffers, name), MetricsRegistry),
		liveElements: metrics.GetOrRegisterGauge(fmt.Sprintf(metricAllocatorLiveElements, name), MetricsRegistry),
	}
}
