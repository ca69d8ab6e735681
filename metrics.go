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

package main

import (
	"context"
	"net/http"
	"time"

	pm "github.com/CrowdStrike/go-metrics-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
	"github.com/trivago/slabrt/core"
)

const (
	metricsNamespace = "slabrt"
	metricsPath      = "/prometheus"
	metricsInterval  = time.Second
)

func init() {
	metrics.RegisterRuntimeMemStats(core.MetricsRegistry)
}

// newMetricsHandler serves all metrics collected by registry and the health
// endpoints.
func newMetricsHandler(registry *prometheus.Registry) http.Handler {
	opts := promhttp.HandlerOpts{
		ErrorLog:      logrus.StandardLogger(),
		ErrorHandling: promhttp.ContinueOnError,
	}
	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(registry, opts))
	addHealthEndpoints(mux)
	return mux
}

// updateMetrics copies the current runtime metrics into the prometheus
// registry.
func updateMetrics(client *pm.PrometheusConfig) {
	metrics.CaptureRuntimeMemStatsOnce(core.MetricsRegistry)
	client.UpdatePrometheusMetricsOnce()
}

// startMetricsService exports core.MetricsRegistry on address. The returned
// function stops the service.
func startMetricsService(address string) func() {
	registry := prometheus.NewRegistry()
	client := pm.NewPrometheusProvider(core.MetricsRegistry, metricsNamespace, "", registry, 0)
	srv := &http.Server{
		Addr:    address,
		Handler: newMetricsHandler(registry),
	}
	quit := make(chan struct{})

	// Start updates
	go func() {
		for {
			select {
			case <-time.After(metricsInterval):
				updateMetrics(client)
			case <-quit:
				return
			}
		}
	}()

	// Start http
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Failed to start metrics http server")
		}
	}()

	logrus.WithField("address", address).Info("Started metric service")

	// Return stop function
	return func() {
		close(quit)
		if err := srv.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("Failed to shutdown metrics http server")
		}
	}
}
