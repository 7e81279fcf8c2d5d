package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders written to the order log",
	})

	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Total number of successful registrations",
	})

	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "login_failures_total",
		Help: "Total number of failed login attempts",
	})

	CartFlushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_flushes_total",
		Help: "Total number of cart snapshots persisted",
	})

	CartFlushFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_flush_failures_total",
		Help: "Total number of failed cart snapshot writes",
	})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of failed checkout attempts",
	}, []string{"reason"})

	CatalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Latency of outbound product catalog requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	CatalogRequestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_request_failures_total",
		Help: "Total number of failed product catalog requests",
	}, []string{"endpoint"})
)
