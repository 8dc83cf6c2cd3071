// Package metrics exposes Prometheus instrumentation for the courier tracking core.
// Mutation counters are incremented by command handlers after a commit succeeds, so
// the numbers always reflect committed state changes. Error counters are incremented
// at the HTTP boundary where the failed operation is known.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ParcelsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couriertrack_parcels_created_total",
		Help: "Total number of parcels successfully created.",
	})

	ParcelsAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couriertrack_parcels_assigned_total",
		Help: "Total number of parcel-to-agent assignments, including reassignments.",
	})

	ParcelsDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couriertrack_parcels_delivered_total",
		Help: "Total number of parcels delivered successfully.",
	})

	ParcelsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "couriertrack_parcels_failed_total",
		Help: "Total number of parcels whose delivery was abandoned.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "couriertrack_operation_errors_total",
		Help: "Total number of failed operations, labeled by operation name.",
	},
		[]string{"operation"},
	)
)
