// Package http exposes the application's commands and queries as a JSON API
// on echo. Handlers translate request bodies into commands, run them, and map
// domain errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/application/usecases/queries"
	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createParcelHandler       commands.CreateParcelCommandHandler
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler
	deleteParcelHandler       commands.DeleteParcelCommandHandler
	assignParcelHandler       commands.AssignParcelCommandHandler
	reassignParcelHandler     commands.ReassignParcelCommandHandler
	unassignParcelHandler     commands.UnassignParcelCommandHandler
	completeParcelHandler     commands.CompleteParcelCommandHandler
	dispatchParcelsHandler    commands.DispatchParcelsCommandHandler
	createAgentHandler        commands.CreateAgentCommandHandler
	removeAgentHandler        commands.RemoveAgentCommandHandler
	setAvailabilityHandler    commands.SetAgentAvailabilityCommandHandler

	// Query handlers
	getParcelsHandler     queries.GetParcelsQueryHandler
	trackParcelHandler    queries.TrackParcelQueryHandler
	getAgentsHandler      queries.GetAgentsQueryHandler
	getParcelStatsHandler queries.GetParcelStatsQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler,
	deleteParcelHandler commands.DeleteParcelCommandHandler,
	assignParcelHandler commands.AssignParcelCommandHandler,
	reassignParcelHandler commands.ReassignParcelCommandHandler,
	unassignParcelHandler commands.UnassignParcelCommandHandler,
	completeParcelHandler commands.CompleteParcelCommandHandler,
	dispatchParcelsHandler commands.DispatchParcelsCommandHandler,
	createAgentHandler commands.CreateAgentCommandHandler,
	removeAgentHandler commands.RemoveAgentCommandHandler,
	setAvailabilityHandler commands.SetAgentAvailabilityCommandHandler,
	getParcelsHandler queries.GetParcelsQueryHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
	getAgentsHandler queries.GetAgentsQueryHandler,
	getParcelStatsHandler queries.GetParcelStatsQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:       createParcelHandler,
		updateParcelStatusHandler: updateParcelStatusHandler,
		deleteParcelHandler:       deleteParcelHandler,
		assignParcelHandler:       assignParcelHandler,
		reassignParcelHandler:     reassignParcelHandler,
		unassignParcelHandler:     unassignParcelHandler,
		completeParcelHandler:     completeParcelHandler,
		dispatchParcelsHandler:    dispatchParcelsHandler,
		createAgentHandler:        createAgentHandler,
		removeAgentHandler:        removeAgentHandler,
		setAvailabilityHandler:    setAvailabilityHandler,
		getParcelsHandler:         getParcelsHandler,
		trackParcelHandler:        trackParcelHandler,
		getAgentsHandler:          getAgentsHandler,
		getParcelStatsHandler:     getParcelStatsHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels", s.GetParcels)
	api.GET("/parcels/stats", s.GetParcelStats)
	api.GET("/parcels/track/:trackingNumber", s.TrackParcel)
	api.PATCH("/parcels/:parcelId/status", s.UpdateParcelStatus)
	api.POST("/parcels/:parcelId/assign", s.AssignParcel)
	api.POST("/parcels/:parcelId/reassign", s.ReassignParcel)
	api.POST("/parcels/:parcelId/unassign", s.UnassignParcel)
	api.POST("/parcels/:parcelId/complete", s.CompleteParcel)
	api.DELETE("/parcels/:parcelId", s.DeleteParcel)
	api.POST("/dispatch", s.Dispatch)

	api.POST("/agents", s.CreateAgent)
	api.GET("/agents", s.GetAgents)
	api.PUT("/agents/:agentId/availability", s.SetAgentAvailability)
	api.DELETE("/agents/:agentId", s.RemoveAgent)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// CreateParcel handles POST /api/v1/parcels - books a new parcel.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body NewParcel
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	priority, err := parcel.PriorityFromString(body.Priority)
	if err != nil {
		return badRequest(ctx, "Invalid priority: "+body.Priority)
	}

	payment, err := paymentFromRequest(body)
	if err != nil {
		return badRequest(ctx, "Invalid payment: "+err.Error())
	}

	amount, err := kernel.NewMoneyFromFloat(body.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid amount: "+err.Error())
	}

	cmd, err := commands.NewCreateParcelCommand(
		kernel.NewUUID(),
		body.Sender,
		body.Recipient,
		body.PickupAddress,
		body.DeliveryAddress,
		body.WeightKg,
		body.Category,
		priority,
		payment,
		amount,
	)
	if err != nil {
		return badRequest(ctx, "Invalid parcel data: "+err.Error())
	}

	trackingNumber, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, "create_parcel", err)
	}

	return ctx.JSON(http.StatusCreated, ParcelCreated{
		TrackingNumber: trackingNumber.String(),
	})
}

// GetParcels handles GET /api/v1/parcels - lists parcels, optionally filtered
// by status, priority and a free-text search over tracking number, sender and
// recipient.
func (s *Server) GetParcels(ctx echo.Context) error {
	query, err := queries.NewGetParcelsQuery(
		ctx.QueryParam("status"),
		ctx.QueryParam("priority"),
		ctx.QueryParam("search"),
	)
	if err != nil {
		return badRequest(ctx, "Invalid filter: "+err.Error())
	}

	parcels, err := s.getParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("get_parcels").Inc()
		return internalError(ctx, "Failed to retrieve parcels")
	}

	response := make([]Parcel, len(parcels))
	for i, p := range parcels {
		var agentID *string
		if p.AgentID != nil {
			id := p.AgentID.String()
			agentID = &id
		}

		response[i] = Parcel{
			ID:             p.ID.String(),
			TrackingNumber: p.TrackingNumber,
			Sender:         p.Sender,
			Recipient:      p.Recipient,
			Status:         p.Status,
			Priority:       p.Priority,
			AgentID:        agentID,
			Amount:         float64(p.AmountCents) / 100,
			CreatedAt:      p.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TrackParcel handles GET /api/v1/parcels/track/{trackingNumber} - the
// customer-facing lookup.
func (s *Server) TrackParcel(ctx echo.Context) error {
	query, err := queries.NewTrackParcelQuery(ctx.Param("trackingNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking number")
	}

	progress, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Parcel not found")
		}
		metrics.OperationErrorsTotal.WithLabelValues("track_parcel").Inc()
		return internalError(ctx, "Failed to track parcel")
	}

	return ctx.JSON(http.StatusOK, ParcelProgress{
		TrackingNumber:  progress.TrackingNumber,
		Sender:          progress.Sender,
		Recipient:       progress.Recipient,
		DeliveryAddress: progress.DeliveryAddress,
		Status:          progress.Status,
		Priority:        progress.Priority,
		RequiresCOD:     progress.RequiresCOD,
		CodAmount:       float64(progress.CodAmountCents) / 100,
		CreatedAt:       progress.CreatedAt,
	})
}

// GetParcelStats handles GET /api/v1/parcels/stats - dashboard counters.
func (s *Server) GetParcelStats(ctx echo.Context) error {
	stats, err := s.getParcelStatsHandler.Handle(
		ctx.Request().Context(), queries.NewGetParcelStatsQuery())
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("get_parcel_stats").Inc()
		return internalError(ctx, "Failed to compute stats")
	}

	return ctx.JSON(http.StatusOK, ParcelStats{
		PendingCount:     stats.PendingCount,
		AssignedCount:    stats.AssignedCount,
		PickedUpCount:    stats.PickedUpCount,
		InTransitCount:   stats.InTransitCount,
		DeliveredCount:   stats.DeliveredCount,
		FailedCount:      stats.FailedCount,
		DeliveredRevenue: float64(stats.DeliveredRevenueCents) / 100,
		OutstandingCod:   float64(stats.OutstandingCodCents) / 100,
	})
}

// UpdateParcelStatus handles PATCH /api/v1/parcels/{parcelId}/status - moves a
// parcel to picked-up or in-transit.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body StatusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := parcel.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+body.Status)
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(parcelID, status)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err := s.updateParcelStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "update_parcel_status", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignParcel handles POST /api/v1/parcels/{parcelId}/assign - assigns a
// pending parcel to the named agent.
func (s *Server) AssignParcel(ctx echo.Context) error {
	parcelID, agentID, err := parcelAndAgentIDs(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssignParcelCommand(parcelID, agentID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment: "+err.Error())
	}

	if err := s.assignParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "assign_parcel", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignParcel handles POST /api/v1/parcels/{parcelId}/reassign - hands an
// active parcel to another agent.
func (s *Server) ReassignParcel(ctx echo.Context) error {
	parcelID, agentID, err := parcelAndAgentIDs(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReassignParcelCommand(parcelID, agentID)
	if err != nil {
		return badRequest(ctx, "Invalid reassignment: "+err.Error())
	}

	if err := s.reassignParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "reassign_parcel", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnassignParcel handles POST /api/v1/parcels/{parcelId}/unassign - returns an
// assigned parcel to the pending pool.
func (s *Server) UnassignParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewUnassignParcelCommand(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err := s.unassignParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "unassign_parcel", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteParcel handles POST /api/v1/parcels/{parcelId}/complete - closes a
// delivery attempt as delivered or failed.
func (s *Server) CompleteParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body CompleteRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteParcelCommand(parcelID, body.Delivered)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err := s.completeParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "complete_parcel", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteParcel handles DELETE /api/v1/parcels/{parcelId}.
func (s *Server) DeleteParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewDeleteParcelCommand(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err := s.deleteParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "delete_parcel", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Dispatch handles POST /api/v1/dispatch - assigns the oldest pending parcel
// to the best available agent. Returns 204 even when nothing was waiting, so
// operators can poke the dispatcher without treating an idle system as a fault.
func (s *Server) Dispatch(ctx echo.Context) error {
	err := s.dispatchParcelsHandler.Handle(
		ctx.Request().Context(), commands.NewDispatchParcelsCommand())
	if err != nil &&
		!errors.Is(err, commands.ErrNoParcelFound) &&
		!errors.Is(err, commands.ErrNoAvailableAgentsFound) {
		return commandError(ctx, "dispatch_parcels", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateAgent handles POST /api/v1/agents - registers a delivery agent.
func (s *Server) CreateAgent(ctx echo.Context) error {
	var body NewAgent
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleType, err := agent.VehicleTypeFromString(body.VehicleType)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle type: "+body.VehicleType)
	}

	vehicle, err := agent.NewVehicle(vehicleType, body.VehicleModel)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle: "+err.Error())
	}

	cmd, err := commands.NewCreateAgentCommand(
		kernel.NewUUID(),
		body.Name,
		body.Email,
		body.Phone,
		vehicle,
		body.MaxActive,
	)
	if err != nil {
		return badRequest(ctx, "Invalid agent data: "+err.Error())
	}

	if err := s.createAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "create_agent", err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetAgents handles GET /api/v1/agents - lists the fleet.
func (s *Server) GetAgents(ctx echo.Context) error {
	agents, err := s.getAgentsHandler.Handle(
		ctx.Request().Context(), queries.NewGetAgentsQuery())
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("get_agents").Inc()
		return internalError(ctx, "Failed to retrieve agents")
	}

	response := make([]Agent, len(agents))
	for i, a := range agents {
		response[i] = Agent{
			ID:                  a.ID.String(),
			Name:                a.Name,
			Phone:               a.Phone,
			VehicleType:         a.VehicleType,
			VehicleModel:        a.VehicleModel,
			Availability:        a.Availability,
			ActiveDeliveries:    a.ActiveDeliveries,
			MaxActive:           a.MaxActive,
			CompletedDeliveries: a.CompletedDeliveries,
			Rating:              a.Rating,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetAgentAvailability handles PUT /api/v1/agents/{agentId}/availability.
func (s *Server) SetAgentAvailability(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("agentId"))
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	var body AvailabilityRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	availability, err := agent.AvailabilityFromString(body.Availability)
	if err != nil {
		return badRequest(ctx, "Invalid availability: "+body.Availability)
	}

	cmd, err := commands.NewSetAgentAvailabilityCommand(agentID, availability)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err := s.setAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "set_agent_availability", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveAgent handles DELETE /api/v1/agents/{agentId}.
func (s *Server) RemoveAgent(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("agentId"))
	if err != nil {
		return badRequest(ctx, "Invalid agent id")
	}

	cmd, err := commands.NewRemoveAgentCommand(agentID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err := s.removeAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, "remove_agent", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// paymentFromRequest builds the payment value object from the request body.
func paymentFromRequest(body NewParcel) (parcel.Payment, error) {
	method, err := parcel.PaymentMethodFromString(body.PaymentMethod)
	if err != nil {
		return parcel.Payment{}, err
	}

	if method == parcel.COD {
		codAmount, err := kernel.NewMoneyFromFloat(body.CodAmount)
		if err != nil {
			return parcel.Payment{}, err
		}
		return parcel.NewCODPayment(codAmount), nil
	}

	return parcel.NewPrepaidPayment(), nil
}

// parcelAndAgentIDs extracts the parcel id from the path and the agent id from
// the body, for the assign and reassign endpoints.
func parcelAndAgentIDs(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	parcelID, err := kernel.UUIDFromString(ctx.Param("parcelId"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid parcel id")
	}

	var body AssignRequest
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid request body")
	}

	agentID, err := kernel.UUIDFromString(body.AgentID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid agent id")
	}

	return parcelID, agentID, nil
}

// commandError maps a failed command onto an HTTP status code and counts the
// failure against the named operation.
func commandError(ctx echo.Context, operation string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, err.Error())
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return jsonError(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, parcel.ErrInvalidTransition),
		errors.Is(err, parcel.ErrParcelAlreadyAssigned),
		errors.Is(err, commands.ErrParcelAlreadyWithAgent),
		errors.Is(err, agent.ErrAgentUnavailable):
		return jsonError(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	default:
		return internalError(ctx, "Internal error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusBadRequest, message)
}

func notFound(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusNotFound, message)
}

func internalError(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusInternalServerError, message)
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
