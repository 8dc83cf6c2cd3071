package cmd

import (
	"log/slog"

	"couriertrack/internal/adapters/in/http"
	"couriertrack/internal/adapters/out/identity"
	"couriertrack/internal/adapters/out/notifier"
	"couriertrack/internal/adapters/out/postgres"
	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/application/usecases/queries"
	"couriertrack/internal/core/ports"
	"couriertrack/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers. One root
// per process; handlers are created on demand and share the outgoing adapters.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	identity   ports.IdentityProvider
	notifier   *notifier.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		identity:   identity.NewSystemIdentityProvider(),
		notifier:   notifier.NewNotifier(logger),
		logger:     logger,
	}
}

// Notifier exposes the event bus so the application can attach subscribers.
func (c *CompositionRoot) Notifier() *notifier.Notifier {
	return c.notifier
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f, c.identity)
}

func (c *CompositionRoot) CreateUpdateParcelStatusCommandHandler() commands.UpdateParcelStatusCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateParcelStatusCommandHandler(f, c.identity, c.notifier)
}

func (c *CompositionRoot) CreateDeleteParcelCommandHandler() commands.DeleteParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignParcelCommandHandler() commands.AssignParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignParcelCommandHandler(f, c.identity, c.notifier)
}

func (c *CompositionRoot) CreateReassignParcelCommandHandler() commands.ReassignParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignParcelCommandHandler(f, c.identity, c.notifier)
}

func (c *CompositionRoot) CreateUnassignParcelCommandHandler() commands.UnassignParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUnassignParcelCommandHandler(f, c.identity, c.notifier)
}

func (c *CompositionRoot) CreateCompleteParcelCommandHandler() commands.CompleteParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteParcelCommandHandler(f, c.identity, c.notifier)
}

func (c *CompositionRoot) CreateDispatchParcelsCommandHandler() commands.DispatchParcelsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchParcelsCommandHandler(f, c.identity, c.notifier)
}

func (c *CompositionRoot) CreateCreateAgentCommandHandler() commands.CreateAgentCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveAgentCommandHandler() commands.RemoveAgentCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveAgentCommandHandler(f)
}

func (c *CompositionRoot) CreateSetAgentAvailabilityCommandHandler() commands.SetAgentAvailabilityCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetAgentAvailabilityCommandHandler(f, c.identity, c.notifier)
}

func (c *CompositionRoot) CreateGetParcelsQueryHandler() queries.GetParcelsQueryHandler {
	return queries.NewGetParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAgentsQueryHandler() queries.GetAgentsQueryHandler {
	return queries.NewGetAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelStatsQueryHandler() queries.GetParcelStatsQueryHandler {
	return queries.NewGetParcelStatsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the HTTP server over all command and query handlers.
func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateParcelCommandHandler(),
		c.CreateUpdateParcelStatusCommandHandler(),
		c.CreateDeleteParcelCommandHandler(),
		c.CreateAssignParcelCommandHandler(),
		c.CreateReassignParcelCommandHandler(),
		c.CreateUnassignParcelCommandHandler(),
		c.CreateCompleteParcelCommandHandler(),
		c.CreateDispatchParcelsCommandHandler(),
		c.CreateCreateAgentCommandHandler(),
		c.CreateRemoveAgentCommandHandler(),
		c.CreateSetAgentAvailabilityCommandHandler(),
		c.CreateGetParcelsQueryHandler(),
		c.CreateTrackParcelQueryHandler(),
		c.CreateGetAgentsQueryHandler(),
		c.CreateGetParcelStatsQueryHandler(),
	)
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchParcelsCommandHandler(), c.logger)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
