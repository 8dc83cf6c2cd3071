package commands_test

import (
	"context"
	"testing"
	"time"

	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/domain/events"
	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"
	"couriertrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared mocks for command handler tests. Handlers only see the ports, so a
// single set of testify mocks covers every handler in the package.

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetFirstInPendingStatus(ctx context.Context) (*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllInActiveStatuses(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetAllAvailable(ctx context.Context) ([]*agent.Agent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agent.Agent), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

// fixedIdentity is a deterministic ports.IdentityProvider for handler tests.
type fixedIdentity struct {
	now            time.Time
	trackingNumber kernel.TrackingNumber
}

func newFixedIdentity(t *testing.T) fixedIdentity {
	t.Helper()
	trackingNumber, err := kernel.NewTrackingNumber("CP001234567")
	require.NoError(t, err)
	return fixedIdentity{
		now:            time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		trackingNumber: trackingNumber,
	}
}

func (f fixedIdentity) Now() time.Time { return f.now }

func (f fixedIdentity) NewTrackingNumber() kernel.TrackingNumber { return f.trackingNumber }

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evts ...events.Event) {
	p.events = append(p.events, evts...)
}

func (p *recordingPublisher) Subscribe(string, ports.EventHandler) ports.Subscription {
	return nil
}

// Test fixtures shared by the handler tests.

func newPendingParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	trackingNumber, err := kernel.NewTrackingNumber("CP001234567")
	require.NoError(t, err)
	amount, err := kernel.NewMoneyFromFloat(25.99)
	require.NoError(t, err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(), trackingNumber,
		"John Doe", "Jane Smith",
		"123 Main St", "456 Oak Ave",
		2.5, "Electronics",
		parcel.PriorityMedium, parcel.NewPrepaidPayment(), amount,
		time.Now(),
	)
	require.NoError(t, err)
	return p
}

func newAssignedParcel(t *testing.T, agentID kernel.UUID) *parcel.Parcel {
	t.Helper()
	p := newPendingParcel(t)
	require.NoError(t, p.Assign(agentID))
	return p
}

func newOnlineAgent(t *testing.T, activeDeliveries int) *agent.Agent {
	t.Helper()
	vehicle, err := agent.NewVehicle(agent.Motorcycle, "Honda CB350")
	require.NoError(t, err)

	a, err := agent.RestoreAgent(
		kernel.NewUUID(), "Rahul Kumar", "rahul@couriertrack.io", "+91 98765 43210",
		vehicle, agent.Online, activeDeliveries, 0, 0, 0, 0,
	)
	require.NoError(t, err)
	return a
}

func newOfflineAgent(t *testing.T) *agent.Agent {
	t.Helper()
	vehicle, err := agent.NewVehicle(agent.Bike, "BTwin Rockrider")
	require.NoError(t, err)

	a, err := agent.NewAgent(
		kernel.NewUUID(), "Priya Sharma", "priya@couriertrack.io", "+91 87654 32109",
		vehicle, 0,
	)
	require.NoError(t, err)
	return a
}
