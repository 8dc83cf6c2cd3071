package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"couriertrack/internal/adapters/out/postgres/agentrepo"
	"couriertrack/internal/core/application/usecases/queries"
	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type AgentQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *agentrepo.GormAgentRepository
}

func (suite *AgentQueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&agentrepo.AgentDTO{}))

	suite.repo = agentrepo.NewGormAgentRepository(db, &mockAggregateTracker{})
}

func (suite *AgentQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE agents").Error)
}

func (suite *AgentQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AgentQueriesTestSuite) TestGetAgents_EmptyDatabase_ReturnsEmptySlice() {
	handler := queries.NewGetAgentsQueryHandler(suite.db)

	result, err := handler.Handle(context.Background(), queries.NewGetAgentsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *AgentQueriesTestSuite) TestGetAgents_ReturnsFleetOrderedByName() {
	suite.seedAgent("Charlie Davis", agent.Bike, "Trek FX 2")
	suite.seedAgent("Alice Johnson", agent.Motorcycle, "Honda CB350")
	suite.seedAgent("Bob Smith", agent.Van, "Ford Transit")

	handler := queries.NewGetAgentsQueryHandler(suite.db)

	result, err := handler.Handle(context.Background(), queries.NewGetAgentsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("Alice Johnson", result[0].Name)
	suite.Equal("Bob Smith", result[1].Name)
	suite.Equal("Charlie Davis", result[2].Name)
	suite.Equal("motorcycle", result[0].VehicleType)
	suite.Equal("Honda CB350", result[0].VehicleModel)
	suite.Equal("offline", result[0].Availability)
}

func (suite *AgentQueriesTestSuite) TestGetAgents_ReflectsWorkloadCounters() {
	a := suite.seedAgent("Alice Johnson", agent.Motorcycle, "Honda CB350")
	suite.Require().NoError(a.SetAvailability(agent.Online))
	suite.Require().NoError(a.Take())
	suite.Require().NoError(a.Take())
	suite.Require().NoError(a.RecordCompletion(true))
	suite.Require().NoError(suite.repo.Update(context.Background(), a))

	handler := queries.NewGetAgentsQueryHandler(suite.db)

	result, err := handler.Handle(context.Background(), queries.NewGetAgentsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(a.ID()))
	suite.Equal("online", result[0].Availability)
	suite.Equal(1, result[0].ActiveDeliveries)
	suite.Equal(3, result[0].MaxActive)
	suite.Equal(1, result[0].CompletedDeliveries)
}

func (suite *AgentQueriesTestSuite) seedAgent(
	name string,
	vehicleType agent.VehicleType,
	vehicleModel string,
) *agent.Agent {
	vehicle, err := agent.NewVehicle(vehicleType, vehicleModel)
	suite.Require().NoError(err)

	a, err := agent.NewAgent(
		kernel.NewUUID(),
		name,
		fmt.Sprintf("%s@couriertrack.test", name),
		"+15550101",
		vehicle,
		3,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), a))
	return a
}

func TestAgentQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(AgentQueriesTestSuite))
}
