package postgres_test

import (
	"context"
	"testing"
	"time"

	"couriertrack/internal/adapters/out/postgres"
	"couriertrack/internal/adapters/out/postgres/agentrepo"
	"couriertrack/internal/adapters/out/postgres/parcelrepo"
	"couriertrack/internal/core/domain/model/agent"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that compound operations spanning the
// parcel and agent repositories commit and roll back as a single transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&parcelrepo.ParcelDTO{}, &agentrepo.AgentDTO{}))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcels, agents").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_AssignmentAcrossRepositories_PersistsBoth() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("CP000000030")
	testAgent := suite.createOnlineAgent()
	suite.seed(testParcel, testAgent)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loadedParcel, err := uow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	loadedAgent, err := uow.AgentRepository().Get(ctx, testAgent.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loadedAgent.Take())
	suite.Require().NoError(loadedParcel.Assign(loadedAgent.ID()))

	suite.Require().NoError(uow.ParcelRepository().Update(ctx, loadedParcel))
	suite.Require().NoError(uow.AgentRepository().Update(ctx, loadedAgent))
	suite.Require().NoError(uow.Commit(ctx))

	verifyUow := suite.factory.Create()
	persistedParcel, err := verifyUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	persistedAgent, err := verifyUow.AgentRepository().Get(ctx, testAgent.ID())
	suite.Require().NoError(err)

	suite.Equal(parcel.Assigned, persistedParcel.Status())
	suite.Require().NotNil(persistedParcel.Agent())
	suite.True(persistedParcel.Agent().IsEqual(testAgent.ID()))
	suite.Equal(1, persistedAgent.ActiveDeliveries())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AssignmentAcrossRepositories_DiscardsBoth() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("CP000000031")
	testAgent := suite.createOnlineAgent()
	suite.seed(testParcel, testAgent)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	loadedParcel, err := uow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	loadedAgent, err := uow.AgentRepository().Get(ctx, testAgent.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loadedAgent.Take())
	suite.Require().NoError(loadedParcel.Assign(loadedAgent.ID()))

	suite.Require().NoError(uow.ParcelRepository().Update(ctx, loadedParcel))
	suite.Require().NoError(uow.AgentRepository().Update(ctx, loadedAgent))
	suite.Require().NoError(uow.Rollback(ctx))

	verifyUow := suite.factory.Create()
	persistedParcel, err := verifyUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	persistedAgent, err := verifyUow.AgentRepository().Get(ctx, testAgent.ID())
	suite.Require().NoError(err)

	suite.Equal(parcel.Pending, persistedParcel.Status())
	suite.Nil(persistedParcel.Agent())
	suite.Equal(0, persistedAgent.ActiveDeliveries())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_IsHarmless() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	err := uow.Rollback(ctx)

	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_DoesNotNest() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_UseMainConnection() {
	ctx := context.Background()

	testParcel := suite.createTestParcel("CP000000032")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, testParcel))

	verifyUow := suite.factory.Create()
	_, err := verifyUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestParcel(trackingNumber string) *parcel.Parcel {
	tn, err := kernel.NewTrackingNumber(trackingNumber)
	suite.Require().NoError(err)

	amount, err := kernel.NewMoneyFromFloat(25.99)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(), tn,
		"John Doe", "Jane Smith",
		"123 Main St", "456 Oak Ave",
		2.5, "Electronics",
		parcel.PriorityMedium, parcel.NewPrepaidPayment(), amount,
		time.Now(),
	)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) createOnlineAgent() *agent.Agent {
	vehicle, err := agent.NewVehicle(agent.Motorcycle, "Honda CB350")
	suite.Require().NoError(err)

	a, err := agent.RestoreAgent(
		kernel.NewUUID(), "Rahul Kumar", "rahul@couriertrack.io", "+91 98765 43210",
		vehicle, agent.Online, 0, 3, 0, 0, 0,
	)
	suite.Require().NoError(err)
	return a
}

func (suite *UnitOfWorkIntegrationTestSuite) seed(p *parcel.Parcel, a *agent.Agent) {
	ctx := context.Background()
	seedUow := suite.factory.Create()
	suite.Require().NoError(seedUow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(seedUow.AgentRepository().Add(ctx, a))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
