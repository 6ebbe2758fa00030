//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"nachweis/internal/catalog"
	contractorModel "nachweis/internal/contractor/models"
	contractorstore "nachweis/internal/contractor/store"
	"nachweis/internal/platform/postgres"
	"nachweis/internal/requirement/models"
	"nachweis/internal/requirement/store"
	id "nachweis/pkg/domain"
	"nachweis/pkg/platform/sentinel"
)

type PostgresStoreSuite struct {
	suite.Suite
	container   *tcpostgres.PostgresContainer
	db          *sql.DB
	store       *store.Postgres
	contractors *contractorstore.Postgres
	ctx         context.Context
	now         time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("nachweis_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sql.Open("pgx", connStr)
	s.Require().NoError(err)
	s.Require().NoError(db.Ping())
	s.Require().NoError(postgres.Migrate(db))

	s.db = db
	s.store = store.NewPostgres(db)
	s.contractors = contractorstore.NewPostgres(db)
	s.now = time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *PostgresStoreSuite) seedContractor() *contractorModel.Contractor {
	contractor, err := contractorModel.NewContractor("Rohbau Krause GmbH", contractorModel.ComplianceFlags{}, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.contractors.Create(s.ctx, contractor))
	return contractor
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	contractor := s.seedContractor()
	doc := models.NewDocument(contractor.ID, catalog.TypeHaftpflicht, "Haftpflichtversicherung", models.RequirementRequired, s.now)
	s.Require().NoError(s.store.Create(s.ctx, doc))

	found, err := s.store.FindByID(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(doc.ID, found.ID)
	s.Equal(contractor.ID, found.ContractorID)
	s.Equal(models.StatusMissing, found.Status)
	s.Empty(found.FileName)
	s.Nil(found.ValidUntil)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(s.ctx, id.NewRequirementID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdateLifecycleRoundTrip() {
	contractor := s.seedContractor()
	doc := models.NewDocument(contractor.ID, catalog.TypeUnbedenklichkeit, "Unbedenklichkeitsbescheinigung", models.RequirementRequired, s.now)
	s.Require().NoError(s.store.Create(s.ctx, doc))

	s.Require().NoError(doc.Upload("cert.pdf", s.now))
	s.Require().NoError(doc.Accept(s.now, nil))
	s.Require().NoError(s.store.Update(s.ctx, doc))

	found, err := s.store.FindByID(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusValid, found.Status)
	s.Equal("cert.pdf", found.FileName)
	s.Require().NotNil(found.ValidUntil)
	s.True(doc.ValidUntil.Equal(*found.ValidUntil))
	s.Require().NotNil(found.AcceptedAt)
	s.True(s.now.Equal(*found.AcceptedAt))
}

func (s *PostgresStoreSuite) TestUpdateMissing() {
	contractor := s.seedContractor()
	doc := models.NewDocument(contractor.ID, catalog.TypeHaftpflicht, "Haftpflichtversicherung", models.RequirementRequired, s.now)
	s.ErrorIs(s.store.Update(s.ctx, doc), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDuplicateTypePerContractorRejected() {
	contractor := s.seedContractor()
	first := models.NewDocument(contractor.ID, catalog.TypeHaftpflicht, "Haftpflichtversicherung", models.RequirementRequired, s.now)
	s.Require().NoError(s.store.Create(s.ctx, first))

	second := models.NewDocument(contractor.ID, catalog.TypeHaftpflicht, "Haftpflichtversicherung", models.RequirementRequired, s.now)
	s.Error(s.store.Create(s.ctx, second))
}

func (s *PostgresStoreSuite) TestListByContractorOrdered() {
	contractor := s.seedContractor()
	for _, typeID := range []catalog.DocumentTypeID{
		catalog.TypeUnbedenklichkeit,
		catalog.TypeGewerbeanmeldung,
		catalog.TypeHaftpflicht,
	} {
		doc := models.NewDocument(contractor.ID, typeID, "Dokument", models.RequirementRequired, s.now)
		s.Require().NoError(s.store.Create(s.ctx, doc))
	}

	docs, err := s.store.ListByContractor(s.ctx, contractor.ID)
	s.Require().NoError(err)
	s.Require().Len(docs, 3)
	s.Equal(catalog.TypeGewerbeanmeldung, docs[0].TypeID)
	s.Equal(catalog.TypeHaftpflicht, docs[1].TypeID)
	s.Equal(catalog.TypeUnbedenklichkeit, docs[2].TypeID)
}

func (s *PostgresStoreSuite) TestRejectionReasonRoundTrip() {
	contractor := s.seedContractor()
	doc := models.NewDocument(contractor.ID, catalog.TypeHaftpflicht, "Haftpflichtversicherung", models.RequirementRequired, s.now)
	s.Require().NoError(s.store.Create(s.ctx, doc))

	s.Require().NoError(doc.Upload("blurry.pdf", s.now))
	s.Require().NoError(doc.Reject("scan is unreadable", s.now))
	s.Require().NoError(s.store.Update(s.ctx, doc))

	found, err := s.store.FindByID(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, found.Status)
	s.Equal("scan is unreadable", found.RejectionReason)

	// The re-upload clears the reason in storage too.
	s.Require().NoError(doc.Upload("clean.pdf", s.now.Add(time.Hour)))
	s.Require().NoError(s.store.Update(s.ctx, doc))

	found, err = s.store.FindByID(s.ctx, doc.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusSubmitted, found.Status)
	s.Empty(found.RejectionReason)
}
