//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"aquads/internal/forms/models"
	"aquads/internal/forms/store"
	"aquads/internal/platform/config"
	"aquads/internal/platform/database"
	"aquads/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.SQLStore
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())

	db, err := database.Open(s.ctx, config.Database{Driver: config.DriverPostgres, URL: s.postgres.URL})
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.store = store.NewSQL(db)
}

func (s *PostgresStoreSuite) TestInsertAndListNewestFirst() {
	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		id, err := s.store.InsertContactForm(s.ctx, &models.ContactForm{Name: name, Email: name + "@x.com", Message: "hi"})
		s.Require().NoError(err)
		ids = append(ids, id)
	}
	s.Less(ids[0], ids[1])
	s.Less(ids[1], ids[2])

	rows, err := s.store.ListContactForms(s.ctx)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(len(rows), 3)
	s.Equal("C", rows[0].Name)
	s.Nil(rows[0].Phone)
	s.False(rows[0].CreatedAt.IsZero())
}

func (s *PostgresStoreSuite) TestCountAndScore() {
	score := int64(91)
	_, err := s.store.InsertStrategyRecommendation(s.ctx, &models.StrategyRecommendation{
		Sector: "fintech", Audience: "retail", Budget: "10k", Score: &score,
	})
	s.Require().NoError(err)

	n, err := s.store.Count(s.ctx, models.KindStrategyRecommendation)
	s.Require().NoError(err)
	s.GreaterOrEqual(n, int64(1))

	rows, err := s.store.ListStrategyRecommendations(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(rows)
	s.Require().NotNil(rows[0].Score)
	s.Equal(int64(91), *rows[0].Score)
}

func (s *PostgresStoreSuite) TestMigrationsAreIdempotent() {
	s.NoError(database.Migrate(config.Database{Driver: config.DriverPostgres, URL: s.postgres.URL}))
}
