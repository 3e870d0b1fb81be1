package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/udisondev/typesxml/internal/testutil"
	"github.com/udisondev/typesxml/internal/typesxml"
)

// SnapshotSuite тестирует snapshot store на реальном PostgreSQL (testcontainer).
type SnapshotSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *SnapshotRepository
	ctx  context.Context
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotSuite))
}

func (s *SnapshotSuite) SetupSuite() {
	s.pool = testutil.SetupTestDB(s.T())
	s.repo = NewSnapshotRepository(s.pool)
}

func (s *SnapshotSuite) SetupTest() {
	s.ctx = testutil.ContextWithTimeout(s.T(), 30*time.Second)
	// Очищаем таблицы перед каждым тестом
	_, err := s.pool.Exec(s.ctx, "TRUNCATE snapshots CASCADE")
	s.Require().NoError(err)
}

func (s *SnapshotSuite) base() *typesxml.Types {
	types, err := typesxml.Parse([]byte(testutil.Fixtures.Base))
	s.Require().NoError(err)
	return types
}

func (s *SnapshotSuite) TestSaveAndLoadLatest() {
	original := s.base()

	snap, err := s.repo.Save(s.ctx, "chernarus", original)
	s.Require().NoError(err)
	s.Equal("chernarus", snap.Label)
	s.Equal(2, snap.TypeCount)
	s.NotZero(snap.ID)

	loaded, got, err := s.repo.Latest(s.ctx, "chernarus")
	s.Require().NoError(err)
	s.Equal(snap.ID, got.ID)
	s.True(original.Equal(loaded), "loaded snapshot differs from saved types")
}

func (s *SnapshotSuite) TestSaveUnchangedReturnsLatest() {
	first, err := s.repo.Save(s.ctx, "livonia", s.base())
	s.Require().NoError(err)

	// Повторный Save без изменений не создаёт новую версию
	second, err := s.repo.Save(s.ctx, "livonia", s.base())
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)

	list, err := s.repo.List(s.ctx, "livonia")
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *SnapshotSuite) TestSaveChangedAddsVersion() {
	types := s.base()
	first, err := s.repo.Save(s.ctx, "sakhal", types)
	s.Require().NoError(err)

	s.Require().NoError(types.Apply("Apple", typesxml.SetLifetime{Lifetime: 1}))
	second, err := s.repo.Save(s.ctx, "sakhal", types)
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)
	s.NotEqual(first.Digest, second.Digest)

	list, err := s.repo.List(s.ctx, "sakhal")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID, "newest first")

	loaded, _, err := s.repo.Latest(s.ctx, "sakhal")
	s.Require().NoError(err)
	apple, ok := loaded.Get("Apple")
	s.Require().True(ok)
	s.Equal(uint32(1), apple.Lifetime())
}

func (s *SnapshotSuite) TestSaveEmpty() {
	_, err := s.repo.Save(s.ctx, "empty", typesxml.NewTypes())
	s.Require().NoError(err)

	loaded, snap, err := s.repo.Latest(s.ctx, "empty")
	s.Require().NoError(err)
	s.Equal(0, snap.TypeCount)
	s.Equal(0, loaded.Len())
}

func (s *SnapshotSuite) TestLatestNotFound() {
	_, _, err := s.repo.Latest(s.ctx, "nowhere")
	s.ErrorIs(err, ErrSnapshotNotFound)
}

func (s *SnapshotSuite) TestRunMigrationsIsIdempotent() {
	s.NoError(RunMigrations(s.ctx, s.pool.Config().ConnString()))
}

func TestDigest(t *testing.T) {
	a := typesxml.NewTypes(typesxml.NewType("Apple"))
	b := typesxml.NewTypes(typesxml.NewType("Apple"))

	da, err := Digest(a)
	if err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	dbDigest, err := Digest(b)
	if err != nil {
		t.Fatalf("Digest() failed: %v", err)
	}
	if da != dbDigest {
		t.Errorf("equal collections have different digests: %s != %s", da, dbDigest)
	}
	if len(da) != 64 {
		t.Errorf("digest length: got %d, want 64", len(da))
	}

	b.Add(typesxml.NewType("Banana"))
	dc, _ := Digest(b)
	if dc == da {
		t.Error("different collections share a digest")
	}
}
