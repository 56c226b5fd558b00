package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/easelhq/easel/domain/catalog"
	"github.com/easelhq/easel/internal/database"
	"github.com/easelhq/easel/internal/testdb"
)

const paintingsSchema = `CREATE TABLE paintings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	season_number INTEGER NOT NULL
)`

type paintingModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Title        string `gorm:"column:title"`
	SeasonNumber int    `gorm:"column:season_number"`
}

func (paintingModel) TableName() string { return "paintings" }

type painting struct {
	ID     int64
	Title  string
	Season int
}

type paintingMapper struct{}

func (paintingMapper) ToDomain(m paintingModel) painting {
	return painting{ID: m.ID, Title: m.Title, Season: m.SeasonNumber}
}

func (paintingMapper) ToModel(p painting) paintingModel {
	return paintingModel{ID: p.ID, Title: p.Title, SeasonNumber: p.Season}
}

func seed(t *testing.T, db database.Database, titles ...string) {
	t.Helper()
	ctx := context.Background()
	for i, title := range titles {
		err := db.Session(ctx).Exec(
			"INSERT INTO paintings (title, season_number) VALUES (?, ?)", title, i+1,
		).Error
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestNewDatabaseUnsupportedDriver(t *testing.T) {
	_, err := database.NewDatabase(context.Background(), "mysql://root@localhost/x")
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestIsSQLite(t *testing.T) {
	db := testdb.NewPlain(t)
	if !db.IsSQLite() {
		t.Error("IsSQLite() = false for sqlite database")
	}
	if db.IsPostgres() {
		t.Error("IsPostgres() = true for sqlite database")
	}
}

func TestRepositoryFind(t *testing.T) {
	db := testdb.WithSchema(t, paintingsSchema)
	seed(t, db, "Mountain Majesty", "A Walk in the Woods", "Winter Sun")

	repo := database.NewRepository[painting, paintingModel](db, paintingMapper{}, "painting")

	all, err := repo.Find(context.Background())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len = %d, want 3", len(all))
	}
}

func TestRepositoryFindWithConditions(t *testing.T) {
	db := testdb.WithSchema(t, paintingsSchema)
	seed(t, db, "Mountain Majesty", "A Walk in the Woods")

	repo := database.NewRepository[painting, paintingModel](db, paintingMapper{}, "painting")

	got, err := repo.Find(context.Background(), catalog.WithCondition("title", "Mountain Majesty"))
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Mountain Majesty" {
		t.Errorf("got %v", got)
	}
}

func TestRepositoryFindOneNotFound(t *testing.T) {
	db := testdb.WithSchema(t, paintingsSchema)

	repo := database.NewRepository[painting, paintingModel](db, paintingMapper{}, "painting")

	_, err := repo.FindOne(context.Background(), catalog.WithID(42))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, database.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestRepositoryCountAndExists(t *testing.T) {
	db := testdb.WithSchema(t, paintingsSchema)
	seed(t, db, "Mountain Majesty", "A Walk in the Woods")

	repo := database.NewRepository[painting, paintingModel](db, paintingMapper{}, "painting")
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}

	exists, err := repo.Exists(ctx, catalog.WithCondition("title", "A Walk in the Woods"))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("Exists = false, want true")
	}
}

func TestRepositoryOrderingAndPagination(t *testing.T) {
	db := testdb.WithSchema(t, paintingsSchema)
	seed(t, db, "a", "b", "c", "d")

	repo := database.NewRepository[painting, paintingModel](db, paintingMapper{}, "painting")

	got, err := repo.Find(context.Background(),
		catalog.WithOrderDesc("season_number"),
		catalog.WithLimit(2),
		catalog.WithOffset(1),
	)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Season != 3 || got[1].Season != 2 {
		t.Errorf("seasons = %d, %d; want 3, 2", got[0].Season, got[1].Season)
	}
}

func TestRepositoryDeleteBy(t *testing.T) {
	db := testdb.WithSchema(t, paintingsSchema)
	seed(t, db, "Mountain Majesty", "A Walk in the Woods")

	repo := database.NewRepository[painting, paintingModel](db, paintingMapper{}, "painting")
	ctx := context.Background()

	if err := repo.DeleteBy(ctx, catalog.WithCondition("title", "Mountain Majesty")); err != nil {
		t.Fatalf("DeleteBy: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}
