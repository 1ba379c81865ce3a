package localstore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ewilliams-labs/vibestudio/internal/adapters/badgerdb"
	"github.com/ewilliams-labs/vibestudio/internal/adapters/sqlite"
	"github.com/ewilliams-labs/vibestudio/internal/core/domain"
	"github.com/ewilliams-labs/vibestudio/internal/core/ports"
)

// drivers runs each test against every record store implementation.
var drivers = map[string]func(t *testing.T) ports.RecordStore{
	"sqlite": func(t *testing.T) ports.RecordStore {
		a, err := sqlite.NewAdapter(":memory:")
		if err != nil {
			t.Fatalf("new sqlite adapter: %v", err)
		}
		return a
	},
	"badger": func(t *testing.T) ports.RecordStore {
		s, err := badgerdb.Open(badgerdb.InMemory)
		if err != nil {
			t.Fatalf("open badger: %v", err)
		}
		return s
	},
}

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		{
			ID:    "b1",
			Name:  "The Echoes",
			Genre: "post-rock",
			Bio:   "Loud, then quiet.",
			Image: domain.Placeholder("The Echoes"),
			Albums: []domain.Album{
				{
					ID:     "a1",
					BandID: "b1",
					Title:  "Tides",
					Genre:  "post-rock",
					Year:   2021,
					Cover:  domain.RemoteURL("https://img.test/tides.jpg"),
					Songs: []domain.Song{
						{ID: "s1", AlbumID: "a1", Title: "Ebb", Duration: "6:10", File: domain.LocalHandle("blob:1")},
						{ID: "s2", AlbumID: "a1", Title: "Flow", Duration: "3:45", File: domain.LocalHandle("blob:2"), Cover: domain.Placeholder("s2")},
					},
				},
			},
		},
		{ID: "b2", Name: "Static", Image: domain.Placeholder("Static"), Albums: []domain.Album{}},
	}
}

func TestRepository_CatalogRoundTrip(t *testing.T) {
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			records := open(t)
			defer records.Close()
			repo := NewRepository(records)
			ctx := context.Background()

			want := sampleCatalog()
			if err := repo.SaveCatalog(ctx, "acc-a", want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := repo.LoadCatalog(ctx, "acc-a")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
			}

			other, err := repo.LoadCatalog(ctx, "acc-b")
			if err != nil {
				t.Fatalf("load other: %v", err)
			}
			if len(other) != 0 {
				t.Fatalf("catalog leaked across accounts: %+v", other)
			}
		})
	}
}

func TestRepository_Session(t *testing.T) {
	for name, open := range drivers {
		t.Run(name, func(t *testing.T) {
			records := open(t)
			defer records.Close()
			repo := NewRepository(records)
			ctx := context.Background()

			if _, err := repo.LoadSession(ctx); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound before login, got %v", err)
			}

			acc := domain.Account{ID: "01H", Username: "Echo", Password: "x"}
			if err := repo.SaveSession(ctx, acc); err != nil {
				t.Fatalf("save session: %v", err)
			}
			got, err := repo.LoadSession(ctx)
			if err != nil {
				t.Fatalf("load session: %v", err)
			}
			if got != acc {
				t.Fatalf("session = %+v, want %+v", got, acc)
			}

			if err := repo.ClearSession(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, err := repo.LoadSession(ctx); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound after clear, got %v", err)
			}
		})
	}
}

func TestRepository_Accounts(t *testing.T) {
	records, err := sqlite.NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	defer records.Close()
	repo := NewRepository(records)
	ctx := context.Background()

	empty, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil registry, got %#v", empty)
	}

	want := []domain.Account{{ID: "1", Username: "Echo", Password: "x"}, {ID: "2", Username: "Delta", Password: "y"}}
	if err := repo.SaveAccounts(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("accounts = %+v, want %+v", got, want)
	}
}

func TestRepository_CorruptRecord(t *testing.T) {
	records, err := sqlite.NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	defer records.Close()
	ctx := context.Background()
	if err := records.Put(ctx, CatalogKey("acc"), []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := NewRepository(records).LoadCatalog(ctx, "acc"); err == nil {
		t.Fatal("expected decode error for corrupt record")
	}
}
