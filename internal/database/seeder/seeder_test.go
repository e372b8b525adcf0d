package seeder

import (
	"context"
	"errors"
	"testing"

	"careerpath/internal/domain/profession"
	"careerpath/internal/domain/store"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/testutil/memstore"
)

func TestProfessionDescriptionsSeeder_Idempotent(t *testing.T) {
	ms := memstore.New()
	ms.Seed(profession.TableDescriptions, store.Row{
		"profession":  "combat_officer",
		"title":       "Custom",
		"description": "kept as is",
	})
	r := Runner{Seeders: Defaults(), Log: logger.NewNop()}
	ctx := context.Background()

	if err := r.Run(ctx, ms); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := r.Run(ctx, ms); err != nil {
		t.Fatalf("second run: %v", err)
	}

	rows := ms.Rows(profession.TableDescriptions)
	if len(rows) != len(DefaultProfessionDescriptions) {
		t.Fatalf("expected %d descriptions, got %d", len(DefaultProfessionDescriptions), len(rows))
	}
	for _, r := range rows {
		if r["profession"] == "combat_officer" && r["description"] != "kept as is" {
			t.Fatalf("existing description was overwritten: %v", r)
		}
	}
	if n := ms.Called("insert:" + profession.TableDescriptions); n != 1 {
		t.Fatalf("expected a single insert across both runs, got %d", n)
	}
}

func TestRunner_WrapsSeederErrors(t *testing.T) {
	ms := memstore.New()
	boom := store.NewError("permission denied for table profession_descriptions")
	ms.Fail["select:"+profession.TableDescriptions] = boom

	err := Runner{Seeders: Defaults()}.Run(context.Background(), ms)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}

type lockingTables struct {
	*memstore.Store
	locked []string
	err    error
}

func (l *lockingTables) Transact(_ context.Context, lock []string, fn func(store.Tables) error) error {
	l.locked = append(l.locked, lock...)
	if err := fn(l.Store); err != nil {
		l.err = err
		return err
	}
	return nil
}

func TestProfessionDescriptionsSeeder_RunsInsideTransaction(t *testing.T) {
	lt := &lockingTables{Store: memstore.New()}

	if err := (ProfessionDescriptionsSeeder{Items: DefaultProfessionDescriptions}).Run(context.Background(), lt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lt.locked) != 1 || lt.locked[0] != profession.TableDescriptions {
		t.Fatalf("expected a lock on %s, got %v", profession.TableDescriptions, lt.locked)
	}
	if n := len(lt.Rows(profession.TableDescriptions)); n != len(DefaultProfessionDescriptions) {
		t.Fatalf("expected %d descriptions, got %d", len(DefaultProfessionDescriptions), n)
	}

	boom := store.NewError("duplicate key value violates unique constraint")
	lt.Store = memstore.New()
	lt.Fail["insert:"+profession.TableDescriptions] = boom
	if err := (ProfessionDescriptionsSeeder{Items: DefaultProfessionDescriptions}).Run(context.Background(), lt); !errors.Is(err, boom) {
		t.Fatalf("expected the insert error, got %v", err)
	}
	if !errors.Is(lt.err, boom) {
		t.Fatalf("transaction should see the failure, got %v", lt.err)
	}
}
