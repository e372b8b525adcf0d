package seeder

import (
	"context"
	"fmt"

	"careerpath/internal/domain/profession"
	"careerpath/internal/domain/store"
)

type ProfessionDescription struct {
	Profession  string
	Title       string
	Description string
}

// DefaultProfessionDescriptions covers every profession key the aptitude
// tests score against.
var DefaultProfessionDescriptions = []ProfessionDescription{
	{
		Profession:  "combat_officer",
		Title:       "Combat Officer",
		Description: "Leads units in the field, plans and executes tactical operations and takes responsibility for the people under command.",
	},
	{
		Profession:  "logistics_officer",
		Title:       "Logistics Officer",
		Description: "Plans supply, transport and maintenance so that units have what they need, where and when they need it.",
	},
	{
		Profession:  "intelligence_officer",
		Title:       "Intelligence Officer",
		Description: "Collects and analyses information, assesses threats and briefs commanders to support decision making.",
	},
	{
		Profession:  "medical_officer",
		Title:       "Medical Officer",
		Description: "Provides medical care to personnel, organises evacuation and keeps units fit for service.",
	},
	{
		Profession:  "engineering_officer",
		Title:       "Engineering Officer",
		Description: "Designs, builds and maintains fortifications, equipment and infrastructure, and clears obstacles for other units.",
	},
}

// ProfessionDescriptionsSeeder inserts the descriptions whose profession key
// is not present yet. Existing rows are left untouched.
type ProfessionDescriptionsSeeder struct {
	Items []ProfessionDescription
}

func (ProfessionDescriptionsSeeder) Name() string { return "profession_descriptions" }

// Run holds a write lock on the descriptions table between the check and the
// insert when the backend supports transactions.
func (s ProfessionDescriptionsSeeder) Run(ctx context.Context, tables store.Tables) error {
	if tx, ok := tables.(store.Transactor); ok {
		return tx.Transact(ctx, []string{profession.TableDescriptions}, func(t store.Tables) error {
			return s.seed(ctx, t)
		})
	}
	return s.seed(ctx, tables)
}

func (s ProfessionDescriptionsSeeder) seed(ctx context.Context, tables store.Tables) error {
	existing, err := tables.Select(ctx, store.Query{
		Table:   profession.TableDescriptions,
		Columns: []string{profession.ColProfession},
	})
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		have[fmt.Sprint(r[profession.ColProfession])] = struct{}{}
	}

	var rows []store.Row
	for _, it := range s.Items {
		if _, ok := have[it.Profession]; ok {
			continue
		}
		have[it.Profession] = struct{}{}
		rows = append(rows, store.Row{
			profession.ColProfession:  it.Profession,
			"title":                   it.Title,
			profession.ColDescription: it.Description,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	_, err = tables.Insert(ctx, profession.TableDescriptions, rows)
	return err
}
