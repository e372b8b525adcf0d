package seeder

func Defaults() []Seeder {
	return []Seeder{
		ProfessionDescriptionsSeeder{Items: DefaultProfessionDescriptions},
	}
}
