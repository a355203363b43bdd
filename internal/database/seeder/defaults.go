package seeder

func Defaults() []Seeder {
	return []Seeder{
		ScholarshipSourcesSeeder{},
		ScholarshipsSeeder{},
		DemoStudentsSeeder{},
	}
}
