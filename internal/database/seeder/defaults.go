package seeder

import "time"

func Defaults() []Seeder {
	return []Seeder{
		JobPostingsSeeder{Now: time.Now},
	}
}
