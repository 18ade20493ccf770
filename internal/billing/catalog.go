// Package billing computes what a school owes for its subscription from
// the plan catalog and its measured usage.
package billing

// GiB is the storage billing unit. Overage is billed per started gigabyte.
const GiB = int64(1 << 30)

// Included are the allowances bundled in a plan's base price.
type Included struct {
	Cycles    int64 `mapstructure:"cycles"`
	Students  int64 `mapstructure:"students"`
	StorageGB int64 `mapstructure:"storageGb"`
}

// UnitPrices are the per-unit supplements charged beyond the allowances.
type UnitPrices struct {
	PerCycleMinor     int64 `mapstructure:"perCycle"`
	PerStudentMinor   int64 `mapstructure:"perStudent"`
	PerStorageGBMinor int64 `mapstructure:"perStorageGb"`
}

// PlanSpec prices one catalog plan. AllInclusive plans charge the base
// price only, regardless of usage or enabled modules.
type PlanSpec struct {
	BaseMinor    int64      `mapstructure:"base"`
	Included     Included   `mapstructure:"included"`
	UnitPrices   UnitPrices `mapstructure:"unitPrices"`
	AllInclusive bool       `mapstructure:"allInclusive"`
}

// Catalog is the full pricing table, keyed by plan name. Module prices are
// flat monthly supplements per enabled optional module.
type Catalog struct {
	Plans        map[string]PlanSpec `mapstructure:"plans"`
	ModulesMinor map[string]int64    `mapstructure:"modules"`
}

// DefaultCatalog is the shipped pricing table, used when no billing.yml
// overrides it. Prices are XOF.
func DefaultCatalog() Catalog {
	return Catalog{
		Plans: map[string]PlanSpec{
			// The entry plan never bills per-unit overage: its allowances
			// are hard limits enforced at signup, so unit prices stay zero.
			"Essentiel": {
				BaseMinor: 0,
				Included:  Included{Cycles: 1, Students: 100, StorageGB: 2},
			},
			"Pro": {
				BaseMinor: 25_000,
				Included:  Included{Cycles: 3, Students: 500, StorageGB: 20},
				UnitPrices: UnitPrices{
					PerCycleMinor:     4_000,
					PerStudentMinor:   40,
					PerStorageGBMinor: 800,
				},
			},
			"Premium": {
				BaseMinor:    50_000,
				AllInclusive: true,
			},
		},
		ModulesMinor: map[string]int64{
			"cantine":      5_000,
			"transport":    5_000,
			"bibliotheque": 3_000,
			"sms":          7_500,
		},
	}
}
