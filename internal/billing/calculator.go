package billing

import "errors"

var ErrPlanNotPriced = errors.New("plan_not_priced")

// Usage is a school's measured consumption at quote time.
type Usage struct {
	Cycles       int64
	Students     int64
	StorageBytes int64
}

// Supplements break a quote down beyond the plan base.
type Supplements struct {
	CyclesMinor   int64
	StudentsMinor int64
	StorageMinor  int64
	ModulesMinor  int64
}

// Quote is the monthly charge for a school on a given plan.
type Quote struct {
	Plan        string
	BaseMinor   int64
	Supplements Supplements
	TotalMinor  int64
}

// CatalogSource returns the current pricing table. The config holder
// satisfies this so hot reloads apply to the next quote.
type CatalogSource func() Catalog

type Calculator struct {
	catalog CatalogSource
}

func NewCalculator(catalog CatalogSource) *Calculator {
	return &Calculator{catalog: catalog}
}

// Compute prices one month for a school. Usage below the plan allowances
// costs nothing extra; all-inclusive plans short-circuit to the base price.
func (c *Calculator) Compute(plan string, usage Usage, modules []string) (Quote, error) {
	catalog := c.catalog()
	spec, ok := catalog.Plans[plan]
	if !ok {
		return Quote{}, ErrPlanNotPriced
	}

	quote := Quote{Plan: plan, BaseMinor: spec.BaseMinor}
	if spec.AllInclusive {
		quote.TotalMinor = spec.BaseMinor
		return quote, nil
	}

	quote.Supplements.CyclesMinor = overage(usage.Cycles, spec.Included.Cycles) * spec.UnitPrices.PerCycleMinor
	quote.Supplements.StudentsMinor = overage(usage.Students, spec.Included.Students) * spec.UnitPrices.PerStudentMinor
	quote.Supplements.StorageMinor = storageOverageGB(usage.StorageBytes, spec.Included.StorageGB) * spec.UnitPrices.PerStorageGBMinor

	for _, module := range modules {
		quote.Supplements.ModulesMinor += catalog.ModulesMinor[module]
	}

	quote.TotalMinor = quote.BaseMinor +
		quote.Supplements.CyclesMinor +
		quote.Supplements.StudentsMinor +
		quote.Supplements.StorageMinor +
		quote.Supplements.ModulesMinor

	return quote, nil
}

// ExpectedSubscriptionCharge is the amount a payment reference for a
// multi-month extension should carry.
func (c *Calculator) ExpectedSubscriptionCharge(plan string, usage Usage, modules []string, months int) (int64, error) {
	quote, err := c.Compute(plan, usage, modules)
	if err != nil {
		return 0, err
	}
	return quote.TotalMinor * int64(months), nil
}

func overage(used, included int64) int64 {
	if used <= included {
		return 0
	}
	return used - included
}

// storageOverageGB bills every started gigabyte past the allowance.
func storageOverageGB(usedBytes, includedGB int64) int64 {
	overBytes := usedBytes - includedGB*GiB
	if overBytes <= 0 {
		return 0
	}
	return (overBytes + GiB - 1) / GiB
}
