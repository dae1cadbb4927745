package engine

import "settlement-quote/internal/model"

var registry = map[string]CalculationHandler{
	model.TypeGuaranteed: &GuaranteedHandler{},
	model.TypeLCP:        &LCPHandler{},
	model.TypeComparison: &ComparisonHandler{},
}

func Get(name string) (CalculationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}
