// =============================================================================
// XML Contract Corrector - Demonstration Dataset
// =============================================================================
//
// A small built-in reference table used for demonstrations and smoke tests
// when the real table is unreachable. It is only ever substituted when the
// operator enables allow_demo_data; there is no implicit fallback anywhere
// in the engine.
//
// =============================================================================

package refdata

import "context"

// demoRecords is the named demonstration dataset: two orders of the LV2
// agency with distinct status levels.
var demoRecords = []Record{
	{
		OrderID:        "000054",
		AgencyCode:     "LV2-LV2",
		Status:         "N2 - Niveau 2 (4B +)",
		Classification: "04B - 225",
		HRBP:           "Gabrielle Humbert",
	},
	{
		OrderID:        "000646",
		AgencyCode:     "LV2-LV2",
		Status:         "N1 - Niveau 1 (2A / 4A)",
		Classification: "03B - 195 Equipe",
		HRBP:           "Houria Gherras",
	},
}

// DemoTable returns a fresh copy of the demonstration dataset.
func DemoTable() *Table {
	return NewTable(demoRecords, "Numéro de commande", nil)
}

// DemoSource serves the demonstration dataset. It never fails.
type DemoSource struct{}

// Name implements Source.
func (DemoSource) Name() string {
	return "demonstration dataset"
}

// Load implements Source.
func (DemoSource) Load(ctx context.Context) (*Table, error) {
	_ = ctx
	return DemoTable(), nil
}
