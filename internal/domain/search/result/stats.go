package result

// Stats counts results per instrument and category.
type Stats struct {
	Total        int            `json:"total"`
	ByInstrument map[string]int `json:"by_instrument"`
	ByCategory   map[string]int `json:"by_category"`
}

// Summarize builds Stats for a result list.
func Summarize(results []Result) Stats {
	st := Stats{
		Total:        len(results),
		ByInstrument: make(map[string]int),
		ByCategory:   make(map[string]int),
	}
	for i := range results {
		st.ByInstrument[results[i].record.InstrumentName()]++
		st.ByCategory[results[i].record.CategoryName()]++
	}
	return st
}
