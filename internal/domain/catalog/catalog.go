package catalog

import "github.com/kailas-cloud/sigimsae/internal/domain/record"

// Instrument is a top-level catalog group.
type Instrument struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Korean string `json:"korean"`
}

// Statistics summarizes catalog contents.
type Statistics struct {
	TotalOrnaments   int            `json:"total_ornaments"`
	TotalInstruments int            `json:"total_instruments"`
	TotalCategories  int            `json:"total_categories"`
	Instruments      map[string]int `json:"instruments"`
}

// Catalog is an immutable snapshot of the ornament catalog.
type Catalog struct {
	instruments []Instrument
	records     []record.Record
	categories  []string
	byID        map[string]int
	fingerprint uint64
}

// New builds a snapshot. fingerprint identifies the source content (0 if unknown).
// On duplicate IDs the first record wins lookups; all records stay searchable.
func New(instruments []Instrument, records []record.Record, fingerprint uint64) *Catalog {
	c := &Catalog{
		instruments: append([]Instrument(nil), instruments...),
		records:     append([]record.Record(nil), records...),
		byID:        make(map[string]int, len(records)),
		fingerprint: fingerprint,
	}

	seenCat := make(map[string]struct{})
	for i := range c.records {
		r := &c.records[i]
		if _, ok := c.byID[r.ID()]; !ok {
			c.byID[r.ID()] = i
		}
		if _, ok := seenCat[r.CategoryName()]; !ok {
			seenCat[r.CategoryName()] = struct{}{}
			c.categories = append(c.categories, r.CategoryName())
		}
	}
	return c
}

// Records returns all records in catalog order. The slice is a copy.
func (c *Catalog) Records() []record.Record {
	return append([]record.Record(nil), c.records...)
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Get looks a record up by ID.
func (c *Catalog) Get(id string) (record.Record, bool) {
	i, ok := c.byID[id]
	if !ok {
		return record.Record{}, false
	}
	return c.records[i], true
}

// ByInstrument returns records whose instrument name equals name.
func (c *Catalog) ByInstrument(name string) []record.Record {
	var out []record.Record
	for i := range c.records {
		if c.records[i].InstrumentName() == name {
			out = append(out, c.records[i])
		}
	}
	return out
}

// ByCategory returns records whose category name equals name.
func (c *Catalog) ByCategory(name string) []record.Record {
	var out []record.Record
	for i := range c.records {
		if c.records[i].CategoryName() == name {
			out = append(out, c.records[i])
		}
	}
	return out
}

// Instruments returns the instrument list.
func (c *Catalog) Instruments() []Instrument {
	return append([]Instrument(nil), c.instruments...)
}

// Categories returns distinct category names in first-seen order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Fingerprint identifies the content the snapshot was built from.
func (c *Catalog) Fingerprint() uint64 { return c.fingerprint }

// Statistics counts records overall and per instrument.
func (c *Catalog) Statistics() Statistics {
	st := Statistics{
		TotalOrnaments:   len(c.records),
		TotalInstruments: len(c.instruments),
		TotalCategories:  len(c.categories),
		Instruments:      make(map[string]int, len(c.instruments)),
	}
	for _, in := range c.instruments {
		st.Instruments[in.Korean] = 0
	}
	for i := range c.records {
		if _, ok := st.Instruments[c.records[i].InstrumentName()]; ok {
			st.Instruments[c.records[i].InstrumentName()]++
		}
	}
	return st
}
