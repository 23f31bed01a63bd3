package record

import "fmt"

// Searchable field names.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldInstrumentName = "instrumentName"
	FieldCategoryName   = "categoryName"
)

// Fields lists the searchable attributes in scan order.
var Fields = []string{FieldName, FieldDescription, FieldInstrumentName, FieldCategoryName}

// Meta carries pass-through attributes the matcher never reads.
type Meta struct {
	InstrumentID    string
	CategoryID      string
	Filename        string
	ImagePath       string
	AutoAlign       bool
	RightColumnOnly bool
}

// Record is a catalog entry (immutable value object).
type Record struct {
	id             string
	name           string
	description    string
	instrumentName string
	categoryName   string
	meta           Meta
}

// New validates and creates a Record. Only the ID is required; absent text stays empty.
func New(id, name, description, instrumentName, categoryName string, meta Meta) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	return Reconstruct(id, name, description, instrumentName, categoryName, meta), nil
}

// Reconstruct creates a Record without validation.
func Reconstruct(id, name, description, instrumentName, categoryName string, meta Meta) Record {
	return Record{
		id:             id,
		name:           name,
		description:    description,
		instrumentName: instrumentName,
		categoryName:   categoryName,
		meta:           meta,
	}
}

// ID returns the record identifier.
func (r *Record) ID() string { return r.id }

// Name returns the ornament name.
func (r *Record) Name() string { return r.name }

// Description returns the free-text description.
func (r *Record) Description() string { return r.description }

// InstrumentName returns the owning instrument's display name.
func (r *Record) InstrumentName() string { return r.instrumentName }

// CategoryName returns the owning category's display name.
func (r *Record) CategoryName() string { return r.categoryName }

// Meta returns the pass-through attributes.
func (r *Record) Meta() Meta { return r.meta }

// Field returns a searchable attribute by name; unknown names yield "".
func (r *Record) Field(name string) string {
	switch name {
	case FieldName:
		return r.name
	case FieldDescription:
		return r.description
	case FieldInstrumentName:
		return r.instrumentName
	case FieldCategoryName:
		return r.categoryName
	default:
		return ""
	}
}
