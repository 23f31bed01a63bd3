package catalog

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	domcat "github.com/kailas-cloud/sigimsae/internal/domain/catalog"
	"github.com/kailas-cloud/sigimsae/internal/domain/record"
)

// xmlCatalog mirrors the ornament file: <ornaments><instrument><category><ornament>.
type xmlCatalog struct {
	XMLName     xml.Name        `xml:"ornaments"`
	Instruments []xmlInstrument `xml:"instrument"`
}

type xmlInstrument struct {
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Korean     string        `xml:"korean,attr"`
	Categories []xmlCategory `xml:"category"`
}

type xmlCategory struct {
	ID        string        `xml:"id,attr"`
	Name      string        `xml:"name,attr"`
	Korean    string        `xml:"korean,attr"`
	Ornaments []xmlOrnament `xml:"ornament"`
}

type xmlOrnament struct {
	ID              string `xml:"id"`
	Name            string `xml:"name"`
	Filename        string `xml:"filename"`
	Description     string `xml:"description"`
	AutoAlign       string `xml:"autoalign"`
	RightColumnOnly string `xml:"rightColumnOnly"`
	ImagePath       string `xml:"imagePath"`
}

// FileLoader loads the catalog from an XML file (implements usecase/catalog.Loader).
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Path returns the catalog file path.
func (l *FileLoader) Path() string { return l.path }

// Load reads and parses the catalog file.
func (l *FileLoader) Load() (*domcat.Catalog, error) {
	return LoadFile(l.path)
}

// LoadFile reads and parses the catalog file at path.
func LoadFile(path string) (*domcat.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes catalog XML. Records take their instrument and category names
// from the parents' korean attributes. Ornaments without an ID are skipped.
func Parse(data []byte) (*domcat.Catalog, error) {
	var doc xmlCatalog
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	instruments := make([]domcat.Instrument, 0, len(doc.Instruments))
	var records []record.Record
	for _, in := range doc.Instruments {
		instruments = append(instruments, domcat.Instrument{
			ID:     in.ID,
			Name:   in.Name,
			Korean: in.Korean,
		})
		for _, cat := range in.Categories {
			for _, o := range cat.Ornaments {
				r, err := record.New(
					strings.TrimSpace(o.ID),
					o.Name,
					o.Description,
					in.Korean,
					cat.Korean,
					record.Meta{
						InstrumentID:    in.ID,
						CategoryID:      cat.ID,
						Filename:        o.Filename,
						ImagePath:       o.ImagePath,
						AutoAlign:       strings.TrimSpace(o.AutoAlign) == "true",
						RightColumnOnly: strings.TrimSpace(o.RightColumnOnly) == "true",
					},
				)
				if err != nil {
					continue
				}
				records = append(records, r)
			}
		}
	}

	return domcat.New(instruments, records, Fingerprint(data)), nil
}

// Fingerprint hashes raw catalog bytes.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}
