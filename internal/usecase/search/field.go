package search

import (
	"strings"

	"github.com/kailas-cloud/sigimsae/internal/domain/hangul"
	"github.com/kailas-cloud/sigimsae/internal/domain/record"
)

// defaultFieldWeight applies to fields missing from fieldWeights.
const defaultFieldWeight = 0.5

var fieldWeights = map[string]float64{
	record.FieldName:           1.0,
	record.FieldInstrumentName: 0.85,
	record.FieldCategoryName:   0.7,
	record.FieldDescription:    0.45,
}

func fieldWeight(name string) float64 {
	if w, ok := fieldWeights[name]; ok {
		return w
	}
	return defaultFieldWeight
}

// fieldScore compares a normalized query against a raw field.
// An empty normalized query is contained in every non-empty field.
func fieldScore(sc Scorer, queryNorm, field string) float64 {
	if field == "" {
		return 0
	}
	fieldNorm := hangul.Normalize(field)
	if strings.Contains(fieldNorm, queryNorm) {
		return 1
	}
	return max(sc.PartialRatio(queryNorm, fieldNorm), sc.Similarity(queryNorm, fieldNorm))
}

// choseongFieldScore compares a choseong query against the field's leading consonants.
func choseongFieldScore(sc Scorer, queryCho, field string) float64 {
	if field == "" {
		return 0
	}
	fieldCho := hangul.ToChoseong(field)
	if fieldCho == "" {
		return 0
	}
	if strings.Contains(fieldCho, queryCho) {
		return 1
	}
	return max(sc.PartialRatio(queryCho, fieldCho), sc.Similarity(queryCho, fieldCho))
}

// recordScore is the best weighted field score. Scanning stops once a field reaches 1.
func recordScore(r *record.Record, score func(field string) float64) float64 {
	best := 0.0
	for _, name := range record.Fields {
		weighted := score(r.Field(name)) * fieldWeight(name)
		if weighted > best {
			best = weighted
		}
		if best >= 1 {
			break
		}
	}
	return best
}
