package result

import (
	"testing"

	"github.com/kailas-cloud/sigimsae/internal/domain/record"
)

func TestNew(t *testing.T) {
	rec := record.Reconstruct("7", "농현", "", "가야금", "농현", record.Meta{})
	r := New(rec, 0.95)

	if got := r.Record(); got.ID() != "7" {
		t.Errorf("Record().ID() = %q", got.ID())
	}
	if r.Score() != 0.95 {
		t.Errorf("Score() = %f", r.Score())
	}
	if !r.Scored() {
		t.Error("Scored() = false")
	}
}

func TestUnscored(t *testing.T) {
	r := Unscored(record.Reconstruct("1", "", "", "", "", record.Meta{}))
	if r.Scored() {
		t.Error("Scored() = true")
	}
	if r.Score() != 0 {
		t.Errorf("Score() = %f", r.Score())
	}
}

func TestRecords(t *testing.T) {
	rs := []Result{
		New(record.Reconstruct("a", "", "", "", "", record.Meta{}), 1),
		Unscored(record.Reconstruct("b", "", "", "", "", record.Meta{})),
	}
	got := Records(rs)
	if len(got) != 2 || got[0].ID() != "a" || got[1].ID() != "b" {
		t.Errorf("Records() = %v", got)
	}
}

func TestSummarize(t *testing.T) {
	rs := []Result{
		New(record.Reconstruct("1", "", "", "가야금", "농현", record.Meta{}), 1),
		New(record.Reconstruct("2", "", "", "가야금", "꾸밈음", record.Meta{}), 1),
		New(record.Reconstruct("3", "", "", "대금", "농현", record.Meta{}), 1),
	}
	st := Summarize(rs)
	if st.Total != 3 {
		t.Errorf("Total = %d", st.Total)
	}
	if st.ByInstrument["가야금"] != 2 || st.ByInstrument["대금"] != 1 {
		t.Errorf("ByInstrument = %v", st.ByInstrument)
	}
	if st.ByCategory["농현"] != 2 || st.ByCategory["꾸밈음"] != 1 {
		t.Errorf("ByCategory = %v", st.ByCategory)
	}
}

func TestSummarize_Empty(t *testing.T) {
	st := Summarize(nil)
	if st.Total != 0 || len(st.ByInstrument) != 0 {
		t.Errorf("unexpected stats: %+v", st)
	}
}
