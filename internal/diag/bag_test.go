package diag

import (
	"testing"

	"csfix/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}

	ReportWarning(r, FixRegionSkipped, source.Span{File: 0, Start: 10, End: 12}, "skipped").Emit()
	ReportError(r, LexUnknownChar, source.Span{File: 0, Start: 2, End: 3}, "stray byte").Emit()
	ReportInfo(r, RunInfo, source.Span{File: 0, Start: 2, End: 3}, "pass").Emit()
	ReportError(r, LexUnknownChar, source.Span{File: 1, Start: 0, End: 1}, "dropped").Emit()

	if bag.Len() != 3 || bag.Dropped() != 1 {
		t.Fatalf("expected 3 kept and 1 dropped, got %d and %d", bag.Len(), bag.Dropped())
	}
	bag.Sort()
	items := bag.Items()
	if items[0].Code != LexUnknownChar || items[1].Code != RunInfo || items[2].Code != FixRegionSkipped {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code.ID(), items[1].Code.ID(), items[2].Code.ID())
	}
	if !bag.HasErrors() {
		t.Error("expected HasErrors")
	}
}

func TestNilBag(t *testing.T) {
	var bag *Bag
	if bag.Len() != 0 || bag.Items() != nil || bag.HasErrors() || bag.Dropped() != 0 {
		t.Fatal("nil bag must read as empty")
	}
	bag.Sort()
}

func TestBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportWarning(BagReporter{Bag: bag}, FixUnmatchedBracket, source.Span{}, "no closer").
		WithNote(source.Span{Start: 4, End: 5}, "opened here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected single diagnostic, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Error("note lost")
	}

	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(source.Span{}, "x").Emit()
	ReportError(nil, UnknownCode, source.Span{}, "nowhere").Emit()
}

func TestDedup(t *testing.T) {
	bag := NewBag(0)
	r := Dedup(BagReporter{Bag: bag})
	for range 3 {
		r.Report(FixUnmatchedBracket, SevWarning, source.Span{Start: 1, End: 2}, "same", nil)
	}
	r.Report(FixUnmatchedBracket, SevWarning, source.Span{Start: 3, End: 4}, "other", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
	if Dedup(nil) != nil {
		t.Error("Dedup(nil) should stay nil")
	}
}

func TestSeverityString(t *testing.T) {
	if SevWarning.String() != "WARNING" || Severity(9).String() != "UNKNOWN" {
		t.Fatal("unexpected severity names")
	}
}
