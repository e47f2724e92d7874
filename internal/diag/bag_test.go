package diag

import (
	"testing"

	"luapretty/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}

	ReportWarning(r, LexBadEscape, source.Span{Start: 4, End: 6}, "bad escape").Emit()
	if bag.HasErrors() {
		t.Fatal("warning must not count as error")
	}
	ReportError(r, SynUnexpectedToken, source.Span{Start: 1, End: 2}, "unexpected").
		WithNote(source.Span{Start: 0, End: 1}, "opened here").
		Emit()
	if bag.Add(NewError(SynExpectEnd, source.Span{}, "dropped")) {
		t.Fatal("bag over limit must refuse diagnostics")
	}
	if bag.Len() != 2 || !bag.HasErrors() {
		t.Fatalf("len=%d hasErrors=%v", bag.Len(), bag.HasErrors())
	}

	bag.Sort()
	first, ok := bag.First()
	if !ok || first.Code != SynUnexpectedToken || len(first.Notes) != 1 {
		t.Fatalf("First() = %+v, %v", first, ok)
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, LexUnknownChar, source.Span{}, "x")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected single diagnostic, got %d", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		IOReadError:        "IO4001",
		UnknownCode:        "E0000",
	}
	for c, want := range tests {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if got := SynExpectEnd.String(); got != "[SYN2005]: Expected 'end'" {
		t.Errorf("String() = %q", got)
	}
}
