package paginate

import "testing"

func TestParsePage(t *testing.T) {
	if ParsePage("") != 1 {
		t.Fatalf("absent page should be 1")
	}
	if ParsePage("abc") != 1 {
		t.Fatalf("invalid page should be 1")
	}
	if ParsePage("-3") != 1 {
		t.Fatalf("negative page should be 1")
	}
	if ParsePage("4") != 4 {
		t.Fatalf("expected page 4")
	}
}

func TestWindowSplitsElevenRows(t *testing.T) {
	meta, offset := Window(11, 1)
	if meta.TotalPages != 2 || meta.Count != 11 || offset != 0 {
		t.Fatalf("unexpected first page: %+v offset=%d", meta, offset)
	}

	meta, offset = Window(11, 2)
	if meta.Page != 2 || offset != 10 {
		t.Fatalf("unexpected second page: %+v offset=%d", meta, offset)
	}
}

func TestWindowClampsOutOfRange(t *testing.T) {
	meta, offset := Window(11, 99)
	if meta.Page != 2 || offset != 10 {
		t.Fatalf("expected clamp to last page, got %+v offset=%d", meta, offset)
	}

	meta, offset = Window(11, 0)
	if meta.Page != 1 || offset != 0 {
		t.Fatalf("expected clamp to first page, got %+v offset=%d", meta, offset)
	}
}

func TestWindowEmptyCollection(t *testing.T) {
	meta, offset := Window(0, 3)
	if meta.Page != 1 || meta.TotalPages != 1 || meta.Count != 0 || offset != 0 {
		t.Fatalf("expected single empty page, got %+v offset=%d", meta, offset)
	}
}
