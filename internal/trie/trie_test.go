package trie

import (
	"reflect"
	"strings"
	"testing"
)

func TestTrie_RoundTrip(t *testing.T) {
	names := map[string]int{
		"nghe an":     1,
		"ha noi":      2,
		"do luong":    10,
		"nam tu liem": 11,
		"thinh son":   100,
		"cau dien":    101,
	}

	tr := New()
	for name, id := range names {
		tr.Insert(name, id)
	}

	if tr.Len() != len(names) {
		t.Fatalf("Len = %d, want %d", tr.Len(), len(names))
	}

	for name, id := range names {
		tokens := strings.Fields(name)

		got := tr.LookupExact(tokens)
		if len(got) != 1 || got[0] != id {
			t.Errorf("LookupExact(%q) = %v, want [%d]", name, got, id)
		}

		// Scan trên chuỗi chỉ chứa đúng tên đó phải trả về một span phủ
		// toàn bộ chuỗi token.
		spans := tr.Scan(tokens)
		if len(spans) != 1 {
			t.Fatalf("Scan(%q) returned %d spans, want 1", name, len(spans))
		}
		if spans[0].Start != 0 || spans[0].End != len(tokens) {
			t.Errorf("Scan(%q) span = [%d,%d), want [0,%d)", name, spans[0].Start, spans[0].End, len(tokens))
		}
	}
}

func TestTrie_LookupExactMiss(t *testing.T) {
	tr := New()
	tr.Insert("nghe an", 1)

	for _, miss := range [][]string{
		{"nghe"},
		{"nghe", "an", "extra"},
		{"an"},
		nil,
	} {
		if got := tr.LookupExact(miss); miss != nil && got != nil {
			t.Errorf("LookupExact(%v) = %v, want nil", miss, got)
		}
	}
}

func TestTrie_DuplicateNames(t *testing.T) {
	// Phường trùng tên ở hai quận khác nhau: terminal giữ cả hai id.
	tr := New()
	tr.Insert("tan binh", 501)
	tr.Insert("tan binh", 502)

	got := tr.LookupExact([]string{"tan", "binh"})
	if !reflect.DeepEqual(got, []int{501, 502}) {
		t.Errorf("LookupExact = %v, want [501 502]", got)
	}
	if tr.Len() != 1 {
		t.Errorf("Len = %d, want 1 (duplicate names share a terminal)", tr.Len())
	}
}

func TestTrie_ScanInsideLongerInput(t *testing.T) {
	tr := New()
	tr.Insert("nghe an", 1)
	tr.Insert("do luong", 10)

	tokens := strings.Fields("xa thinh son huyen do luong tinh nghe an")
	spans := tr.Scan(tokens)
	if len(spans) != 2 {
		t.Fatalf("Scan returned %d spans, want 2", len(spans))
	}

	// Cùng độ dài 2 token: span bên phải ("nghe an") phải đứng trước.
	if spans[0].IDs[0] != 1 || spans[0].Start != 7 {
		t.Errorf("first span = %+v, want nghe an at 7", spans[0])
	}
	if spans[1].IDs[0] != 10 || spans[1].Start != 4 {
		t.Errorf("second span = %+v, want do luong at 4", spans[1])
	}
}

func TestTrie_TieBreakPrefersLongerSpan(t *testing.T) {
	tr := New()
	tr.Insert("ha", 1)
	tr.Insert("ha noi", 2)

	spans := tr.Scan([]string{"ha", "noi"})
	if len(spans) != 2 {
		t.Fatalf("Scan returned %d spans, want 2", len(spans))
	}
	if spans[0].IDs[0] != 2 || spans[0].Len() != 2 {
		t.Errorf("longest span must win, got %+v", spans[0])
	}
}

func TestTrie_ScanRespectsMaxSpan(t *testing.T) {
	tr := New()
	tr.SetMaxSpan(2)
	tr.Insert("a b c", 1)

	if spans := tr.Scan([]string{"a", "b", "c"}); spans != nil {
		t.Errorf("span over cap must not match, got %+v", spans)
	}
}

func TestTrie_EarlyAbort(t *testing.T) {
	tr := New()
	tr.Insert("nghe an", 1)

	// Không có cạnh nào cho token đầu: không span nào được tạo.
	if spans := tr.Scan(strings.Fields("hoan toan khac")); spans != nil {
		t.Errorf("Scan = %+v, want nil", spans)
	}
}
