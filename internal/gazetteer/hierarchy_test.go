package gazetteer

import (
	"testing"

	"github.com/address-classifier/internal/normalizer"
)

func testRecords() []Record {
	return []Record{
		{ID: 1, Name: "Tỉnh Nghệ An", Level: 1},
		{ID: 2, Name: "Thành phố Hà Nội", Level: 1},
		{ID: 10, Name: "Huyện Đô Lương", Level: 2, ParentID: 1},
		{ID: 11, Name: "Quận Nam Từ Liêm", Level: 2, ParentID: 2},
		{ID: 12, Name: "Quận Bắc Từ Liêm", Level: 2, ParentID: 2},
		{ID: 100, Name: "Xã Thịnh Sơn", Level: 3, ParentID: 10},
		{ID: 101, Name: "Xã Lưu Sơn", Level: 3, ParentID: 10},
		{ID: 102, Name: "Phường Cầu Diễn", Level: 3, ParentID: 11},
	}
}

func loadTestGazetteer(t *testing.T) *Gazetteer {
	t.Helper()
	g, err := FromRecords(testRecords(), normalizer.NewTextNormalizer())
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	return g
}

func TestHierarchy_SoundForEveryWard(t *testing.T) {
	g := loadTestGazetteer(t)
	h := g.Hierarchy

	// Mọi ward trong gazetteer phải hợp lệ với đúng chuỗi cha của nó.
	for _, w := range g.Wards {
		d := h.ParentOf(w.ID)
		p := h.ParentOf(d)
		if !h.IsValid(p, d, w.ID) {
			t.Errorf("ward %d (%s): chain (%d,%d,%d) phải hợp lệ", w.ID, w.Name, p, d, w.ID)
		}
	}
}

func TestHierarchy_RejectsWrongDistrict(t *testing.T) {
	h := loadTestGazetteer(t).Hierarchy

	// Cầu Diễn (102) thuộc Nam Từ Liêm (11), không thuộc Đô Lương (10).
	if h.IsValid(1, 10, 102) {
		t.Error("ward ghép sai district phải bị từ chối")
	}
	if h.IsValid(2, 11, 100) {
		t.Error("Thịnh Sơn không thuộc Nam Từ Liêm")
	}
}

func TestHierarchy_Wildcards(t *testing.T) {
	h := loadTestGazetteer(t).Hierarchy

	cases := []struct {
		p, d, w int
		want    bool
	}{
		{0, 0, 0, true},     // toàn wildcard
		{1, 0, 0, true},     // chỉ tỉnh
		{1, 10, 0, true},    // tỉnh + huyện
		{2, 10, 0, false},   // Đô Lương không thuộc Hà Nội
		{1, 0, 100, true},   // ward với district wildcard, resolve qua hai bậc cha
		{2, 0, 100, false},  // Thịnh Sơn không thuộc Hà Nội
		{0, 10, 100, true},  // province wildcard
		{0, 11, 100, false}, // sai district
		{100, 0, 0, false},  // ward id đứng nhầm chỗ province
	}

	for _, tc := range cases {
		if got := h.IsValid(tc.p, tc.d, tc.w); got != tc.want {
			t.Errorf("IsValid(%d,%d,%d) = %v, want %v", tc.p, tc.d, tc.w, got, tc.want)
		}
	}
}

func TestHierarchy_ChildrenOf(t *testing.T) {
	h := loadTestGazetteer(t).Hierarchy

	if got := h.ChildrenOf(10); len(got) != 2 {
		t.Errorf("ChildrenOf(10) = %v, want 2 wards", got)
	}
	if got := h.ChildrenOf(2); len(got) != 2 {
		t.Errorf("ChildrenOf(2) = %v, want 2 districts", got)
	}
	if got := h.ChildrenOf(999); got != nil {
		t.Errorf("ChildrenOf(999) = %v, want nil", got)
	}
}

func TestBuildHierarchy_RejectsOrphans(t *testing.T) {
	records := append(testRecords(), Record{ID: 200, Name: "Xã Mồ Côi", Level: 3, ParentID: 999})
	if _, err := FromRecords(records, normalizer.NewTextNormalizer()); err == nil {
		t.Fatal("orphan parent id phải gây lỗi load")
	}
}

func TestBuildHierarchy_RejectsWrongParentLevel(t *testing.T) {
	records := append(testRecords(), Record{ID: 201, Name: "Xã Sai Cấp", Level: 3, ParentID: 1})
	if _, err := FromRecords(records, normalizer.NewTextNormalizer()); err == nil {
		t.Fatal("ward có parent là tỉnh phải gây lỗi load")
	}
}

func TestGazetteer_NormalizedNames(t *testing.T) {
	g := loadTestGazetteer(t)

	want := map[int]string{
		1:   "nghe an",
		2:   "ha noi",
		10:  "do luong",
		11:  "nam tu liem",
		100: "thinh son",
		102: "cau dien",
	}
	for id, name := range want {
		e := g.Entity(id)
		if e == nil {
			t.Fatalf("Entity(%d) = nil", id)
		}
		if e.NormalizedName != name {
			t.Errorf("entity %d normalized = %q, want %q", id, e.NormalizedName, name)
		}
	}
}
