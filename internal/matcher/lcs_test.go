package matcher

import (
	"strings"
	"testing"
)

func TestLCSLength(t *testing.T) {
	testCases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"ha noi", "", 0},
		{"ha noi", "ha noi", 2},
		{"ha noi", "ha nam", 1},
		{"nam tu liem", "tu liem", 2},
		{"a b c d", "b d", 2},
		// Đảo thứ tự: LCS giữ được phần thứ tự chung dài nhất
		{"son thinh", "thinh son", 1},
		{"123 nguyen van linh cau dien", "cau dien", 2},
	}

	for _, tc := range testCases {
		a, b := strings.Fields(tc.a), strings.Fields(tc.b)
		if got := LCSLength(a, b); got != tc.want {
			t.Errorf("LCSLength(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
		// LCS đối xứng
		if got := LCSLength(b, a); got != tc.want {
			t.Errorf("LCSLength(%q, %q) = %d, want %d (symmetry)", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	eq := func(a, b float64) bool { d := a - b; return d < 1e-12 && d > -1e-12 }

	if s := Similarity(nil, nil); s != 0 {
		t.Errorf("Similarity(nil,nil) = %f, want 0", s)
	}
	if s := Similarity(strings.Fields("ha noi"), strings.Fields("ha noi")); !eq(s, 1) {
		t.Errorf("identical sequences must score 1, got %f", s)
	}
	// 2*1/(2+2) = 0.5
	if s := Similarity(strings.Fields("ha nol"), strings.Fields("ha noi")); !eq(s, 0.5) {
		t.Errorf("Similarity(ha nol, ha noi) = %f, want 0.5", s)
	}
}

// Điểm similarity không giảm khi dãy con chung thật sự dài ra, với độ dài
// input/candidate giữ nguyên.
func TestSimilarity_Monotonic(t *testing.T) {
	candidate := strings.Fields("a b c d")

	inputs := []string{
		"x y z w", // LCS 0
		"a y z w", // LCS 1
		"a b z w", // LCS 2
		"a b c w", // LCS 3
		"a b c d", // LCS 4
	}

	prev := -1.0
	for _, in := range inputs {
		s := Similarity(strings.Fields(in), candidate)
		if s < prev {
			t.Errorf("similarity giảm tại %q: %f < %f", in, s, prev)
		}
		prev = s
	}
}

func TestBestWindowSimilarity(t *testing.T) {
	// Tên nằm nguyên vẹn giữa token ngoài lề: cửa sổ đúng phải đạt điểm 1,
	// trong khi so cả chuỗi bị pha loãng dưới ngưỡng.
	input := strings.Fields("123 nguyen van linh cau dien nam tu liem")
	candidate := strings.Fields("cau dien")

	if full := Similarity(input, candidate); full >= 0.5 {
		t.Fatalf("full-sequence similarity bất ngờ cao: %f", full)
	}
	if got := bestWindowSimilarity(input, candidate); got != 1.0 {
		t.Errorf("bestWindowSimilarity = %f, want 1.0", got)
	}

	// Input ngắn hơn candidate: so thẳng, không cửa sổ.
	if got := bestWindowSimilarity(strings.Fields("ha"), strings.Fields("ha noi")); got == 0 {
		t.Error("input ngắn vẫn phải được chấm điểm")
	}
}
