package matcher

import (
	"testing"

	"github.com/agnivade/levenshtein"
	"github.com/stretchr/testify/assert"
)

func TestBoundedDistance_Identity(t *testing.T) {
	for _, s := range []string{"", "a", "ha noi", "thi tran do luong"} {
		for k := 0; k <= 3; k++ {
			assert.Equal(t, 0, BoundedDistance(s, s, k), "distance(%q,%q,%d)", s, s, k)
		}
	}
}

func TestBoundedDistance_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"ha noi", "ha nol"},
		{"nghe an", "nge an"},
		{"cau dien", "cau diem"},
		{"thinh son", "thin son"},
		{"abc", "xyz"},
	}
	for _, p := range pairs {
		for k := 0; k <= 3; k++ {
			assert.Equal(t,
				BoundedDistance(p[0], p[1], k),
				BoundedDistance(p[1], p[0], k),
				"symmetry %q/%q k=%d", p[0], p[1], k)
		}
	}
}

func TestBoundedDistance_Values(t *testing.T) {
	testCases := []struct {
		s1, s2   string
		maxEdits int
		want     int
	}{
		{"ha nol", "ha noi", 2, 1},
		{"nge an", "nghe an", 2, 1},
		{"ha noi", "ha nam", 2, 2},
		// Vượt ngân sách: sentinel maxEdits+1, không phải khoảng cách thật
		{"ha noi", "quang ninh", 2, 3},
		{"", "ab", 2, 2},
		{"", "abc", 2, 3}, // chênh lệch độ dài > maxEdits, thoát không tính bảng
	}

	for _, tc := range testCases {
		got := BoundedDistance(tc.s1, tc.s2, tc.maxEdits)
		assert.Equal(t, tc.want, got, "BoundedDistance(%q,%q,%d)", tc.s1, tc.s2, tc.maxEdits)
	}
}

// Trong ngân sách, kết quả phải trùng khoảng cách Levenshtein chính xác;
// ngoài ngân sách chỉ cần sentinel nhất quán với khoảng cách thật.
func TestBoundedDistance_AgreesWithExact(t *testing.T) {
	pairs := [][2]string{
		{"ha noi", "ha nol"},
		{"ha noi", "ha noi"},
		{"nghe an", "nge am"},
		{"do luong", "do luog"},
		{"nam tu liem", "nam tu lien"},
		{"cau dien", "cau giay"},
		{"thinh son", "luu son"},
		{"go cong", "go conk"},
		{"ben tre", "tra vinh"},
	}

	for _, p := range pairs {
		exact := levenshtein.ComputeDistance(p[0], p[1])
		for k := 0; k <= 4; k++ {
			got := BoundedDistance(p[0], p[1], k)
			if exact <= k {
				assert.Equal(t, exact, got, "%q vs %q trong ngân sách k=%d", p[0], p[1], k)
			} else {
				assert.Equal(t, k+1, got, "%q vs %q ngoài ngân sách k=%d", p[0], p[1], k)
			}
		}
	}
}

func TestEditScore(t *testing.T) {
	assert.Equal(t, 1.0, editScore(0, 2))
	assert.Equal(t, 0.5, editScore(1, 2))
	assert.Equal(t, 0.0, editScore(2, 2))
	assert.Equal(t, 0.0, editScore(1, 0))
}
