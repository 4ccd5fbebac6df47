package matcher

import (
	"github.com/agnivade/levenshtein"
)

// BoundedDistance khoảng cách Levenshtein giữa s1 và s2, giới hạn trong
// maxEdits phép sửa. Trả về maxEdits+1 làm sentinel "vượt ngân sách" thay vì
// tính chính xác phần vượt.
//
// Wagner–Fischer thu hẹp vào dải chéo rộng 2*maxEdits+1, hai hàng cuộn.
// Thoát sớm: chênh lệch độ dài vượt maxEdits thì khỏi tính bảng; min của một
// hàng đã vượt maxEdits thì các hàng sau không thể nhỏ lại.
//
// Trong dải, hàm đối xứng: BoundedDistance(a,b,k) == BoundedDistance(b,a,k).
// Bất đẳng thức tam giác không được bảo toàn khi sentinel cắt, đây là
// xấp xỉ chấp nhận được, không phải bug.
func BoundedDistance(s1, s2 string, maxEdits int) int {
	sentinel := maxEdits + 1
	if maxEdits < 0 {
		return 0
	}

	r1, r2 := []rune(s1), []rune(s2)
	n, m := len(r1), len(r2)
	if diff := n - m; diff > maxEdits || -diff > maxEdits {
		return sentinel
	}

	// Dải phủ cả bảng: khoảng cách chính xác rẻ hơn là quản lý biên dải.
	if maxEdits >= n && maxEdits >= m {
		if d := levenshtein.ComputeDistance(s1, s2); d <= maxEdits {
			return d
		}
		return sentinel
	}

	const inf = int(^uint(0) >> 1)
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := range prev {
		if j <= maxEdits {
			prev[j] = j
		} else {
			prev[j] = inf
		}
	}

	for i := 1; i <= n; i++ {
		lo := i - maxEdits
		if lo < 1 {
			lo = 1
		}
		hi := i + maxEdits
		if hi > m {
			hi = m
		}

		for j := range curr {
			curr[j] = inf
		}
		if i <= maxEdits {
			curr[0] = i
		}

		rowMin := curr[0]
		for j := lo; j <= hi; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			best := inf
			if prev[j-1] != inf && prev[j-1]+cost < best {
				best = prev[j-1] + cost
			}
			if prev[j] != inf && prev[j]+1 < best {
				best = prev[j] + 1
			}
			if curr[j-1] != inf && curr[j-1]+1 < best {
				best = curr[j-1] + 1
			}
			curr[j] = best
			if best < rowMin {
				rowMin = best
			}
		}

		if rowMin > maxEdits {
			return sentinel
		}
		prev, curr = curr, prev
	}

	if prev[m] > maxEdits {
		return sentinel
	}
	return prev[m]
}

// editScore điểm cố định cho một match tier 3: 1 - distance/maxEdits.
func editScore(distance, maxEdits int) float64 {
	if maxEdits <= 0 {
		return 0
	}
	return 1 - float64(distance)/float64(maxEdits)
}
