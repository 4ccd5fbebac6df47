package matcher

// LCSLength độ dài dãy con chung dài nhất giữa hai chuỗi token.
// DP hai hàng cuộn, O(|a|×|b|) thời gian, O(min(|a|,|b|)) bộ nhớ, danh sách
// ward lớn nhất vẫn nằm trong ngân sách cấp phát per-call.
func LCSLength(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// b là chiều ngắn để hàng DP nhỏ nhất
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	return prev[len(b)]
}

// Similarity điểm tương đồng token-level trong [0,1]:
// 2*LCS / (len(input) + len(candidate)). Chịu được chèn, xóa, đảo thứ tự
// và token thừa; bằng 1 khi hai chuỗi trùng nhau.
func Similarity(input, candidate []string) float64 {
	total := len(input) + len(candidate)
	if total == 0 {
		return 0
	}
	return 2 * float64(LCSLength(input, candidate)) / float64(total)
}

// bestWindowSimilarity điểm LCS tốt nhất giữa tên candidate và các cửa sổ
// token liên tiếp của input (độ dài |candidate|±1). Input địa chỉ thật chứa
// nhiều token ngoài lề (số nhà, tên đường); so cả chuỗi sẽ pha loãng điểm
// xuống dưới ngưỡng dù tên nằm nguyên vẹn trong đó.
func bestWindowSimilarity(input, candidate []string) float64 {
	if len(input) == 0 || len(candidate) == 0 {
		return 0
	}
	if len(input) <= len(candidate)+1 {
		return Similarity(input, candidate)
	}

	best := 0.0
	minW := len(candidate) - 1
	if minW < 1 {
		minW = 1
	}
	maxW := len(candidate) + 1
	for w := minW; w <= maxW && w <= len(input); w++ {
		for start := 0; start+w <= len(input); start++ {
			if s := Similarity(input[start:start+w], candidate); s > best {
				best = s
			}
		}
	}
	return best
}
