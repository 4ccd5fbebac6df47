package models

// MatchMethod tier đã tạo ra kết quả cuối cùng
type MatchMethod string

const (
	MethodExact MatchMethod = "exact"
	MethodLCS   MatchMethod = "lcs"
	MethodEdit  MatchMethod = "edit_distance"
	MethodNone  MatchMethod = "none"
)

// Rank xếp hạng độ mạnh của method; tier càng sâu càng yếu.
func (m MatchMethod) Rank() int {
	switch m {
	case MethodExact:
		return 3
	case MethodLCS:
		return 2
	case MethodEdit:
		return 1
	default:
		return 0
	}
}

// Status constants cho ClassificationResult
const (
	StatusMatched   = "matched"
	StatusPartial   = "partial"
	StatusUnmatched = "unmatched"
)

// ClassificationResult kết quả phân loại của một địa chỉ. Field nào không
// resolve được để nil, graceful degradation, không phải lỗi.
type ClassificationResult struct {
	Province        *EntityRef  `json:"province,omitempty"`
	District        *EntityRef  `json:"district,omitempty"`
	Ward            *EntityRef  `json:"ward,omitempty"`
	Confidence      float64     `json:"confidence"`
	Method          MatchMethod `json:"method"`
	Status          string      `json:"status"`
	NormalizedInput string      `json:"normalized_input"`
}

// IsFull báo cả ba cấp đều đã resolve.
func (r *ClassificationResult) IsFull() bool {
	return r.Province != nil && r.District != nil && r.Ward != nil
}

// IsEmpty báo không cấp nào resolve được.
func (r *ClassificationResult) IsEmpty() bool {
	return r.Province == nil && r.District == nil && r.Ward == nil
}

// Empty kết quả rỗng cho input không phân loại được.
func EmptyResult(normalizedInput string) *ClassificationResult {
	return &ClassificationResult{
		Confidence:      0,
		Method:          MethodNone,
		Status:          StatusUnmatched,
		NormalizedInput: normalizedInput,
	}
}
