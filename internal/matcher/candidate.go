package matcher

import (
	"github.com/address-classifier/app/models"
)

// Candidate kết quả trung gian do một tier sinh ra cho một cấp. Sống trong
// phạm vi một lần Classify, không chia sẻ giữa các call.
type Candidate struct {
	Entity *models.GeoEntity
	Method models.MatchMethod
	Score  float64
	// Span token đã tiêu thụ trên input; chỉ tier 1 xác định được,
	// các tier mờ để Start = End = -1.
	Start int
	End   int
}

// noSpan candidate không gắn với span cụ thể (tier 2, tier 3).
func noSpan(e *models.GeoEntity, method models.MatchMethod, score float64) Candidate {
	return Candidate{Entity: e, Method: method, Score: score, Start: -1, End: -1}
}
