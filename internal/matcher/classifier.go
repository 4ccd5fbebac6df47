// Package matcher cài đặt engine phân loại địa chỉ ba tầng:
// exact (trie) → LCS token → edit distance có chặn, ràng buộc bởi
// hierarchy tỉnh/huyện/xã. Engine bất biến sau khi build; mọi call chỉ
// cấp phát scratch riêng nên chạy song song không cần lock.
package matcher

import (
	"strings"
	"time"

	"github.com/address-classifier/app/models"
	"github.com/address-classifier/internal/gazetteer"
	"github.com/address-classifier/internal/normalizer"
	"github.com/address-classifier/internal/trie"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/xrash/smetrics"
	"go.uber.org/zap"
)

// FieldWeights trọng số từng cấp khi gộp confidence
type FieldWeights struct {
	Province float64 `yaml:"province" json:"province"`
	District float64 `yaml:"district" json:"district"`
	Ward     float64 `yaml:"ward" json:"ward"`
}

// Config tham số engine. Các ngưỡng và luật tie-break đều chỉnh được,
// giá trị mặc định lấy theo hành vi tham chiếu, chưa chắc tối ưu.
type Config struct {
	LCSThreshold float64      `yaml:"lcs_threshold" json:"lcs_threshold"`
	MaxEdits     int          `yaml:"max_edits" json:"max_edits"`
	MaxSpan      int          `yaml:"max_span" json:"max_span"`
	ExactScore   float64      `yaml:"exact_score" json:"exact_score"`
	LCSCap       float64      `yaml:"lcs_cap" json:"lcs_cap"`
	EditCap      float64      `yaml:"edit_cap" json:"edit_cap"`
	Weights      FieldWeights `yaml:"weights" json:"weights"`
	CacheSize    int          `yaml:"cache_size" json:"cache_size"` // 0 = không cache
}

// DefaultConfig cấu hình mặc định theo hành vi tham chiếu.
func DefaultConfig() Config {
	return Config{
		LCSThreshold: 0.4,
		MaxEdits:     2,
		MaxSpan:      trie.DefaultMaxSpan,
		ExactScore:   0.95,
		LCSCap:       0.9,
		EditCap:      0.7,
		Weights:      FieldWeights{Province: 0.4, District: 0.3, Ward: 0.3},
		CacheSize:    4096,
	}
}

// Classifier engine phân loại; build một lần, dùng chung giữa mọi request.
type Classifier struct {
	cfg    Config
	gaz    *gazetteer.Gazetteer
	index  *Index
	tn     *normalizer.TextNormalizer
	logger *zap.Logger

	// Cache kết quả theo input đã chuẩn hóa, inject qua CacheSize,
	// không phải singleton toàn process.
	cache *lru.Cache[string, models.ClassificationResult]
}

// New tạo Classifier từ gazetteer đã load.
func New(g *gazetteer.Gazetteer, tn *normalizer.TextNormalizer, cfg Config, logger *zap.Logger) (*Classifier, error) {
	if cfg.MaxSpan <= 0 {
		cfg.MaxSpan = trie.DefaultMaxSpan
	}
	c := &Classifier{
		cfg:    cfg,
		gaz:    g,
		index:  BuildIndex(g, cfg.MaxSpan),
		tn:     tn,
		logger: logger,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, models.ClassificationResult](cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	logger.Info("Đã build matcher index",
		zap.Int("provinces", c.index.provinces.Len()),
		zap.Int("district_tries", len(c.index.districts)),
		zap.Int("ward_tries", len(c.index.wards)))
	return c, nil
}

// tierState trạng thái của state machine phân tầng
type tierState int

const (
	stateTier1 tierState = iota
	stateTier2
	stateTier3
	stateResolved
)

// pipeline scratch của một lần Classify
type pipeline struct {
	tokens    []string
	remaining []string // token chưa tiêu thụ, đã bỏ prefix hành chính

	province *Candidate
	district *Candidate
	ward     *Candidate
}

func (p *pipeline) complete() bool {
	return p.province != nil && p.district != nil && p.ward != nil
}

func (p *pipeline) resolvedID(level models.Level) int {
	var r *Candidate
	switch level {
	case models.LevelProvince:
		r = p.province
	case models.LevelDistrict:
		r = p.district
	case models.LevelWard:
		r = p.ward
	}
	if r == nil {
		return 0
	}
	return r.Entity.ID
}

// Classify phân loại một chuỗi địa chỉ thô thành (tỉnh, huyện, xã).
// Không bao giờ trả lỗi: input hỏng cỡ nào cũng ra kết quả có cấu trúc,
// tệ nhất là cả ba field unset với confidence 0.
func (c *Classifier) Classify(raw string) *models.ClassificationResult {
	start := time.Now()

	nt := c.tn.Normalize(raw)
	if nt.IsEmpty() {
		return models.EmptyResult("")
	}
	key := nt.Joined()

	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			cp := v
			return &cp
		}
	}

	p := &pipeline{tokens: nt.Tokens}
	for st := stateTier1; st != stateResolved; {
		st = c.advance(st, p)
	}
	result := c.assemble(p, key)

	if c.cache != nil {
		c.cache.Add(key, *result)
	}

	c.logger.Debug("Đã phân loại địa chỉ",
		zap.String("normalized", key),
		zap.Float64("confidence", result.Confidence),
		zap.String("method", string(result.Method)),
		zap.String("status", result.Status),
		zap.Duration("duration", time.Since(start)))
	return result
}

// advance hàm chuyển trạng thái của orchestrator; tách riêng để test được
// độc lập với các thuật toán DP.
func (c *Classifier) advance(st tierState, p *pipeline) tierState {
	switch st {
	case stateTier1:
		c.runTier1(p)
		if p.complete() {
			return stateResolved
		}
		return stateTier2
	case stateTier2:
		c.runTier2(p)
		if p.complete() {
			return stateResolved
		}
		return stateTier3
	case stateTier3:
		c.runTier3(p)
		return stateResolved
	default:
		return stateResolved
	}
}

// runTier1 exact matching qua trie. Không tìm thấy tỉnh thì remaining là
// toàn bộ chuỗi token, tier 2 chạy trên cả chuỗi, không phải phần dư.
func (c *Classifier) runTier1(p *pipeline) {
	chain := c.matchExact(p.tokens)
	if chain == nil {
		p.remaining = normalizer.RemovePrefixTokens(p.tokens)
		return
	}

	// consumed giữ thứ tự tỉnh, huyện, xã theo cách matchExact dựng chuỗi
	withSpan := func(e *models.GeoEntity, s trie.Span) *Candidate {
		return &Candidate{Entity: e, Method: models.MethodExact, Score: c.cfg.ExactScore, Start: s.Start, End: s.End}
	}
	if chain.province != nil {
		p.province = withSpan(chain.province, chain.consumed[0])
	}
	if chain.district != nil {
		p.district = withSpan(chain.district, chain.consumed[1])
	}
	if chain.ward != nil {
		p.ward = withSpan(chain.ward, chain.consumed[2])
	}
	p.remaining = leftoverTokens(p.tokens, chain.consumed)
}

// leftoverTokens phần input chưa bị span nào tiêu thụ, bỏ token prefix.
func leftoverTokens(tokens []string, consumed []trie.Span) []string {
	used := make([]bool, len(tokens))
	for _, s := range consumed {
		for i := s.Start; i < s.End && i < len(tokens); i++ {
			used[i] = true
		}
	}
	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if !used[i] {
			out = append(out, tok)
		}
	}
	return normalizer.RemovePrefixTokens(out)
}

// scopedCandidates tập ứng viên cho một cấp, thu hẹp theo các cấp cha đã
// resolve, chính phép cắt tỉa này giữ tier 2/3 trong ngân sách.
func (c *Classifier) scopedCandidates(p *pipeline, level models.Level) []*models.GeoEntity {
	h := c.gaz.Hierarchy
	switch level {
	case models.LevelProvince:
		return c.gaz.Provinces
	case models.LevelDistrict:
		if p.province != nil {
			return c.entitiesOf(h.ChildrenOf(p.province.Entity.ID))
		}
		return c.gaz.Districts
	case models.LevelWard:
		if p.district != nil {
			return c.entitiesOf(h.ChildrenOf(p.district.Entity.ID))
		}
		if p.province != nil {
			var out []*models.GeoEntity
			for _, did := range h.ChildrenOf(p.province.Entity.ID) {
				out = append(out, c.entitiesOf(h.ChildrenOf(did))...)
			}
			return out
		}
		return c.gaz.Wards
	}
	return nil
}

func (c *Classifier) entitiesOf(ids []int) []*models.GeoEntity {
	out := make([]*models.GeoEntity, 0, len(ids))
	for _, id := range ids {
		if e := c.gaz.Entity(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// runTier2 LCS token-level cho từng cấp còn khuyết, cha trước con.
func (c *Classifier) runTier2(p *pipeline) {
	if len(p.remaining) == 0 {
		return
	}
	for _, level := range []models.Level{models.LevelProvince, models.LevelDistrict, models.LevelWard} {
		if p.resolvedID(level) != 0 {
			continue
		}
		if e, score, ok := c.lcsPick(p, level); ok {
			cand := noSpan(e, models.MethodLCS, score)
			switch level {
			case models.LevelProvince:
				p.province = &cand
			case models.LevelDistrict:
				p.district = &cand
			case models.LevelWard:
				p.ward = &cand
			}
		}
	}
}

// lcsPick chọn ứng viên LCS tốt nhất cho một cấp. Điểm cao nhất thắng;
// đồng điểm thì ưu tiên ứng viên có chuỗi cha nhất quán với các cấp đã
// resolve; vẫn còn nhiều ứng viên khác nhau đồng điểm nghĩa là input không
// đủ tín hiệu, từ chối cấp này, nhường cho tier 3.
func (c *Classifier) lcsPick(p *pipeline, level models.Level) (*models.GeoEntity, float64, bool) {
	const eps = 1e-9

	best := 0.0
	var top []*models.GeoEntity
	for _, e := range c.scopedCandidates(p, level) {
		sim := bestWindowSimilarity(p.remaining, strings.Fields(e.NormalizedName))
		if sim <= c.cfg.LCSThreshold {
			continue
		}
		switch {
		case sim > best+eps:
			best = sim
			top = top[:0]
			top = append(top, e)
		case sim > best-eps:
			top = append(top, e)
		}
	}
	if len(top) == 0 {
		return nil, 0, false
	}
	if len(top) > 1 {
		top = c.filterConsistent(p, level, top)
	}
	if len(top) != 1 {
		return nil, 0, false
	}
	score := best
	if score > c.cfg.LCSCap {
		score = c.cfg.LCSCap
	}
	return top[0], score, true
}

// filterConsistent giữ các ứng viên có chuỗi cha khớp với những cấp đã chốt.
func (c *Classifier) filterConsistent(p *pipeline, level models.Level, cands []*models.GeoEntity) []*models.GeoEntity {
	h := c.gaz.Hierarchy
	out := cands[:0]
	for _, e := range cands {
		pid, did, wid := p.resolvedID(models.LevelProvince), p.resolvedID(models.LevelDistrict), p.resolvedID(models.LevelWard)
		switch level {
		case models.LevelProvince:
			pid = e.ID
		case models.LevelDistrict:
			did = e.ID
		case models.LevelWard:
			wid = e.ID
		}
		if h.IsValid(pid, did, wid) {
			out = append(out, e)
		}
	}
	return out
}

// runTier3 edit distance có chặn trên cùng tập ứng viên đã cắt tỉa.
func (c *Classifier) runTier3(p *pipeline) {
	if len(p.remaining) == 0 {
		return
	}
	for _, level := range []models.Level{models.LevelProvince, models.LevelDistrict, models.LevelWard} {
		if p.resolvedID(level) != 0 {
			continue
		}
		if e, score, ok := c.editPick(p, level); ok {
			cand := noSpan(e, models.MethodEdit, score)
			switch level {
			case models.LevelProvince:
				p.province = &cand
			case models.LevelDistrict:
				p.district = &cand
			case models.LevelWard:
				p.ward = &cand
			}
		}
	}
}

// editPick ứng viên có khoảng cách sửa nhỏ nhất tới một cửa sổ token của
// input. Đồng khoảng cách thì Jaro-Winkler cao hơn thắng, cuối cùng là id
// nhỏ hơn cho ổn định.
func (c *Classifier) editPick(p *pipeline, level models.Level) (*models.GeoEntity, float64, bool) {
	maxEdits := c.cfg.MaxEdits
	bestDist := maxEdits + 1
	bestJW := -1.0
	var bestEntity *models.GeoEntity

	for _, e := range c.scopedCandidates(p, level) {
		d, window := bestWindowDistance(p.remaining, e.NormalizedName, maxEdits)
		if d > maxEdits {
			continue
		}
		jw := smetrics.JaroWinkler(window, e.NormalizedName, 0.7, 4)
		better := d < bestDist ||
			(d == bestDist && jw > bestJW) ||
			(d == bestDist && jw == bestJW && bestEntity != nil && e.ID < bestEntity.ID)
		if better {
			bestDist, bestJW, bestEntity = d, jw, e
		}
	}
	if bestEntity == nil {
		return nil, 0, false
	}
	score := editScore(bestDist, maxEdits)
	if score > c.cfg.EditCap {
		score = c.cfg.EditCap
	}
	return bestEntity, score, true
}

// bestWindowDistance khoảng cách nhỏ nhất giữa tên ứng viên và các cửa sổ
// token liên tiếp của input (độ dài theo tên ±1), cùng cửa sổ đạt khoảng
// cách đó. Không bao giờ so với cả gazetteer, tập ứng viên đã bị tier trước
// cắt còn nhỏ, nên chi phí xấu nhất có chặn.
func bestWindowDistance(input []string, name string, maxEdits int) (int, string) {
	nameTokens := strings.Fields(name)
	minW := len(nameTokens) - 1
	if minW < 1 {
		minW = 1
	}
	maxW := len(nameTokens) + 1

	bestDist := maxEdits + 1
	bestWindow := ""
	for w := minW; w <= maxW && w <= len(input); w++ {
		for start := 0; start+w <= len(input); start++ {
			window := strings.Join(input[start:start+w], " ")
			if d := BoundedDistance(window, name, maxEdits); d < bestDist {
				bestDist = d
				bestWindow = window
			}
		}
	}
	return bestDist, bestWindow
}

// assemble gộp các candidate đã chốt thành kết quả cuối: confidence là tổng có
// trọng số theo cấp, cấp khuyết đóng góp 0; method báo tier yếu nhất đã
// đóng góp vào kết quả.
func (c *Classifier) assemble(p *pipeline, normalizedInput string) *models.ClassificationResult {
	result := &models.ClassificationResult{
		Method:          models.MethodNone,
		Status:          models.StatusUnmatched,
		NormalizedInput: normalizedInput,
	}

	confidence := 0.0
	weakest := models.MethodNone
	apply := func(r *Candidate, weight float64, ref **models.EntityRef) {
		if r == nil {
			return
		}
		*ref = r.Entity.Ref()
		confidence += weight * r.Score
		if weakest == models.MethodNone || r.Method.Rank() < weakest.Rank() {
			weakest = r.Method
		}
	}
	apply(p.province, c.cfg.Weights.Province, &result.Province)
	apply(p.district, c.cfg.Weights.District, &result.District)
	apply(p.ward, c.cfg.Weights.Ward, &result.Ward)

	if confidence > 1 {
		confidence = 1
	}
	result.Confidence = confidence
	result.Method = weakest

	switch {
	case result.IsFull():
		result.Status = models.StatusMatched
	case !result.IsEmpty():
		result.Status = models.StatusPartial
	}
	return result
}

// GazetteerVersion phiên bản gazetteer engine đang phục vụ, thành phần
// cache key ở tầng service.
func (c *Classifier) GazetteerVersion() string {
	return c.gaz.Version
}
