package matcher

import (
	"testing"

	"github.com/address-classifier/app/models"
	"github.com/address-classifier/internal/gazetteer"
	"github.com/address-classifier/internal/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testFixture(t *testing.T) *gazetteer.Gazetteer {
	t.Helper()
	records := []gazetteer.Record{
		{ID: 1, Name: "Tỉnh Nghệ An", Level: 1},
		{ID: 2, Name: "Thành phố Hà Nội", Level: 1},
		{ID: 3, Name: "Tỉnh Hà Nam", Level: 1},
		{ID: 4, Name: "Tỉnh Hà Giang", Level: 1},
		{ID: 5, Name: "Tỉnh Hà Tĩnh", Level: 1},
		{ID: 6, Name: "Tỉnh Tiền Giang", Level: 1},

		{ID: 10, Name: "Huyện Đô Lương", Level: 2, ParentID: 1},
		{ID: 11, Name: "Quận Nam Từ Liêm", Level: 2, ParentID: 2},
		{ID: 12, Name: "Quận Bắc Từ Liêm", Level: 2, ParentID: 2},
		{ID: 13, Name: "Quận Cầu Giấy", Level: 2, ParentID: 2},
		{ID: 14, Name: "Thành phố Phủ Lý", Level: 2, ParentID: 3},

		{ID: 100, Name: "Xã Thịnh Sơn", Level: 3, ParentID: 10},
		{ID: 101, Name: "Xã Lưu Sơn", Level: 3, ParentID: 10},
		{ID: 103, Name: "Xã Tân Sơn", Level: 3, ParentID: 10},
		{ID: 102, Name: "Phường Cầu Diễn", Level: 3, ParentID: 11},
		{ID: 105, Name: "Phường Mỹ Đình 1", Level: 3, ParentID: 11},
		// Trùng tên chuẩn hóa với ward 103, khác huyện khác tỉnh
		{ID: 104, Name: "Xã Tân Sơn", Level: 3, ParentID: 14},
	}
	g, err := gazetteer.FromRecords(records, normalizer.NewTextNormalizer())
	require.NoError(t, err)
	return g
}

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(testFixture(t), normalizer.NewTextNormalizer(), DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestClassify_CleanWithDiacritics(t *testing.T) {
	c := testClassifier(t)

	r := c.Classify("Xã Thịnh Sơn H. Đô Lương T. Nghệ An")
	require.NotNil(t, r.Province)
	require.NotNil(t, r.District)
	require.NotNil(t, r.Ward)
	assert.Equal(t, "Tỉnh Nghệ An", r.Province.Name)
	assert.Equal(t, "Huyện Đô Lương", r.District.Name)
	assert.Equal(t, "Xã Thịnh Sơn", r.Ward.Name)
	assert.Equal(t, models.MethodExact, r.Method)
	assert.GreaterOrEqual(t, r.Confidence, 0.9)
	assert.Equal(t, models.StatusMatched, r.Status)
}

func TestClassify_DiacriticsStripped(t *testing.T) {
	c := testClassifier(t)

	r := c.Classify("xa thinh son h do luong t nghe an")
	require.NotNil(t, r.Province)
	require.NotNil(t, r.District)
	require.NotNil(t, r.Ward)
	assert.Equal(t, 1, r.Province.ID)
	assert.Equal(t, 10, r.District.ID)
	assert.Equal(t, 100, r.Ward.ID)
	assert.Contains(t, []models.MatchMethod{models.MethodExact, models.MethodLCS}, r.Method)
	assert.GreaterOrEqual(t, r.Confidence, 0.75)
}

func TestClassify_ExtraLeadingTokens(t *testing.T) {
	c := testClassifier(t)

	r := c.Classify("123 Nguyen Van Linh, Cau Dien, Nam Tu Liem, Ha Noi")
	require.NotNil(t, r.Province)
	require.NotNil(t, r.District)
	require.NotNil(t, r.Ward)
	assert.Equal(t, "Thành phố Hà Nội", r.Province.Name)
	assert.Equal(t, "Quận Nam Từ Liêm", r.District.Name)
	assert.Equal(t, "Phường Cầu Diễn", r.Ward.Name)
	assert.Contains(t, []models.MatchMethod{models.MethodExact, models.MethodLCS}, r.Method)
}

func TestClassify_TypoWardFallsToLCS(t *testing.T) {
	c := testClassifier(t)

	r := c.Classify("xa thinh sonn huyen do luong nghe an")
	require.NotNil(t, r.Province)
	require.NotNil(t, r.District)
	require.NotNil(t, r.Ward)
	assert.Equal(t, 100, r.Ward.ID)
	// Ward đi qua tier mờ nên method tổng phải yếu hơn exact
	assert.NotEqual(t, models.MethodExact, r.Method)
	assert.Less(t, r.Confidence, 0.95)
}

func TestClassify_TruncatedTypoProvince(t *testing.T) {
	c := testClassifier(t)

	// "ha nol": LCS hòa điểm giữa các tỉnh "ha *" nên tier 2 từ chối;
	// tier 3 chọn "ha noi" với khoảng cách 1. Không bao giờ là lỗi.
	r := c.Classify("ha nol")
	require.NotNil(t, r.Province)
	assert.Equal(t, 2, r.Province.ID)
	assert.Nil(t, r.District)
	assert.Nil(t, r.Ward)
	assert.Equal(t, models.MethodEdit, r.Method)
	assert.Less(t, r.Confidence, 0.5)
	assert.Equal(t, models.StatusPartial, r.Status)
}

func TestClassify_AmbiguousSingleToken(t *testing.T) {
	c := testClassifier(t)

	// "ha" khớp mơ hồ với bốn tỉnh, tier 2 từ chối; tier 3 không cửa sổ nào
	// trong ngân sách 2 phép sửa, kết quả rỗng, không phải lỗi.
	r := c.Classify("ha")
	assert.Nil(t, r.Province)
	assert.Nil(t, r.District)
	assert.Nil(t, r.Ward)
	assert.Equal(t, models.MethodNone, r.Method)
	assert.Equal(t, 0.0, r.Confidence)
	assert.Equal(t, models.StatusUnmatched, r.Status)
}

func TestClassify_EmptyInput(t *testing.T) {
	c := testClassifier(t)

	for _, in := range []string{"", "   ", "!!! ,,,"} {
		r := c.Classify(in)
		assert.True(t, r.IsEmpty(), "input %q", in)
		assert.Equal(t, 0.0, r.Confidence)
		assert.Equal(t, models.MethodNone, r.Method)
		assert.Equal(t, models.StatusUnmatched, r.Status)
	}
}

func TestClassify_DuplicateWardNameDisambiguatedByHierarchy(t *testing.T) {
	c := testClassifier(t)

	// "tan son" tồn tại ở Đô Lương (103) và Phủ Lý (104); huyện trong input
	// quyết định bên nào thắng.
	r := c.Classify("xa tan son huyen do luong tinh nghe an")
	require.NotNil(t, r.Ward)
	assert.Equal(t, 103, r.Ward.ID)

	r = c.Classify("xa tan son phu ly ha nam")
	require.NotNil(t, r.Ward)
	assert.Equal(t, 104, r.Ward.ID)
	require.NotNil(t, r.Province)
	assert.Equal(t, 3, r.Province.ID)
}

func TestClassify_WrongDistrictNotCrossMatched(t *testing.T) {
	c := testClassifier(t)

	// Cầu Diễn không thuộc Đô Lương: ward phải để trống thay vì ghép bừa.
	r := c.Classify("cau dien do luong nghe an")
	require.NotNil(t, r.Province)
	require.NotNil(t, r.District)
	assert.Equal(t, 10, r.District.ID)
	assert.Nil(t, r.Ward)
	assert.Equal(t, models.StatusPartial, r.Status)
}

func TestClassify_PartialProvinceOnly(t *testing.T) {
	c := testClassifier(t)

	r := c.Classify("tinh nghe an")
	require.NotNil(t, r.Province)
	assert.Equal(t, 1, r.Province.ID)
	assert.Nil(t, r.District)
	assert.Nil(t, r.Ward)
	assert.Equal(t, models.StatusPartial, r.Status)
	assert.Less(t, r.Confidence, 0.5)
}

func TestClassify_CacheReturnsOwnedCopy(t *testing.T) {
	c := testClassifier(t)

	first := c.Classify("xa thinh son huyen do luong tinh nghe an")
	require.NotNil(t, first.Province)
	// Caller sở hữu kết quả: sửa nó không được rò vào cache.
	first.Province = nil
	first.Confidence = -1

	second := c.Classify("xa thinh son huyen do luong tinh nghe an")
	require.NotNil(t, second.Province)
	assert.Equal(t, 1, second.Province.ID)
	assert.GreaterOrEqual(t, second.Confidence, 0.9)
}

func TestAdvance_StateTransitions(t *testing.T) {
	c := testClassifier(t)

	// Tier 1 resolve đủ ba cấp: dừng ngay tại Resolved.
	p := &pipeline{tokens: c.tn.Normalize("xa thinh son huyen do luong tinh nghe an").Tokens}
	assert.Equal(t, stateResolved, c.advance(stateTier1, p))
	assert.True(t, p.complete())

	// Input vô nghĩa: đi hết Tier1 → Tier2 → Tier3 → Resolved.
	p = &pipeline{tokens: []string{"khong", "lien", "quan"}}
	assert.Equal(t, stateTier2, c.advance(stateTier1, p))
	assert.Equal(t, stateTier3, c.advance(stateTier2, p))
	assert.Equal(t, stateResolved, c.advance(stateTier3, p))
	assert.False(t, p.complete())
}

func TestRunTier1_CandidateSpans(t *testing.T) {
	c := testClassifier(t)

	// "xa thinh son huyen do luong tinh nghe an" sau chuẩn hóa là 9 token;
	// tier 1 phải ghi lại đúng span đã tiêu thụ cho từng cấp.
	p := &pipeline{tokens: c.tn.Normalize("xa thinh son huyen do luong tinh nghe an").Tokens}
	require.Len(t, p.tokens, 9)
	c.runTier1(p)

	require.NotNil(t, p.ward)
	assert.Equal(t, models.MethodExact, p.ward.Method)
	assert.Equal(t, 1, p.ward.Start)
	assert.Equal(t, 3, p.ward.End)

	require.NotNil(t, p.district)
	assert.Equal(t, 4, p.district.Start)
	assert.Equal(t, 6, p.district.End)

	require.NotNil(t, p.province)
	assert.Equal(t, 7, p.province.Start)
	assert.Equal(t, 9, p.province.End)

	// Tier 2/3 không gắn với span cụ thể: candidate mang Start = End = -1.
	p2 := &pipeline{tokens: c.tn.Normalize("thinh sonn do luong nghe an").Tokens}
	for st := stateTier1; st != stateResolved; {
		st = c.advance(st, p2)
	}
	require.NotNil(t, p2.ward)
	assert.Equal(t, models.MethodLCS, p2.ward.Method)
	assert.Equal(t, -1, p2.ward.Start)
	assert.Equal(t, -1, p2.ward.End)
}

func TestClassify_ConcurrentCalls(t *testing.T) {
	c := testClassifier(t)

	// Index và hierarchy chỉ đọc: các call song song không tranh chấp gì.
	done := make(chan *models.ClassificationResult, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- c.Classify("Xã Thịnh Sơn H. Đô Lương T. Nghệ An")
		}()
	}
	for i := 0; i < 8; i++ {
		r := <-done
		require.NotNil(t, r.Province)
		assert.Equal(t, 1, r.Province.ID)
	}
}
