package listing

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = `<!doctype html>
<html><head><title>Sycamore Lane Apartments - Davis, CA</title></head>
<body>
<div class="priceBedRangeInfo">
  <div class="column">
    <p class="rentInfoLabel">Monthly Rent</p>
    <p class="rentInfoDetail">$1,895 - $2,650<br><span>Prices shown for 12 month lease</span></p>
  </div>
  <div class="column">
    <p class="rentInfoLabel">Bedrooms</p>
    <p class="rentInfoDetail">1 - 3 bd</p>
  </div>
  <div class="column">
    <p class="rentInfoLabel">Square Feet</p>
    <span class="spacer"></span>
    <p class="rentInfoDetail">
      650 - 1,100 sq ft
    </p>
  </div>
</div>
</body></html>`

func TestExtractRentInfo(t *testing.T) {
	info, err := ExtractRentInfo([]byte(listingPage))
	require.NoError(t, err)

	assert.Equal(t, "$1,895 - $2,650", info.Rent)
	assert.Equal(t, "650 - 1,100 sq ft", info.SquareFeet)
	assert.False(t, info.Empty())
	assert.Equal(t, "Sycamore Lane Apartments - Davis, CA", Title([]byte(listingPage)))
}

func TestExtractRentInfoMissingLabels(t *testing.T) {
	info, err := ExtractRentInfo([]byte(`<html><body><p class="rentInfoLabel">Monthly rent</p><p class="rentInfoDetail">$900</p></body></html>`))
	require.NoError(t, err)
	assert.True(t, info.Empty(), "label match is exact")
}

func TestParseRent(t *testing.T) {
	tests := []struct {
		in       string
		min, max float64
	}{
		{"$1,895 - $2,650", 1895, 2650},
		{"$1,200", 1200, 1200},
		{"1200-1300", 1200, 1300},
	}
	for _, tt := range tests {
		lo, hi := ParseRent(tt.in)
		assert.Equal(t, tt.min, lo, tt.in)
		assert.Equal(t, tt.max, hi, tt.in)
	}

	for _, bad := range []string{"", "Call for Rent", "$1 - $2 - $3"} {
		lo, hi := ParseRent(bad)
		assert.True(t, domain.IsMissing(lo) && domain.IsMissing(hi), "%q", bad)
	}
}

func TestParseSquareFeet(t *testing.T) {
	lo, hi := ParseSquareFeet("650 - 1,100 sq ft")
	assert.Equal(t, 650.0, lo)
	assert.Equal(t, 1100.0, hi)

	lo, hi = ParseSquareFeet("720 sq ft")
	assert.Equal(t, 720.0, lo)
	assert.Equal(t, 720.0, hi)
}

func TestRentPerSqftAvg(t *testing.T) {
	assert.InDelta(t, (1895.0+2650.0)/(650.0+1100.0), RentPerSqftAvg(1895, 2650, 650, 1100), 1e-12)

	assert.True(t, domain.IsMissing(RentPerSqftAvg(domain.Missing(), 1, 1, 1)))
	assert.True(t, domain.IsMissing(RentPerSqftAvg(1000, 1200, 0, 800)), "zero area is treated as absent")
	assert.True(t, domain.IsMissing(RentPerSqftAvg(0, 1200, 500, 800)), "zero rent is treated as absent")
}

func TestDetectBlock(t *testing.T) {
	tests := []struct {
		name string
		page *ports.Page
		want BlockReason
	}{
		{"nil", nil, BlockNone},
		{"listing", &ports.Page{StatusCode: 200, Title: "Sycamore Lane", Body: []byte(listingPage)}, BlockNone},
		{"title", &ports.Page{StatusCode: 200, Title: "Access Denied", Body: []byte("<html></html>")}, BlockAccessDenied},
		{"body", &ports.Page{StatusCode: 200, Body: []byte("Your request has been BLOCKED")}, BlockMarker},
		{"captcha", &ports.Page{StatusCode: 200, Body: []byte("please solve the captcha")}, BlockCaptcha},
		{"forbidden", &ports.Page{StatusCode: 403, Body: []byte("nope")}, BlockStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocked, reason := DetectBlock(tt.page)
			assert.Equal(t, tt.want != BlockNone, blocked)
			assert.Equal(t, tt.want, reason)
		})
	}
}
