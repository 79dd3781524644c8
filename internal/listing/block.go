package listing

import (
	"apartment-geo-enrich/internal/ports"
	"net/http"
	"strings"
)

// BlockReason describes why a page looks like an anti-bot response.
type BlockReason string

const (
	BlockNone         BlockReason = ""
	BlockAccessDenied BlockReason = "access_denied"
	BlockMarker       BlockReason = "blocked"
	BlockCaptcha      BlockReason = "captcha"
	BlockStatus       BlockReason = "status"
)

// DetectBlock reports whether page is a block or challenge page rather than
// the listing.
func DetectBlock(page *ports.Page) (bool, BlockReason) {
	if page == nil {
		return false, BlockNone
	}

	title := strings.ToLower(page.Title)
	body := strings.ToLower(string(page.Body))

	if strings.Contains(title, "access denied") || strings.Contains(body, "access denied") {
		return true, BlockAccessDenied
	}
	if strings.Contains(body, "blocked") {
		return true, BlockMarker
	}
	if strings.Contains(body, "captcha") || strings.Contains(body, "checking your browser") {
		return true, BlockCaptcha
	}
	if page.StatusCode == http.StatusForbidden || page.StatusCode == http.StatusTooManyRequests {
		return true, BlockStatus
	}

	return false, BlockNone
}
