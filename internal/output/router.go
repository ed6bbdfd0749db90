package output

import (
	"ontdemux/internal/classify"
	"ontdemux/internal/cutsite"
)

// ChannelKey maps a classification to the output channel that should
// receive its read: the matched cut site's name, or one of the reserved
// categories. Every read maps to exactly one channel.
func ChannelKey(c classify.Classification) string {
	switch c.Status {
	case classify.Matched:
		return c.Site.Name
	case classify.Unmapped:
		return cutsite.Unmapped
	case classify.LowMapQ:
		return cutsite.LowMapQ
	default:
		return cutsite.Unmatched
	}
}

// Reserved reports whether key is one of the non-site channels suppressed
// by -matched-only.
func Reserved(key string) bool {
	switch key {
	case cutsite.Unmapped, cutsite.Unmatched, cutsite.LowMapQ:
		return true
	}
	return false
}
