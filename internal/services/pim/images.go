package pim

import (
	"fmt"
	"net/url"
)

// PlaceholderURL is served when a product has no usable picture.
const PlaceholderURL = "/placeholder.jpg"

const imageProxyTemplate = "https://wsrv.nl/?url=%s&w=1600&h=1200&output=webp&q=85&aft=sharpen"

// ResolveImageURL routes an origin picture through the image proxy, which
// resizes to 1600x1200 webp. It never returns an empty string.
func ResolveImageURL(raw string) string {
	if raw == "" {
		return PlaceholderURL
	}
	return fmt.Sprintf(imageProxyTemplate, url.QueryEscape(raw))
}

// IsPlaceholder reports whether u is the placeholder image.
func IsPlaceholder(u string) bool {
	return u == PlaceholderURL
}
