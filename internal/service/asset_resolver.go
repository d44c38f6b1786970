package service

import (
	"strings"
)

// AssetResolver turns stored image paths into URLs the browser can load
type AssetResolver struct {
	BaseURL     string
	StripPrefix string
}

func NewAssetResolver(baseURL, stripPrefix string) AssetResolver {
	return AssetResolver{BaseURL: strings.TrimRight(baseURL, "/"), StripPrefix: stripPrefix}
}

// Resolve removes the first occurrence of the storage prefix and joins the
// rest onto the asset host. Absolute URLs pass through.
func (a AssetResolver) Resolve(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "data:") {
		return path
	}

	if a.StripPrefix != "" {
		path = strings.Replace(path, a.StripPrefix, "", 1)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return a.BaseURL + path
}
