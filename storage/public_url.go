package storage

import (
	"fmt"
	"strings"
)

// PublicURLResolver builds public object URLs for stored assets. It is a
// pure lookup with no existence check; a missing object surfaces downstream
// as a broken fetch, and consumers should clear the image source rather than
// retry indefinitely.
type PublicURLResolver struct {
	baseURL string
}

// NewPublicURLResolver creates a resolver rooted at baseURL, e.g.
// "https://storage.example.com".
func NewPublicURLResolver(baseURL string) *PublicURLResolver {
	return &PublicURLResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// PublicURL returns the public URL for an object in a bucket.
func (r *PublicURLResolver) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/%s/%s", r.baseURL, bucket, strings.TrimLeft(path, "/"))
}
