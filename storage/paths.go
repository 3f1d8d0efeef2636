// Package storage maps gallery assets to canonical storage keys and public
// URLs. Upload and display code must both resolve paths through this package
// so the written and read keys never drift apart.
package storage

import (
	"errors"
	"fmt"
)

// AssetRole identifies the semantic role of a stored gallery asset. The
// enumeration is closed: resolving an unknown role is a caller defect.
type AssetRole string

const (
	RoleSiteLogo          AssetRole = "site_logo"
	RoleLogo              AssetRole = "logo"
	RolePWAIcon192        AssetRole = "pwa_icon_192"
	RolePWAIcon512        AssetRole = "pwa_icon_512"
	RoleScreenshotDesktop AssetRole = "screenshot_desktop"
	RoleScreenshotMobile  AssetRole = "screenshot_mobile"
	RoleFavicon           AssetRole = "favicon"
)

// ErrInvalidRole is returned when a role outside the closed enumeration is
// resolved. It is never coerced to a default slug.
var ErrInvalidRole = errors.New("invalid asset role")

var roleSlugs = map[AssetRole]string{
	RoleSiteLogo:          "site-logo",
	RoleLogo:              "logo",
	RolePWAIcon192:        "pwa-192",
	RolePWAIcon512:        "pwa-512",
	RoleScreenshotDesktop: "screenshot-desktop",
	RoleScreenshotMobile:  "screenshot-mobile",
	RoleFavicon:           "favicon",
}

// ResolvePath returns the canonical storage key for a gallery asset:
// "<galleryID>/<slug>.<ext>". Same inputs always produce the same key.
func ResolvePath(galleryID string, role AssetRole, ext string) (string, error) {
	slug, ok := roleSlugs[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return fmt.Sprintf("%s/%s.%s", galleryID, slug, ext), nil
}
