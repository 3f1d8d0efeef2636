package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath_AllRoles(t *testing.T) {
	cases := []struct {
		role AssetRole
		want string
	}{
		{RoleSiteLogo, "abc123/site-logo.png"},
		{RoleLogo, "abc123/logo.png"},
		{RolePWAIcon192, "abc123/pwa-192.png"},
		{RolePWAIcon512, "abc123/pwa-512.png"},
		{RoleScreenshotDesktop, "abc123/screenshot-desktop.png"},
		{RoleScreenshotMobile, "abc123/screenshot-mobile.png"},
		{RoleFavicon, "abc123/favicon.png"},
	}

	for _, tc := range cases {
		got, err := ResolvePath("abc123", tc.role, "png")
		require.NoError(t, err, "role %s", tc.role)
		assert.Equal(t, tc.want, got)
	}
}

func TestResolvePath_UnknownRole(t *testing.T) {
	_, err := ResolvePath("abc123", AssetRole("bogus"), "png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestResolvePath_Deterministic(t *testing.T) {
	first, err := ResolvePath("g-9", RoleFavicon, "ico")
	require.NoError(t, err)

	second, err := ResolvePath("g-9", RoleFavicon, "ico")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "g-9/favicon.ico", first)
}

func TestPublicURL(t *testing.T) {
	r := NewPublicURLResolver("https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/gallery-assets/abc123/logo.png",
		r.PublicURL("gallery-assets", "abc123/logo.png"))
	assert.Equal(t, "https://cdn.example.com/gallery-assets/x/y.png",
		r.PublicURL("gallery-assets", "/x/y.png"))
}
