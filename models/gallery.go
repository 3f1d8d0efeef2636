package models

import "time"

// Gallery represents a customer-facing storefront owned by a business.
// Viewing its content can be gated behind age verification, a password, or
// both. The gate is client-enforced UX, not a security boundary.
type Gallery struct {
	ID                     string    `json:"id"`
	BusinessID             string    `json:"businessId"`
	Name                   string    `json:"name"`
	Password               string    `json:"-"`
	PasswordRequired       bool      `json:"passwordRequired"`
	AgeVerificationEnabled bool      `json:"ageVerificationEnabled"`
	StorefrontURL          string    `json:"storefrontUrl"`
	ThemeColor             string    `json:"themeColor"`
	WelcomeText            string    `json:"welcomeText"`
	CreatedAt              time.Time `json:"createdAt"`
}
