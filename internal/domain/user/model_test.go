package user

import "testing"

func TestExternalIdentityWithDefaults(t *testing.T) {
	t.Parallel()

	got := ExternalIdentity{ExternalID: "user_1", Name: "  "}.WithDefaults()
	if got.Email != DefaultEmail {
		t.Fatalf("unexpected email: %q", got.Email)
	}
	if got.Name != DefaultName {
		t.Fatalf("unexpected name: %q", got.Name)
	}
	if got.ImageURL != "" {
		t.Fatalf("unexpected image url: %q", got.ImageURL)
	}

	kept := ExternalIdentity{Email: "a@x.io", Name: "Ana"}.WithDefaults()
	if kept.Email != "a@x.io" || kept.Name != "Ana" {
		t.Fatalf("defaults overwrote provider values: %+v", kept)
	}
}

func TestProfileOnboarded(t *testing.T) {
	t.Parallel()

	if (Profile{}).Onboarded() {
		t.Fatalf("empty profile must not be onboarded")
	}
	if !(Profile{Industry: "tech-software"}).Onboarded() {
		t.Fatalf("profile with industry must be onboarded")
	}
}

func TestSessionAuthenticated(t *testing.T) {
	t.Parallel()

	if (Session{}).Authenticated() {
		t.Fatalf("empty session must not be authenticated")
	}
	if !(Session{ExternalID: "user_1"}).Authenticated() {
		t.Fatalf("session with external id must be authenticated")
	}
}
