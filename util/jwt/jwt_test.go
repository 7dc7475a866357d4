package jwt

import "testing"

func TestIssueAndParseAuth(t *testing.T) {
	tok, err := Issue("secret", 42, "librarian", 1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := ParseAuth("Bearer "+tok, "secret")
	if err != nil {
		t.Fatalf("ParseAuth: %v", err)
	}
	if sub, _ := claims["sub"].(float64); int64(sub) != 42 {
		t.Errorf("sub = %v; want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "librarian" {
		t.Errorf("role = %q; want librarian", role)
	}
}

func TestParseAuth_Rejects(t *testing.T) {
	tok, err := Issue("secret", 7, "user", 1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := ParseAuth("", "secret"); err == nil {
		t.Error("empty header accepted")
	}
	if _, err := ParseAuth("Bearer ", "secret"); err == nil {
		t.Error("empty token accepted")
	}
	if _, err := ParseAuth("Bearer "+tok, "other-secret"); err == nil {
		t.Error("wrong secret accepted")
	}
	if _, err := ParseAuth("Bearer not.a.jwt", "secret"); err == nil {
		t.Error("garbage token accepted")
	}
}
