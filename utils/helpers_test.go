package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret-password" {
		t.Fatal("password stored in plain text")
	}
	if err := CheckPassword("secret-password", hash); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword("wrong-password", hash); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range []string{"ADMIN", "TEACHER", "STUDENT"} {
		if !IsValidRole(role) {
			t.Errorf("role %s reported invalid", role)
		}
	}
	if IsValidRole("admin") || IsValidRole("OWNER") {
		t.Error("unknown role accepted")
	}
}

func TestIsValidSemester(t *testing.T) {
	for s := 1; s <= 8; s++ {
		if !IsValidSemester(s) {
			t.Errorf("semester %d reported invalid", s)
		}
	}
	for _, s := range []int{0, -1, 9} {
		if IsValidSemester(s) {
			t.Errorf("semester %d accepted", s)
		}
	}
}

func TestIsValidFileExtension(t *testing.T) {
	allowed := []string{"csv", "xlsx"}
	if !IsValidFileExtension("subjects.CSV", allowed) {
		t.Error("case-insensitive match failed")
	}
	if IsValidFileExtension("subjects.pdf", allowed) {
		t.Error("disallowed extension accepted")
	}
	if IsValidFileExtension("noextension", allowed) {
		t.Error("missing extension accepted")
	}
	if IsValidFileExtension("", allowed) {
		t.Error("empty filename accepted")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(16)
	if err != nil {
		t.Fatalf("GenerateRandomString: %v", err)
	}
	if len(a) != 16 {
		t.Errorf("length = %d, want 16", len(a))
	}
	b, _ := GenerateRandomString(16)
	if a == b {
		t.Error("two random strings were identical")
	}
}
