package utils

import (
	"reflect"
	"testing"
)

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Shirts, shirts ,SALE,, winter ")
	want := []string{"shirts", "sale", "winter"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := SplitTags(""); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestCleanHTML(t *testing.T) {
	got := CleanHTML(`  <p>Nice <b>shirt</b></p> <script>alert(1)</script> `)
	want := "Nice shirt alert(1)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename("../../etc/passwd"); got != "passwd" {
		t.Fatalf("expected passwd, got %q", got)
	}
	if got := SanitizeFilename("my photo (1).jpg"); got != "my_photo__1_.jpg" {
		t.Fatalf("got %q", got)
	}
}

func TestValidateImageFileType(t *testing.T) {
	for name, want := range map[string]bool{
		"cover.JPG":  true,
		"cover.png":  true,
		"cover.webp": true,
		"cover.pdf":  false,
		"cover":      false,
	} {
		if got := ValidateImageFileType(name); got != want {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(20)
	b := GenerateRandomString(20)
	if len(a) != 20 || len(b) != 20 {
		t.Fatalf("expected length 20, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Fatal("two random strings should not collide")
	}
}
