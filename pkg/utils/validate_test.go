package utils

import "testing"

func TestValidatePrice(t *testing.T) {
	if err := ValidatePrice(1_250_000); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePrice(0); err == nil {
		t.Error("expected error for zero price")
	}
	if err := ValidatePrice(-100); err == nil {
		t.Error("expected error for negative price")
	}
	if err := ValidatePrice(150_000_000); err == nil {
		t.Error("expected error above the sanity cap")
	}
}

func TestValidateSize(t *testing.T) {
	if err := ValidateSize(990); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateSize(0); err == nil {
		t.Error("expected error for zero size")
	}
	if err := ValidateSize(60_000); err == nil {
		t.Error("expected error above the sanity cap")
	}
}

func TestValidateDistrict(t *testing.T) {
	for _, ok := range []int{1, 15, 28} {
		if err := ValidateDistrict(ok); err != nil {
			t.Errorf("ValidateDistrict(%d): unexpected error %v", ok, err)
		}
	}
	for _, bad := range []int{0, -3, 29} {
		if err := ValidateDistrict(bad); err == nil {
			t.Errorf("ValidateDistrict(%d): expected error", bad)
		}
	}
}

func TestValidateURL(t *testing.T) {
	allowed := []string{"propertyguru.com.sg", "99.co"}

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"allowed domain", "https://www.propertyguru.com.sg/listing/123", false},
		{"allowed second domain", "https://www.99.co/singapore/sale/123", false},
		{"empty", "", true},
		{"bad scheme", "ftp://propertyguru.com.sg/listing", true},
		{"missing host", "https:///listing", true},
		{"foreign domain", "https://evil.example.com/listing", true},
		{"path traversal", "https://www.propertyguru.com.sg/../etc/passwd", true},
		{"shell metacharacters", "https://www.propertyguru.com.sg/a|b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) err = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}

	// With no allowlist any well-formed http(s) URL passes.
	if err := ValidateURL("https://example.com/page", nil); err != nil {
		t.Errorf("unexpected error with empty allowlist: %v", err)
	}
}
