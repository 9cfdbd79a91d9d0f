package gtlang

import "testing"

func TestMinecraftLocale(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"zh", "zh_CN"},
		{"ZH", "zh_CN"},
		{"zh_CN", "zh_CN"},
		{"zh-tw", "zh_TW"},
		{"ja_jp", "ja_JP"},
		{"xx", "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := MinecraftLocale(tt.code); got != tt.expected {
				t.Errorf("MinecraftLocale(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"zh_CN", "Chinese (Simplified)"},
		{"zh", "Chinese (Simplified)"},
		{"ja_JP", "Japanese (Japan)"},
		{"en", "English (United States)"},
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			result := GetLanguageName(tt.code)
			if result != tt.expected {
				t.Errorf("GetLanguageName(%q) = %q, want %q", tt.code, result, tt.expected)
			}
		})
	}
}

func TestGetLocaleClarification(t *testing.T) {
	if GetLocaleClarification("zh") == "" {
		t.Error("expected a clarification for zh")
	}
	if GetLocaleClarification("de_DE") != "" {
		t.Error("expected no clarification for de_DE")
	}
}

func TestGetDirection(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"ar_SA", "rtl"},
		{"he_IL", "rtl"},
		{"ar", "rtl"},
		{"en_US", "ltr"},
		{"ja_JP", "ltr"},
		{"zh_CN", "ltr"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			result := GetDirection(tt.code)
			if result != tt.expected {
				t.Errorf("GetDirection(%q) = %q, want %q", tt.code, result, tt.expected)
			}
		})
	}
}

func TestIsRTL(t *testing.T) {
	if !IsRTL("ar_SA") {
		t.Error("IsRTL(ar_SA) should be true")
	}
	if IsRTL("zh_CN") {
		t.Error("IsRTL(zh_CN) should be false")
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"zh-CN", "zh_CN"},
		{"en-US", "en_US"},
		{"zh_CN", "zh_CN"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeLocale(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeLocale(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToHTMLLang(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"zh_CN", "zh-CN"},
		{"zh", "zh-CN"},
		{"en-US", "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToHTMLLang(tt.input)
			if result != tt.expected {
				t.Errorf("ToHTMLLang(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
