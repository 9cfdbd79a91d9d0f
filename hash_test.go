package gtlang

import "testing"

func TestHashText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple text",
			input:    "Hello World",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "formatting codes",
			input: "§eCopper Ingot§r",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HashText(tt.input)
			if tt.expected != "" && result != tt.expected {
				t.Errorf("HashText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			if len(result) != 64 {
				t.Errorf("HashText(%q) length = %d, want 64", tt.input, len(result))
			}
		})
	}
}

func TestHashText_WhitespaceSignificant(t *testing.T) {
	if HashText("Hello World") == HashText(" Hello World ") {
		t.Error("surrounding spaces must change the hash")
	}
}

func TestCacheKey(t *testing.T) {
	hash := HashText("Copper Ingot")
	want := hash + ":zh_CN"

	for _, lang := range []string{"zh_CN", "zh", "zh-CN", "zh_cn"} {
		if got := CacheKey(hash, lang); got != want {
			t.Errorf("CacheKey(%q) = %q, want %q", lang, got, want)
		}
	}
	if CacheKey(hash, "zh_TW") == want {
		t.Error("distinct locales must not share a key")
	}
}
