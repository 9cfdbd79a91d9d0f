package gtlang

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText returns the hex SHA-256 of a language value. Values are hashed
// as-is: surrounding spaces are significant in a lang file.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// CacheKey names the cached suggestion for a text hash in a target locale.
// Short codes and loosely written locales share the key of their Minecraft
// locale, so "zh", "zh-CN" and "zh_cn" hit the same entry.
func CacheKey(hash, targetLang string) string {
	return hash + ":" + MinecraftLocale(targetLang)
}
