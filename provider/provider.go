// Package provider implements machine suggestion backends.
package provider

import "github.com/ZaguanLabs/gtlang"

// AIProvider is an alias to the main package interface for convenience.
type AIProvider = gtlang.AIProvider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = gtlang.TranslateRequest
