package gtlang

import "path/filepath"

// Default file layout under a workplace directory.
const (
	DefaultWorkplace      = "workplace"
	DefaultLang           = "zh"
	DefaultSourceLang     = "en"
	DefaultLangFile       = "GregTech.lang"
	DefaultFallbackFile   = "GregTech.fallback.lang"
	DefaultUnresolvedFile = "GregTech.unknown.lang"
	DefaultConfigFile     = "config.yml"
)

// Options holds the paths and flags of one run.
type Options struct {
	SourcePath     string   // primary source language file
	FallbackPath   string   // previously translated entries (optional)
	TargetPath     string   // primary target language file
	UnresolvedPath string   // receives unresolved entries (optional)
	ConfigPath     string   // generator configuration
	Workplace      string   // base directory for derived paths
	Lang           string   // target language code
	Extensions     []string // active extension tags
	PruneFallback  bool     // drop fallback entries the generators now produce
}

// DerivePaths returns a copy of o with every empty path filled in from the
// workplace and language:
//
//	source      <workplace>/en/GregTech.lang
//	fallback    <workplace>/<lang>/GregTech.fallback.lang
//	target      <workplace>/<lang>/GregTech.lang
//	unresolved  <workplace>/<lang>/GregTech.unknown.lang
//	config      <workplace>/config.yml
func (o Options) DerivePaths() Options {
	if o.Workplace == "" {
		o.Workplace = DefaultWorkplace
	}
	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	if o.SourcePath == "" {
		o.SourcePath = filepath.Join(o.Workplace, DefaultSourceLang, DefaultLangFile)
	}
	if o.FallbackPath == "" {
		o.FallbackPath = filepath.Join(o.Workplace, o.Lang, DefaultFallbackFile)
	}
	if o.TargetPath == "" {
		o.TargetPath = filepath.Join(o.Workplace, o.Lang, DefaultLangFile)
	}
	if o.UnresolvedPath == "" {
		o.UnresolvedPath = filepath.Join(o.Workplace, o.Lang, DefaultUnresolvedFile)
	}
	if o.ConfigPath == "" {
		o.ConfigPath = filepath.Join(o.Workplace, DefaultConfigFile)
	}
	return o
}
