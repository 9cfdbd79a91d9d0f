// Package gtlang generates Minecraft/GregTech language files from dictionaries
// and combinatorial template rules.
//
// A configuration declares generators. Dictionary generators contribute fixed
// source→target pairs; rule generators contribute every combination of the
// pairs produced by the groups they reference, substituted into a template.
// The generated pairs are then merged with a fallback translation file and
// the original source file, and anything left untranslated is reported.
//
// Basic usage:
//
//	import (
//	    "github.com/ZaguanLabs/gtlang"
//	)
//
//	func main() {
//	    cfg, err := gtlang.LoadConfig("workplace/config.yml")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    opts := gtlang.Options{Workplace: "workplace", Lang: cfg.Lang}.DerivePaths()
//	    result, err := gtlang.Run(cfg, opts)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%d entries, %d unresolved\n", result.Summary.Total, result.Summary.Failed)
//	}
package gtlang
