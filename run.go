package gtlang

import (
	"errors"
	"io/fs"

	"github.com/ZaguanLabs/gtlang/langfile"
)

// Plan builds the generators from cfg, reads the source and fallback files
// named in opts and resolves every entry in memory. Nothing is written.
//
// A fallback path that does not exist is treated as no fallback.
func Plan(cfg *Config, opts Options, ropts ...ReplacerOption) (*ReplaceResult, error) {
	gens, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	if opts.SourcePath == "" {
		return nil, &FileError{Op: "read", Path: "<source>", Cause: errors.New("no source path")}
	}
	source, err := langfile.ReadFile(opts.SourcePath)
	if err != nil {
		return nil, &FileError{Op: "read", Path: opts.SourcePath, Cause: err}
	}

	var fallback []langfile.Entry
	if opts.FallbackPath != "" {
		fallback, err = langfile.ReadFile(opts.FallbackPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &FileError{Op: "read", Path: opts.FallbackPath, Cause: err}
		}
	}

	base := []ReplacerOption{
		WithExtensions(opts.Extensions...),
		WithPruneFallback(opts.PruneFallback),
	}
	replacer := NewReplacer(NewRepository(gens), append(base, ropts...)...)
	return replacer.Replace(source, fallback)
}

// Write persists a ReplaceResult: the target file always, the unresolved
// file when opts names one, and the pruned fallback when pruning produced one.
func Write(res *ReplaceResult, opts Options) error {
	if opts.TargetPath == "" {
		return &FileError{Op: "write", Path: "<target>", Cause: errors.New("no target path")}
	}
	if err := langfile.WriteFile(opts.TargetPath, res.Target); err != nil {
		return &FileError{Op: "write", Path: opts.TargetPath, Cause: err}
	}

	if opts.UnresolvedPath != "" {
		if err := langfile.WriteFile(opts.UnresolvedPath, res.Unresolved); err != nil {
			return &FileError{Op: "write", Path: opts.UnresolvedPath, Cause: err}
		}
	}

	if opts.PruneFallback && res.Fallback != nil && opts.FallbackPath != "" {
		if err := langfile.WriteFile(opts.FallbackPath, res.Fallback); err != nil {
			return &FileError{Op: "write", Path: opts.FallbackPath, Cause: err}
		}
	}
	return nil
}

// Run is Plan followed by Write.
func Run(cfg *Config, opts Options, ropts ...ReplacerOption) (*ReplaceResult, error) {
	res, err := Plan(cfg, opts, ropts...)
	if err != nil {
		return nil, err
	}
	if err := Write(res, opts); err != nil {
		return nil, err
	}
	return res, nil
}
