// Command gtlang generates a GregTech language file from the English source,
// the generator configuration and a fallback translation.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZaguanLabs/gtlang"
	"github.com/ZaguanLabs/gtlang/cache"
	"github.com/ZaguanLabs/gtlang/langfile"
	"github.com/ZaguanLabs/gtlang/provider"
	"github.com/ZaguanLabs/gtlang/report"
	"github.com/ilyakaznacheev/cleanenv"
)

// maxHints caps the glossary hints sent with a suggestion request.
const maxHints = 64

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// environment supplies defaults for flags that were not given.
type environment struct {
	Workplace string `env:"GTLANG_WORKPLACE" env-default:"workplace"`
	Lang      string `env:"GTLANG_LANG"`
	APIKey    string `env:"OPENAI_API_KEY"`
	APIBase   string `env:"GTLANG_API_BASE"`
	Model     string `env:"GTLANG_MODEL" env-default:"gpt-4o-mini"`
	RedisURL  string `env:"GTLANG_REDIS_URL"`
}

// listFlag collects a repeatable flag; each value may also be a comma list.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

type cliFlags struct {
	opts           gtlang.Options
	extensions     listFlag
	showVersion    bool
	quiet          bool
	verbose        bool
	dryRun         bool
	jsonOutput     bool
	diffPath       string
	reportPath     string
	suggestPath    string
	apiKey         string
	apiBase        string
	model          string
	redisURL       string
	cacheTTL       time.Duration
	textsPerMinute int
	cacheImport    string
	cacheExport    string
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("gtlang", flag.ContinueOnError)
	fs.SetOutput(stderr)

	alias := func(p *string, short, long, usage string) {
		fs.StringVar(p, short, "", usage+" (short for --"+long+")")
		fs.StringVar(p, long, "", usage)
	}
	alias(&f.opts.SourcePath, "s", "source", "Source language file (default: <workplace>/en/GregTech.lang)")
	alias(&f.opts.TargetPath, "t", "target", "Target language file (default: <workplace>/<lang>/GregTech.lang)")
	alias(&f.opts.ConfigPath, "c", "config", "Generator configuration (default: <workplace>/config.yml)")
	alias(&f.opts.Workplace, "w", "workplace", "Workplace directory (default: GTLANG_WORKPLACE or workplace)")
	alias(&f.opts.Lang, "l", "language", "Target language code (default: GTLANG_LANG, config lang or zh)")
	fs.StringVar(&f.opts.FallbackPath, "extra-source", "", "Fallback translations (default: <workplace>/<lang>/GregTech.fallback.lang)")
	fs.StringVar(&f.opts.UnresolvedPath, "extra-target", "", "Unresolved entries output (default: <workplace>/<lang>/GregTech.unknown.lang)")
	fs.Var(&f.extensions, "e", "Active extension tag, repeatable or comma separated (short for --extensions)")
	fs.Var(&f.extensions, "extensions", "Active extension tags, repeatable or comma separated")
	fs.BoolVar(&f.opts.PruneFallback, "r", false, "Remove fallback entries the generators now produce (short for --remove)")
	fs.BoolVar(&f.opts.PruneFallback, "remove", false, "Remove fallback entries the generators now produce")

	fs.BoolVar(&f.showVersion, "version", false, "Show version")
	fs.BoolVar(&f.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&f.verbose, "verbose", false, "Log generator evaluation to stderr")
	fs.BoolVar(&f.dryRun, "dry-run", false, "Resolve everything but write no language files")
	fs.BoolVar(&f.jsonOutput, "json", false, "Print the summary as JSON")
	fs.StringVar(&f.diffPath, "diff", "", "Compare the new target with this previous target file")
	fs.StringVar(&f.reportPath, "report", "", "Write an HTML report to this file")

	fs.StringVar(&f.suggestPath, "suggest", "", "Write machine suggestions for unresolved entries to this file")
	fs.StringVar(&f.apiKey, "api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	fs.StringVar(&f.apiBase, "api-base", "", "OpenAI-compatible base URL (default: GTLANG_API_BASE env)")
	fs.StringVar(&f.model, "model", "", "Model for suggestions (default: GTLANG_MODEL or gpt-4o-mini)")
	fs.StringVar(&f.redisURL, "redis", "", "Redis URL for the suggestion cache (default: GTLANG_REDIS_URL env)")
	fs.IntVar(&f.textsPerMinute, "texts-per-minute", 0, "Cap on texts sent for suggestion per minute (0 for no cap)")
	fs.DurationVar(&f.cacheTTL, "cache-ttl", time.Hour, "Suggestion cache TTL (0 keeps entries forever)")
	fs.StringVar(&f.cacheImport, "cache-import", "", "Load cached suggestions from this JSON file")
	fs.StringVar(&f.cacheExport, "cache-export", "", "Save cached suggestions to this JSON file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	f.opts.Extensions = f.extensions
	return f, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if f.showVersion {
		fmt.Fprintf(stdout, "%s %s\n", gtlang.Name, gtlang.FullVersion())
		if gtlang.BuildDate != "unknown" && gtlang.BuildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", gtlang.BuildDate)
		}
		fmt.Fprintf(stdout, "  go:      %s\n", gtlang.GoVersion)
		fmt.Fprintf(stdout, "  source:  %s\n", gtlang.RepositoryURL)
		return nil
	}

	var env environment
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	f.applyEnv(env)

	opts := f.opts
	if opts.Workplace == "" {
		opts.Workplace = gtlang.DefaultWorkplace
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(opts.Workplace, gtlang.DefaultConfigFile)
	}
	cfg, err := gtlang.LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Lang == "" {
		opts.Lang = cfg.Lang
	}
	opts = opts.DerivePaths()

	var ropts []gtlang.ReplacerOption
	if f.verbose {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ropts = append(ropts, gtlang.WithLogger(logger))
	}

	if !f.quiet {
		fmt.Fprintf(stderr, "Generating %s from %s...\n", opts.TargetPath, opts.SourcePath)
	}

	start := time.Now()
	res, err := gtlang.Plan(cfg, opts, ropts...)
	if err != nil {
		return err
	}

	// The previous target is read before it is overwritten.
	var diff *gtlang.DiffResult
	if f.diffPath != "" {
		previous, err := langfile.ReadFile(f.diffPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return &gtlang.FileError{Op: "read", Path: f.diffPath, Cause: err}
		}
		diff = gtlang.DiffLang(previous, res.Target)
	}

	if !f.dryRun {
		if err := gtlang.Write(res, opts); err != nil {
			return err
		}
	}

	var suggestions *gtlang.SuggestResult
	if f.suggestPath != "" {
		suggestions, err = f.suggest(res, opts, stderr)
		if err != nil {
			return err
		}
	}

	if f.reportPath != "" {
		r := report.Report{
			Title:    fmt.Sprintf("%s %s", gtlang.Name, opts.Lang),
			Lang:     opts.Lang,
			Summary:  res.Summary,
			Outcomes: res.Outcomes,
			Diff:     diff,
		}
		if suggestions != nil {
			r.Suggestions = langfile.ToMap(suggestions.Suggestions)
		}
		if err := report.WriteHTMLFile(f.reportPath, r); err != nil {
			return &gtlang.FileError{Op: "write", Path: f.reportPath, Cause: err}
		}
	}
	elapsed := time.Since(start)

	if f.jsonOutput {
		return outputJSON(stdout, opts, res, diff, suggestions, elapsed)
	}
	if diff != nil {
		printDiff(stdout, f.diffPath, diff)
	}

	if !f.quiet {
		s := res.Summary
		fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(stderr, "  Entries:      %d\n", s.Total)
		fmt.Fprintf(stderr, "  Generated:    %d (%d over fallback)\n", s.Replaced+s.Conflict, s.Conflict)
		fmt.Fprintf(stderr, "  Fallback:     %d\n", s.Fallback)
		fmt.Fprintf(stderr, "  Unresolved:   %d\n", s.Failed)
		if opts.PruneFallback {
			fmt.Fprintf(stderr, "  Pruned:       %d\n", s.Pruned)
		}
		if suggestions != nil {
			fmt.Fprintf(stderr, "  Suggested:    %d (%d from cache)\n", len(suggestions.Suggestions), suggestions.CachedCount)
		}
		if f.dryRun {
			fmt.Fprintf(stderr, "Dry run: nothing was written.\n")
		}
	}
	return nil
}

func (f *cliFlags) applyEnv(env environment) {
	if f.opts.Workplace == "" {
		f.opts.Workplace = env.Workplace
	}
	if f.opts.Lang == "" {
		f.opts.Lang = env.Lang
	}
	if f.apiKey == "" {
		f.apiKey = env.APIKey
	}
	if f.apiBase == "" {
		f.apiBase = env.APIBase
	}
	if f.model == "" {
		f.model = env.Model
	}
	if f.redisURL == "" {
		f.redisURL = env.RedisURL
	}
}

// suggest asks the provider for translations of the unresolved entries and
// writes them to the suggestion file. Without an API key it warns and
// returns nil.
func (f *cliFlags) suggest(res *gtlang.ReplaceResult, opts gtlang.Options, stderr io.Writer) (*gtlang.SuggestResult, error) {
	if f.apiKey == "" {
		fmt.Fprintf(stderr, "warning: --suggest needs an API key (--api-key or OPENAI_API_KEY env), skipping\n")
		return nil, nil
	}

	store, closeStore, err := f.openCache()
	if err != nil {
		return nil, err
	}
	defer closeStore()

	if f.cacheImport != "" {
		imported, err := cache.NewImporter(store, cache.WithLocale(gtlang.MinecraftLocale(opts.Lang))).ImportFromFile(f.cacheImport)
		if err != nil {
			return nil, &gtlang.CacheError{Message: "importing " + f.cacheImport, Cause: err}
		}
		if !f.quiet {
			fmt.Fprintf(stderr, "Imported %d cached suggestions\n", imported.Imported)
		}
	}

	var p gtlang.AIProvider = provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:  f.apiKey,
		Model:   f.model,
		BaseURL: f.apiBase,
	})
	p = gtlang.NewRateLimitedProvider(p, gtlang.RateLimitConfig{TextsPerMinute: f.textsPerMinute})
	retry := gtlang.DefaultRetryConfig()
	if !f.quiet {
		retry.OnRetry = func(attempt int, err error, delay time.Duration) {
			fmt.Fprintf(stderr, "attempt %d failed (%v), retrying in %v\n", attempt, err, delay.Round(time.Millisecond))
		}
	}
	p = gtlang.NewRetryableProvider(p, retry)

	texts := make([]string, len(res.Unresolved))
	for i, e := range res.Unresolved {
		texts[i] = e.Value
	}
	suggester := gtlang.NewSuggester(opts.Lang, p,
		gtlang.WithSourceLang(gtlang.DefaultSourceLang),
		gtlang.WithCache(store),
		gtlang.WithContext("GregTech Minecraft mod language file"),
		gtlang.WithGlossary(res.Glossary.Hints(texts, maxHints)),
	)

	if !f.quiet {
		fmt.Fprintf(stderr, "Requesting suggestions for %d unresolved entries...\n", len(res.Unresolved))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	out, err := suggester.Suggest(ctx, res.Unresolved)
	if err != nil {
		return nil, fmt.Errorf("suggestion failed: %w", err)
	}

	if !f.dryRun {
		if err := langfile.WriteFile(f.suggestPath, out.Suggestions); err != nil {
			return nil, &gtlang.FileError{Op: "write", Path: f.suggestPath, Cause: err}
		}
	}

	if f.cacheExport != "" {
		meta := map[string]string{"lang": opts.Lang, "model": f.model}
		if err := cache.NewExporter(store).ExportToFile(f.cacheExport, meta); err != nil {
			return nil, &gtlang.CacheError{Message: "exporting " + f.cacheExport, Cause: err}
		}
	}
	return out, nil
}

func (f *cliFlags) openCache() (cache.ExportableCache, func(), error) {
	if f.redisURL == "" {
		return cache.NewInMemoryCache(0, f.cacheTTL), func() {}, nil
	}
	rc, err := cache.NewRedisCache(cache.RedisConfig{URL: f.redisURL, TTL: f.cacheTTL})
	if err != nil {
		return nil, nil, &gtlang.CacheError{Message: "connecting to redis", Cause: err}
	}
	return rc, func() { _ = rc.Close() }, nil
}

func printDiff(w io.Writer, previous string, diff *gtlang.DiffResult) {
	stats := diff.Stats()
	fmt.Fprintf(w, "Diff against %s\n", filepath.Base(previous))
	fmt.Fprintf(w, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(w, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(w, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(w, "  Modified:  %d\n", stats.Modified)

	if !diff.HasChanges() {
		fmt.Fprintf(w, "No changes.\n")
		return
	}
	for _, e := range diff.Added {
		fmt.Fprintf(w, "  + %s=%s\n", e.Key, truncate(e.Value, 50))
	}
	for _, m := range diff.Modified {
		fmt.Fprintf(w, "  ~ %s: %q -> %q\n", m.Key, truncate(m.Old, 30), truncate(m.New, 30))
	}
	for _, e := range diff.Removed {
		fmt.Fprintf(w, "  - %s\n", e.Key)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// JSONOutput represents the JSON output format.
type JSONOutput struct {
	Lang       string            `json:"lang"`
	Target     string            `json:"target"`
	Total      int               `json:"total"`
	Replaced   int               `json:"replaced"`
	Conflict   int               `json:"conflict"`
	Fallback   int               `json:"fallback"`
	Failed     int               `json:"failed"`
	Pruned     int               `json:"pruned"`
	Generated  int               `json:"generated"`
	Unresolved []string          `json:"unresolved"`
	Diff       *gtlang.DiffStats `json:"diff,omitempty"`
	Suggested  int               `json:"suggested,omitempty"`
	ElapsedMs  int64             `json:"elapsed_ms"`
}

// outputJSON writes the run summary as JSON.
func outputJSON(w io.Writer, opts gtlang.Options, res *gtlang.ReplaceResult, diff *gtlang.DiffResult, suggestions *gtlang.SuggestResult, elapsed time.Duration) error {
	s := res.Summary
	out := JSONOutput{
		Lang:       opts.Lang,
		Target:     opts.TargetPath,
		Total:      s.Total,
		Replaced:   s.Replaced,
		Conflict:   s.Conflict,
		Fallback:   s.Fallback,
		Failed:     s.Failed,
		Pruned:     s.Pruned,
		Generated:  s.Generated,
		Unresolved: make([]string, 0, len(res.Unresolved)),
		ElapsedMs:  elapsed.Milliseconds(),
	}
	for _, e := range res.Unresolved {
		out.Unresolved = append(out.Unresolved, e.Key)
	}
	if diff != nil {
		stats := diff.Stats()
		out.Diff = &stats
	}
	if suggestions != nil {
		out.Suggested = len(suggestions.Suggestions)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
