// fqnmap builds a map of fully-qualified symbol names for a source tree.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/spf13/cobra"

	"github.com/mangolang/mango-ir/internal/config"
	"github.com/mangolang/mango-ir/internal/ctxlog"
	"github.com/mangolang/mango-ir/internal/discover"
	"github.com/mangolang/mango-ir/internal/fqn"
	"github.com/mangolang/mango-ir/internal/graph"
	"github.com/mangolang/mango-ir/internal/lang"
	"github.com/mangolang/mango-ir/internal/model"
	"github.com/mangolang/mango-ir/internal/parse"
	"github.com/mangolang/mango-ir/internal/ranking"
	"github.com/mangolang/mango-ir/internal/render"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.AddCommand(newCheckCmd(), newRecognizeCmd(), newInitCmd())
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(context.Background())
}

type scanFlags struct {
	configPath  string
	maxSymbols  int
	langs       []string
	maxFileSize int
	format      string
	roots       []string
	symbol      string
	cachePath   string
	skipTests   bool
	unresolved  bool
	verbose     bool
	showVersion bool
}

func newRootCmd() *cobra.Command {
	var f scanFlags
	cmd := &cobra.Command{
		Use:   "fqnmap [root]",
		Short: "Map the fully-qualified symbol names of a source tree",
		Long: `fqnmap parses Go, Python and Ruby sources, names every definition by its
fully-qualified path (package.Type.method), links references to the
definitions they name and prints the symbols ranked by inbound references.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.showVersion {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fqnmap %s\n", version)
				return nil
			}
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			ctx := ctxlog.WithLogger(cmd.Context(), ctxlog.New(cmd.ErrOrStderr(), f.verbose))
			return scan(ctx, cmd, root, f, cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "config file (default <root>/"+config.FileName+" if present)")
	fl.IntVarP(&f.maxSymbols, "max-symbols", "n", 0, "maximum number of symbols to include")
	fl.StringSliceVarP(&f.langs, "langs", "l", nil, "comma-separated languages to include")
	fl.IntVar(&f.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes")
	fl.StringVar(&f.format, "format", "", "output format: toon or yaml")
	fl.StringSliceVar(&f.roots, "root-prefix", nil, "only keep symbols under these dotted names")
	fl.StringVar(&f.symbol, "symbol", "", "only keep symbols whose name contains this text")
	fl.StringVar(&f.cachePath, "cache", "", "cache file path")
	fl.BoolVar(&f.skipTests, "skip-tests", false, "ignore test sources")
	fl.BoolVar(&f.unresolved, "unresolved", false, "list references that matched no definition")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log debug details to stderr")
	fl.BoolVarP(&f.showVersion, "version", "V", false, "show version and exit")
	return cmd
}

// settings merges the config file with flags given on the command line. It
// also returns the path of the config file that was read, if any.
func settings(ctx context.Context, cmd *cobra.Command, root string, f scanFlags) (config.Config, string, error) {
	var (
		cfg  config.Config
		path string
		err  error
	)
	if f.configPath != "" {
		cfg, err = config.Load(f.configPath)
		path = f.configPath
	} else {
		cfg, path, err = config.Discover(root)
	}
	if err != nil {
		return config.Config{}, "", err
	}
	if path != "" {
		ctxlog.FromContext(ctx).Debug("loaded config", "path", path)
	}

	fl := cmd.Flags()
	if fl.Changed("max-symbols") {
		cfg.MaxSymbols = f.maxSymbols
	}
	if fl.Changed("langs") {
		cfg.Languages = nil
		for _, l := range f.langs {
			cfg.Languages = append(cfg.Languages, strings.TrimSpace(l))
		}
	}
	if fl.Changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("root-prefix") {
		cfg.Roots = nil
		for _, r := range f.roots {
			prefix, err := fqn.New(r)
			if err != nil {
				return config.Config{}, "", errors.Wrap(err, "--root-prefix")
			}
			cfg.Roots = append(cfg.Roots, prefix)
		}
	}
	for _, l := range cfg.Languages {
		if _, ok := lang.Languages[l]; !ok {
			return config.Config{}, "", errors.Errorf("unsupported language %q", l)
		}
	}
	return cfg, path, cfg.Validate()
}

func scan(ctx context.Context, cmd *cobra.Command, root string, f scanFlags, stdout io.Writer) error {
	log := ctxlog.FromContext(ctx)

	root, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrap(err, "resolving root")
	}
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrap(err, "root path")
	}
	if !info.IsDir() {
		return errors.Errorf("%s: not a directory", root)
	}

	cfg, cfgPath, err := settings(ctx, cmd, root, f)
	if err != nil {
		return err
	}
	key, err := cacheKey(cfg, f)
	if err != nil {
		return err
	}

	files, err := discover.Files(ctx, root, discover.Options{
		Languages: cfg.Languages,
		Exclude:   cfg.Exclude,
		SkipTests: f.skipTests,
	})
	if err != nil {
		return errors.Wrap(err, "discovering files")
	}
	if len(files) == 0 {
		return errors.New("no parseable files found")
	}

	if f.cachePath != "" && cacheIsFresh(f.cachePath, root, files, cfgPath) {
		if data, ok := readCache(f.cachePath, key); ok {
			log.Debug("serving cached output", "cache", f.cachePath)
			_, err := stdout.Write(data)
			return err
		}
	}

	files = filterBySize(ctx, root, files, cfg.MaxFileSize)
	if len(files) == 0 {
		return errors.New("no parseable files found (all exceeded size limit)")
	}

	fileInfos := parseFilesConcurrent(ctx, root, files)
	if len(fileInfos) == 0 {
		return errors.New("no files could be parsed")
	}

	deps, unresolved := graph.Link(fileInfos)
	nm := &model.NameMap{
		Repo:         filepath.Base(root),
		Symbols:      graph.Rank(fileInfos),
		Dependencies: deps,
	}
	if f.unresolved {
		nm.Unresolved = unresolved
	}
	log.Debug("linked references", "files", len(fileInfos), "symbols", len(nm.Symbols), "unresolved", len(unresolved))

	nm = ranking.FilterRoots(nm, cfg.Roots)
	if f.symbol != "" {
		nm = ranking.FilterByName(nm, f.symbol)
	}
	nm = ranking.SelectSymbols(nm, cfg.MaxSymbols)

	var out bytes.Buffer
	if err := render.Write(&out, nm, cfg.Format); err != nil {
		return err
	}

	if f.cachePath != "" {
		data := append([]byte(cacheHeader+key+"\n"), out.Bytes()...)
		if err := os.WriteFile(f.cachePath, data, 0o644); err != nil {
			log.Warn("cache not written", "cache", f.cachePath, "error", err)
		}
	}

	_, err = stdout.Write(out.Bytes())
	return err
}

// cacheHeader starts the first line of a cache file; the settings key
// follows it.
const cacheHeader = "# fqnmap cache "

// cacheKey identifies the settings a map was produced with, so a cache
// written for one format or filter is never served for another.
func cacheKey(cfg config.Config, f scanFlags) (string, error) {
	data, err := config.Encode(cfg)
	if err != nil {
		return "", err
	}
	d := xxhash.New()
	_, _ = d.Write(data)
	_, _ = fmt.Fprintf(d, "symbol=%q unresolved=%t skip-tests=%t", f.symbol, f.unresolved, f.skipTests)
	return strconv.FormatUint(d.Sum64(), 16), nil
}

// readCache returns the cached output if the cache was written with key.
func readCache(path, key string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	head, body, ok := bytes.Cut(data, []byte("\n"))
	if !ok || string(head) != cacheHeader+key {
		return nil, false
	}
	return body, true
}

// cacheIsFresh reports whether the cache is newer than every source file
// and the config file, if one was read.
func cacheIsFresh(cachePath, root string, files []discover.FileEntry, configPath string) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	cacheMtime := cacheInfo.ModTime()

	if configPath != "" {
		ci, err := os.Stat(configPath)
		if err != nil || !ci.ModTime().Before(cacheMtime) {
			return false
		}
	}

	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			return false
		}
		if !fi.ModTime().Before(cacheMtime) {
			return false
		}
	}
	return true
}

func filterBySize(ctx context.Context, root string, files []discover.FileEntry, maxSize int) []discover.FileEntry {
	var kept []discover.FileEntry
	for _, f := range files {
		fi, err := os.Stat(filepath.Join(root, f.Path))
		if err != nil {
			kept = append(kept, f) // keep if can't stat
			continue
		}
		if fi.Size() > int64(maxSize) {
			ctxlog.FromContext(ctx).Warn("skipped oversized file", "file", f.Path, "limit", maxSize)
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func parseFilesConcurrent(ctx context.Context, root string, files []discover.FileEntry) []model.FileInfo {
	type result struct {
		index int
		info  model.FileInfo
	}

	log := ctxlog.FromContext(ctx)
	numWorkers := min(runtime.GOMAXPROCS(0), len(files))

	work := make(chan int, len(files))
	results := make(chan result, len(files))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Each goroutine gets its own parsers.
			parsers := make(map[string]*sitter.Parser)

			for idx := range work {
				f := files[idx]
				l := lang.Languages[f.Language]
				p, ok := parsers[f.Language]
				if !ok {
					p = l.NewParser()
					parsers[f.Language] = p
				}

				source, err := os.ReadFile(filepath.Join(root, f.Path))
				if err != nil {
					log.Warn("failed to read file", "file", f.Path, "error", err)
					continue
				}

				info, err := parse.Extract(ctx, l, p, source, filepath.ToSlash(f.Path))
				if err != nil {
					log.Warn("failed to parse file", "file", f.Path, "error", err)
					continue
				}
				results <- result{index: idx, info: info}
			}
		}()
	}

	for i := range files {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in original order
	indexed := make([]*model.FileInfo, len(files))
	for r := range results {
		indexed[r.index] = &r.info
	}

	var fileInfos []model.FileInfo
	for _, fi := range indexed {
		if fi != nil {
			fileInfos = append(fileInfos, *fi)
		}
	}
	return fileInfos
}
