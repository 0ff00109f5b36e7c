package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"github.com/reoring/schemac"
	"github.com/reoring/schemac/diag"
	"github.com/reoring/schemac/i18n"
	"github.com/reoring/schemac/internal/logging"
	"github.com/reoring/schemac/jsonschema"
	jsonsrc "github.com/reoring/schemac/source/json"
	yamlsrc "github.com/reoring/schemac/source/yaml"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `schemac compiles schema notation (YAML or JSON) into JSON Schema.

Usage:
  schemac compile -in FILE [-o OUT] [-indent] [-schema URI] [-require-type] [-format yaml|json]
  schemac check -in FILE [-json] [-require-type] [-format yaml|json]
  schemac keywords [-type T]

Use "-in -" to read standard input. SCHEMAC_DEBUG=3 enables debug logs.`)
}

// run is main without the process exit, so tests can drive it.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "compile":
		return compileCmd(args[1:], stdin, stdout, stderr)
	case "check":
		return checkCmd(args[1:], stdin, stdout, stderr)
	case "keywords":
		return keywordsCmd(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "schemac: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

// common holds the flags shared by compile and check.
type common struct {
	in          string
	format      string
	requireType bool
	maxDepth    int
	lang        string
	colorMode   string
	verbose     bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.in, "in", "", "input file (\"-\" for stdin)")
	fs.StringVar(&c.format, "format", "", "input format: yaml or json (default: from file extension, else yaml)")
	fs.BoolVar(&c.requireType, "require-type", false, "report blocks that never declare a type")
	fs.IntVar(&c.maxDepth, "max-depth", 0, "maximum block nesting, 0 for unlimited")
	fs.StringVar(&c.lang, "lang", "en", "diagnostic language: en or ja")
	fs.StringVar(&c.colorMode, "color", "auto", "colorize diagnostics: auto, always or never")
	fs.BoolVar(&c.verbose, "v", false, "enable verbose logs")
}

func (c *common) read(stdin io.Reader) ([]byte, string, error) {
	if c.in == "-" {
		b, err := io.ReadAll(stdin)
		return b, "<stdin>", err
	}
	b, err := os.ReadFile(c.in)
	return b, c.in, err
}

func (c *common) compile(src []byte, name string) (*schemac.Schema, error) {
	format := strings.ToLower(c.format)
	if format == "" {
		format = "yaml"
		if strings.EqualFold(filepath.Ext(name), ".json") {
			format = "json"
		}
	}
	copt := schemac.CompileOpt{RequireType: c.requireType, MaxDepth: c.maxDepth, Logger: logging.Logger()}
	switch format {
	case "yaml", "yml":
		return yamlsrc.Compile(src, yamlsrc.Options{Compile: copt})
	case "json":
		return jsonsrc.Compile(src, jsonsrc.Options{Compile: copt})
	}
	return nil, fmt.Errorf("unknown format %q", c.format)
}

func (c *common) setup() {
	i18n.SetLanguage(c.lang)
	if c.verbose && logging.Level() > slog.LevelInfo {
		logging.SetLogLevel(slog.LevelInfo)
	}
}

func (c *common) color(w io.Writer) bool {
	switch c.colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func compileCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	var out, schemaURI string
	var indent bool
	fs.StringVar(&out, "o", "", "output file (default: stdout)")
	fs.BoolVar(&indent, "indent", false, "indent the output with two spaces")
	fs.StringVar(&schemaURI, "schema", "", "emit $schema with this URI (\"draft\" for 2020-12)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if c.in == "" {
		fs.Usage()
		return exitUsage
	}
	c.setup()
	log := logging.Logger()

	src, name, err := c.read(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "schemac: %v\n", err)
		return exitFailed
	}
	log.Info("read input", "file", name, "bytes", len(src))

	s, err := c.compile(src, name)
	if err != nil {
		_ = diag.Render(stderr, src, err, diag.Options{Filename: name, Color: c.color(stderr)})
		return exitFailed
	}

	opt := schemac.SerializeOpt{SchemaURI: schemaURI}
	if schemaURI == "draft" {
		opt.SchemaURI = jsonschema.Draft202012
	}
	if indent {
		opt.Indent = "  "
	}
	b, err := schemac.Serialize(s, opt)
	if err != nil {
		fmt.Fprintf(stderr, "schemac: serialize: %v\n", err)
		return exitFailed
	}
	b = append(b, '\n')

	if out == "" {
		_, _ = stdout.Write(b)
		return exitOK
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(stderr, "schemac: creating output dir: %v\n", err)
			return exitFailed
		}
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		fmt.Fprintf(stderr, "schemac: writing output: %v\n", err)
		return exitFailed
	}
	log.Info("wrote schema", "file", out, "bytes", len(b))
	return exitOK
}

func checkCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	var asJSON bool
	fs.BoolVar(&asJSON, "json", false, "print issues as JSON on stdout")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if c.in == "" {
		fs.Usage()
		return exitUsage
	}
	c.setup()

	src, name, err := c.read(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "schemac: %v\n", err)
		return exitFailed
	}
	_, err = c.compile(src, name)

	if asJSON {
		issues := []schemac.Issue{}
		if err != nil {
			iss, ok := schemac.ToIssue(err)
			if !ok {
				iss = schemac.Issue{Code: "syntax", Message: err.Error()}
			}
			issues = append(issues, iss)
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(issues); encErr != nil {
			fmt.Fprintf(stderr, "schemac: %v\n", encErr)
			return exitFailed
		}
	} else if err != nil {
		_ = diag.Render(stderr, src, err, diag.Options{Filename: name, Color: c.color(stderr)})
	} else {
		fmt.Fprintf(stdout, "%s: ok\n", name)
	}
	if err != nil {
		return exitFailed
	}
	return exitOK
}

func keywordsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("keywords", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var typeName string
	fs.StringVar(&typeName, "type", "", "list only keywords legal for this type")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if typeName != "" {
		t, ok := schemac.ParseType(typeName)
		if !ok {
			fmt.Fprintf(stderr, "schemac: unknown type %q\n", typeName)
			return exitUsage
		}
		for _, k := range schemac.Keywords() {
			if k.LegalFor(t) {
				fmt.Fprintln(stdout, k)
			}
		}
		return exitOK
	}
	for _, k := range schemac.Keywords() {
		var where []string
		switch {
		case k == schemac.KeywordType, k.IsGeneric():
			where = []string{"any"}
		default:
			for _, t := range schemac.Types() {
				if k.LegalFor(t) {
					where = append(where, t.String())
				}
			}
		}
		fmt.Fprintf(stdout, "%-12s %s\n", k, strings.Join(where, ", "))
	}
	return exitOK
}
