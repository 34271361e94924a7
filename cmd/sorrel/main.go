package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/ast"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/dump"
	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/parser"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/repl"
)

// Version is set at compile time via -ldflags
var Version = "0.3.0"

var (
	// Display flags
	helpFlag        = flag.Bool("h", false, "Show help message")
	helpLongFlag    = flag.Bool("help", false, "Show help message")
	versionFlag     = flag.Bool("V", false, "Show version information")
	versionLongFlag = flag.Bool("version", false, "Show version information")

	// Parse flags
	evalFlag     = flag.String("e", "", "Parse code string")
	evalLongFlag = flag.String("eval", "", "Parse code string")
	checkFlag    = flag.Bool("check", false, "Check syntax only, no output on success")
	tokensFlag   = flag.Bool("tokens", false, "Print the token stream instead of parsing")
	astFlag      = flag.String("ast", "", "Print the syntax tree as 'yaml' or 'json'")
	exprFlag     = flag.Bool("expr", false, "Parse input as a statement block, not a program")
	watchFlag    = flag.Bool("watch", false, "Re-check files whenever they change")
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag || *helpLongFlag {
		printHelp()
		os.Exit(0)
	}
	if *versionFlag || *versionLongFlag {
		fmt.Printf("sorrel version %s\n", Version)
		os.Exit(0)
	}

	format, err := astFormat(*astFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	// Prefer -e over --eval if both set
	evalCode := *evalFlag
	if evalCode == "" {
		evalCode = *evalLongFlag
	}

	switch {
	case evalCode != "":
		if !processSource("<eval>", evalCode, format) {
			os.Exit(1)
		}
	case *watchFlag:
		files := flag.Args()
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --watch requires at least one file")
			os.Exit(2)
		}
		if err := watchFiles(files, format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	case len(flag.Args()) > 0:
		code := 0
		for _, filename := range flag.Args() {
			switch processFile(filename, format) {
			case fileReadError:
				os.Exit(2)
			case fileSyntaxError:
				code = 1
			}
		}
		os.Exit(code)
	case *checkFlag || *tokensFlag || *astFlag != "":
		fmt.Fprintln(os.Stderr, "Error: no input files (use -e for inline code)")
		os.Exit(2)
	default:
		repl.Start(os.Stdin, os.Stdout, Version)
	}
}

func printHelp() {
	fmt.Printf(`sorrel - sorrel language front end version %s

Usage:
  sorrel [options] [file...]
  sorrel -e "code"
  sorrel --check <file>...
  sorrel --watch <file>...

Display Options:
  -h, --help            Show this help message
  -V, --version         Show version information

Parse Options:
  -e, --eval <code>     Parse a code string instead of files
  --check               Check syntax only; print nothing on success
  --tokens              Print the token stream instead of parsing
  --ast <yaml|json>     Print the syntax tree in the given format
  --expr                Parse input as a statement block, not a program
  --watch               Re-check files whenever they change

With no files and no -e, starts an interactive REPL.
`, Version)
}

// astFormat validates the --ast flag value.
func astFormat(value string) (dump.Format, error) {
	switch value {
	case "":
		return "", nil
	case "yaml":
		return dump.YAML, nil
	case "json":
		return dump.JSON, nil
	}
	return "", fmt.Errorf("--ast must be 'yaml' or 'json', got '%s'", value)
}

type fileResult int

const (
	fileOK fileResult = iota
	fileReadError
	fileSyntaxError
)

func processFile(filename string, format dump.Format) fileResult {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", filename, err)
		return fileReadError
	}
	if processSource(filename, string(content), format) {
		return fileOK
	}
	return fileSyntaxError
}

// processSource runs the requested front-end stage over one source
// unit and reports whether it was clean.
func processSource(filename, source string, format dump.Format) bool {
	if *tokensFlag {
		tokens, err := lexer.NewWithFilename(source, filename).Tokenize()
		if err != nil {
			printFrontEndError(filename, source, err)
			return false
		}
		if *checkFlag {
			return true
		}
		for _, tok := range tokens {
			fmt.Println(tok.String())
		}
		return true
	}

	p := parser.New(lexer.NewWithFilename(source, filename))

	// Inline code is usually an expression, not a class program.
	inlineExpr := filename == "<eval>" &&
		!strings.HasPrefix(strings.TrimLeft(source, " \t\n"), "class")

	if *exprFlag || inlineExpr {
		block, err := p.ParseBlock()
		if err != nil {
			printFrontEndError(filename, source, err)
			return false
		}
		if len(block.Expressions) == 1 {
			return printTree(block.Expressions[0], format)
		}
		return printTree(block, format)
	}

	program, err := p.ParseProgram()
	if err != nil {
		printFrontEndError(filename, source, err)
		return false
	}
	return printTree(program, format)
}

func printTree(node ast.Node, format dump.Format) bool {
	if *checkFlag {
		return true
	}
	if format == "" {
		fmt.Println(node.String())
		return true
	}
	rendered, err := dump.Node(node, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	fmt.Print(rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Println()
	}
	return true
}

// ============================================================================
// Diagnostics
// ============================================================================

// printFrontEndError prints a lexical or syntax error with source context.
func printFrontEndError(filename, source string, err error) {
	serr, ok := err.(*serrors.Error)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	displayFile := filename
	if serr.File != "" {
		displayFile = serr.File
	}

	if serr.IsLexError() {
		fmt.Fprint(os.Stderr, "Lexical error")
	} else {
		fmt.Fprint(os.Stderr, "Syntax error")
	}
	if serr.Line > 0 {
		fmt.Fprintf(os.Stderr, " in %s: line %d, column %d\n", displayFile, serr.Line, serr.Column)
	} else {
		fmt.Fprintf(os.Stderr, " in %s\n", displayFile)
	}
	fmt.Fprintf(os.Stderr, "  %s\n", serr.Message)

	for _, hint := range serr.Hints {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", hint)
	}

	if serr.Line > 0 {
		printSourceContext(strings.Split(source, "\n"), serr.Line, serr.Column)
	}
}

// printSourceContext shows the offending source line with a caret under
// the error column. Leading whitespace is trimmed so deeply indented
// lines stay readable; tabs count as 8 columns for caret placement.
func printSourceContext(lines []string, lineNum, colNum int) {
	if lineNum <= 0 || lineNum > len(lines) {
		return
	}
	sourceLine := lines[lineNum-1]

	trimCount := 0
	for i := 0; i < len(sourceLine); i++ {
		if sourceLine[i] == '\t' {
			trimCount += 8
		} else if sourceLine[i] == ' ' {
			trimCount++
		} else {
			break
		}
	}
	trimmedLine := strings.TrimLeft(sourceLine, " \t")
	fmt.Fprintf(os.Stderr, "    %s\n", trimmedLine)

	if colNum > 0 {
		visualCol := 0
		for i := 0; i < colNum-1 && i < len(sourceLine); i++ {
			if sourceLine[i] == '\t' {
				visualCol += 8
			} else {
				visualCol++
			}
		}
		caretPos := visualCol - trimCount
		if caretPos < 0 {
			caretPos = 0
		}
		fmt.Fprintf(os.Stderr, "    %s^\n", strings.Repeat(" ", caretPos))
	}
}

// ============================================================================
// Watch mode
// ============================================================================

// watchFiles re-runs the front end over each watched file whenever it
// changes. Directories are watched rather than files so that
// editor-style replace-on-save (remove + create) keeps working.
func watchFiles(files []string, format dump.Format) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}

	// Initial pass before waiting for changes.
	for _, file := range files {
		processFile(file, format)
	}
	fmt.Fprintf(os.Stderr, "watching %d file(s), Ctrl+C to stop\n", len(files))

	// Debounce duration - wait for rapid changes to settle
	const debounce = 100 * time.Millisecond
	var mu sync.Mutex
	lastChange := make(map[string]time.Time)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			mu.Lock()
			if time.Since(lastChange[abs]) < debounce {
				mu.Unlock()
				continue
			}
			lastChange[abs] = time.Now()
			mu.Unlock()

			fmt.Fprintf(os.Stderr, "--- %s changed\n", event.Name)
			if processFile(event.Name, format) == fileOK && *checkFlag {
				fmt.Fprintf(os.Stderr, "%s: OK\n", event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", err)
		}
	}
}
