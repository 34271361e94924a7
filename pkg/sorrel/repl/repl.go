package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/dump"
	serrors "github.com/sorrel-lang/sorrel/pkg/sorrel/errors"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
	"github.com/sorrel-lang/sorrel/pkg/sorrel/parser"
)

const PROMPT = ">> "
const CONTINUATION_PROMPT = ".. "

const SORREL_LOGO = `
█▀ █▀█ █▀█ █▀█ █▀▀ █░░
▄█ █▄█ █▀▄ █▀▄ ██▄ █▄▄ `

// Sorrel keywords and common symbols for tab completion
var completionWords = []string{
	"class", "else", "extends", "false", "final", "func", "for", "if",
	"in", "let", "new", "null", "override", "private", "return", "super",
	"to", "this", "true", "var", "while",
}

// displayMode selects how parsed input is shown.
type displayMode int

const (
	modeTree   displayMode = iota // canonical parenthesized form
	modeYAML                      // YAML tree
	modeJSON                      // JSON tree
	modeTokens                    // token stream, no parse
)

// Start starts the REPL with line editing, history, and tab completion.
// Input is parsed, never evaluated: the result of each complete entry
// is a rendering of its syntax tree.
func Start(in io.Reader, out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) []string {
		return filterCompletions(line)
	})

	historyFile := filepath.Join(os.TempDir(), ".sorrel_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "%s", SORREL_LOGO)
	fmt.Fprintln(out, "v", version)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(out, "Type ':help' for REPL commands")
	fmt.Fprintln(out, "")

	var inputBuffer strings.Builder
	mode := modeTree

	for {
		currentPrompt := PROMPT
		if inputBuffer.Len() > 0 {
			currentPrompt = CONTINUATION_PROMPT
		}
		input, err := line.Prompt(currentPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if inputBuffer.Len() > 0 {
					fmt.Fprintln(out, "^C (cleared)")
				} else {
					fmt.Fprintln(out, "^C")
				}
				inputBuffer.Reset()
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if inputBuffer.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		if inputBuffer.Len() == 0 && strings.HasPrefix(trimmed, ":") {
			mode = handleReplCommand(trimmed, out, mode)
			continue
		}

		if inputBuffer.Len() == 0 && trimmed == "" {
			continue
		}

		if inputBuffer.Len() > 0 {
			inputBuffer.WriteString("\n")
		}
		inputBuffer.WriteString(input)

		fullInput := inputBuffer.String()
		if needsMoreInput(fullInput) {
			continue
		}

		if trimmed != "" {
			line.AppendHistory(fullInput)
		}

		show(out, fullInput, mode)
		inputBuffer.Reset()
	}
}

// show lexes and parses one complete entry and renders it per the mode.
func show(out io.Writer, input string, mode displayMode) {
	if mode == modeTokens {
		tokens, err := lexer.New(input).Tokenize()
		if err != nil {
			printError(out, err)
			return
		}
		for _, tok := range tokens {
			fmt.Fprintln(out, tok.String())
		}
		return
	}

	block, err := parser.New(lexer.New(input)).ParseBlock()
	if err != nil {
		printError(out, err)
		return
	}

	switch mode {
	case modeYAML, modeJSON:
		format := dump.YAML
		if mode == modeJSON {
			format = dump.JSON
		}
		rendered, err := dump.Node(block, format)
		if err != nil {
			fmt.Fprintf(out, "dump error: %v\n", err)
			return
		}
		fmt.Fprint(out, rendered)
		if !strings.HasSuffix(rendered, "\n") {
			fmt.Fprintln(out)
		}
	default:
		for _, expr := range block.Expressions {
			fmt.Fprintln(out, expr.String())
		}
	}
}

func printError(out io.Writer, err error) {
	if serr, ok := err.(*serrors.Error); ok {
		fmt.Fprintln(out, serr.PrettyString())
		return
	}
	fmt.Fprintln(out, err)
}

// handleReplCommand handles REPL meta-commands that start with ':'.
func handleReplCommand(cmd string, out io.Writer, mode displayMode) displayMode {
	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(out, "REPL Commands:")
		fmt.Fprintln(out, "  :help, :h, :?   Show this help")
		fmt.Fprintln(out, "  :tree           Show parse results in canonical form (default)")
		fmt.Fprintln(out, "  :yaml           Show parse results as a YAML tree")
		fmt.Fprintln(out, "  :json           Show parse results as a JSON tree")
		fmt.Fprintln(out, "  :tokens         Show the token stream instead of parsing")
		fmt.Fprintln(out, "  exit, quit      Exit the REPL")
		return mode

	case ":tree":
		fmt.Fprintln(out, "Showing canonical parse trees")
		return modeTree

	case ":yaml":
		fmt.Fprintln(out, "Showing YAML parse trees")
		return modeYAML

	case ":json":
		fmt.Fprintln(out, "Showing JSON parse trees")
		return modeJSON

	case ":tokens":
		fmt.Fprintln(out, "Showing token streams")
		return modeTokens

	default:
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", cmd)
		return mode
	}
}

// needsMoreInput reports whether the entry has unclosed delimiters or an
// unclosed string and should keep buffering continuation lines.
func needsMoreInput(input string) bool {
	parens, braces, brackets := 0, 0, 0
	inString := false

	for _, ch := range input {
		if inString {
			if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '(':
			parens++
		case ')':
			parens--
		case '{':
			braces++
		case '}':
			braces--
		case '[':
			brackets++
		case ']':
			brackets--
		}
	}

	return inString || parens > 0 || braces > 0 || brackets > 0
}

// filterCompletions returns completion suggestions based on the word
// being typed at the end of the line.
func filterCompletions(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if line[len(line)-1] == ' ' || line[len(line)-1] == '\t' {
		return nil
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	lastWord := words[len(words)-1]
	prefix := line[:len(line)-len(lastWord)]

	var matches []string
	for _, word := range completionWords {
		if strings.HasPrefix(word, lastWord) {
			matches = append(matches, prefix+word)
		}
	}
	return matches
}
