package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/diagfmt"
	"github.com/covenant-lang/covenant/internal/lexer"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.cov>",
	Short: "Dump the raw token stream of a Covenant source file",
	Long: `tokenize runs only the scanner and prints every token's kind, span, and
text — a debugging collaborator, not part of the core pipeline's public
surface.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type tokenJSON struct {
	Kind   kindName `json:"kind"`
	Text   string   `json:"text"`
	Line   uint32   `json:"line"`
	Column uint32   `json:"column"`
}
type kindName = string

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	bag := diag.NewBag()
	tokens := lexer.Tokenize(fs, id, bag)

	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2})
	}

	switch format {
	case "pretty":
		for _, tok := range tokens {
			fmt.Fprintf(os.Stdout, "%-14s %d:%-4d %q\n", tokenKindName(tok.Kind), tok.Pos.Line, tok.Pos.Column, tok.Text)
		}
		return nil
	case "json":
		out := make([]tokenJSON, len(tokens))
		for i, tok := range tokens {
			out[i] = tokenJSON{Kind: tokenKindName(tok.Kind), Text: tok.Text, Line: tok.Pos.Line, Column: tok.Pos.Column}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unknown format %q (must be pretty or json)", format)
	}
}

// tokenKindName renders a token.Kind for display; token.Kind carries no
// Stringer of its own since the scanner never needs to print itself.
func tokenKindName(k token.Kind) string {
	names := map[token.Kind]string{
		token.Invalid: "invalid", token.EOF: "eof",
		token.Ident: "ident", token.Underscore: "_",
		token.IntLit: "int", token.FloatLit: "float", token.StringLit: "string",
		token.CharLit: "char", token.BoolLit: "bool", token.NilLit: "nil",
		token.KwFn: "fn", token.KwLet: "let", token.KwMut: "mut", token.KwType: "type",
		token.KwStruct: "struct", token.KwEnum: "enum", token.KwTrait: "trait",
		token.KwImpl: "impl", token.KwContract: "contract", token.KwIntent: "intent",
		token.KwEffect: "effect", token.KwCapability: "capability",
		token.KwRequires: "requires", token.KwEnsures: "ensures", token.KwInvariant: "invariant",
		token.KwIf: "if", token.KwElse: "else", token.KwMatch: "match",
		token.KwFor: "for", token.KwWhile: "while", token.KwReturn: "return",
		token.KwImport: "import", token.KwExport: "export", token.KwWhere: "where",
		token.KwPure: "pure", token.KwExtern: "extern", token.KwSelf: "self",
		token.KwSelfType: "Self", token.KwOld: "old", token.KwForall: "forall",
		token.KwExists: "exists", token.KwIn: "in", token.KwAs: "as",
		token.LParen: "(", token.RParen: ")", token.LBrace: "{", token.RBrace: "}",
		token.LBracket: "[", token.RBracket: "]", token.Comma: ",", token.Semicolon: ";",
		token.Colon: ":", token.ColonColon: "::", token.Dot: ".", token.At: "@",
		token.Plus: "+", token.Minus: "-", token.Star: "*", token.Slash: "/",
		token.Percent: "%", token.StarStar: "**",
		token.EqEq: "==", token.BangEq: "!=", token.Lt: "<", token.Gt: ">",
		token.LtEq: "<=", token.GtEq: ">=",
		token.AmpAmp: "&&", token.PipePipe: "||", token.Bang: "!",
		token.Amp: "&", token.Pipe: "|", token.Caret: "^", token.Tilde: "~",
		token.Shl: "<<", token.Shr: ">>",
		token.Assign: "=", token.PlusAssign: "+=", token.MinusAssign: "-=",
		token.StarAssign: "*=", token.SlashAssign: "/=",
		token.Arrow: "->", token.FatArrow: "=>", token.DotDot: "..", token.DotDotEq: "..=",
		token.Question: "?", token.QuestionQuestion: "??",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "unknown"
}
