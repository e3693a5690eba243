package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/diagfmt"
	"github.com/covenant-lang/covenant/internal/driver"
	"github.com/covenant-lang/covenant/internal/lower"
	"github.com/covenant-lang/covenant/internal/source"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Covenant session",
	Long: `repl accumulates lines until braces balance, synthesizes a throwaway
wrapper for bare expressions, and invokes the core per chunk.
It never reaches into the checker's internals beyond calling Compile.`,
	RunE: runRepl,
}

var (
	replErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	replOkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	replPromptBox = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1)
)

type replModel struct {
	input    textarea.Model
	output   viewport.Model
	history  []string // accumulated real declarations, persisted across evaluations
	lines    []string // rendered scrollback
	opts     lower.Options
	width    int
	height   int
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadProjectConfig(".")
	if err != nil {
		return err
	}
	opts, err := resolveLowerOptions(cfg.Compile, lowerFlags{})
	if err != nil {
		return err
	}

	ta := textarea.New()
	ta.Placeholder = "fn greet() -> String { \"hi\" }"
	ta.Focus()
	ta.ShowLineNumbers = false
	ta.SetHeight(5)

	vp := viewport.New(80, 15)
	vp.SetContent("covenant repl — type a declaration or expression, blank braces submit\n")

	m := &replModel{input: ta, output: vp, opts: opts, width: 80, height: 15}
	_, err = tea.NewProgram(m).Run()
	return err
}

func (m *replModel) Init() tea.Cmd {
	return textarea.Blink
}

func bracesBalanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth <= 0
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.output.Width = msg.Width
		m.output.Height = msg.Height - 8
		m.input.SetWidth(msg.Width - 4)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			content := m.input.Value()
			if strings.HasSuffix(content, "\n") && bracesBalanced(content) && strings.TrimSpace(content) != "" {
				m.evaluate(strings.TrimSpace(content))
				m.input.Reset()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) View() string {
	var b strings.Builder
	b.WriteString(m.output.View())
	b.WriteString("\n")
	b.WriteString(replPromptBox.Render(m.input.View()))
	return b.String()
}

// isDeclChunk reports whether chunk opens with a top-level declaration
// keyword rather than being a bare expression — the REPL's
// expression-wrapping Open Question, resolved entirely in this
// collaborator: the core grammar never special-cases bare expressions.
func isDeclChunk(chunk string) bool {
	first := strings.Fields(chunk)
	if len(first) == 0 {
		return true
	}
	switch first[0] {
	case "fn", "let", "type", "struct", "enum", "trait", "impl", "contract",
		"intent", "effect", "capability", "import", "export", "pure", "extern":
		return true
	}
	return strings.HasPrefix(first[0], "@")
}

func (m *replModel) evaluate(chunk string) {
	var src string
	persisted := false
	if isDeclChunk(chunk) {
		src = strings.Join(append(append([]string{}, m.history...), chunk), "\n")
		persisted = true
	} else {
		src = strings.Join(m.history, "\n") + "\nlet __repl_result = (" + chunk + ");\n"
	}

	res := compileChunk(src, m.opts)
	if res.Bag.HasErrors() {
		m.appendLine(replErrStyle.Render(renderBagString(res.Bag, res.FileSet)))
		return
	}
	if persisted {
		m.history = append(m.history, chunk)
		m.appendLine(replOkStyle.Render("ok"))
		return
	}
	result, err := evalInNode(res.Output)
	if err != nil {
		m.appendLine(replErrStyle.Render(err.Error()))
		return
	}
	m.appendLine(replOkStyle.Render(strings.TrimRight(result, "\n")))
}

func (m *replModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.output.SetContent(strings.Join(m.lines, "\n"))
	m.output.GotoBottom()
}

type chunkResult struct {
	Bag     *diag.Bag
	FileSet *source.FileSet
	Output  string
}

func compileChunk(src string, opts lower.Options) chunkResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual("repl.cov", []byte(src))
	r := driver.Compile(fs, id, opts)
	return chunkResult{Bag: r.Bag, FileSet: fs, Output: r.Output}
}

func renderBagString(bag *diag.Bag, fs *source.FileSet) string {
	var b strings.Builder
	diagfmt.Pretty(&b, bag, fs, diagfmt.PrettyOpts{Context: 1})
	return b.String()
}

// evalInNode runs js (which assigns __repl_result) through node, printing
// the resulting value — the REPL's only use of a real host interpreter,
// mirroring the `run` command's hand-off of target text.
func evalInNode(js string) (string, error) {
	if _, err := exec.LookPath("node"); err != nil {
		return "", fmt.Errorf("node not found on PATH")
	}
	script := js + "\nconsole.log(__repl_result);\n"
	cmd := exec.Command("node", "-")
	cmd.Stdin = strings.NewReader(script)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s", strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
