package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/likertlens/internal/analysis"
	"github.com/KaramelBytes/likertlens/internal/filter"
	"github.com/KaramelBytes/likertlens/internal/preset"
)

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

const exploreHelp = `Commands:
  column <name>      select a Likert column (range resets to its bounds)
  columns            list selectable columns
  range <lo> <hi>    set the inclusive range
  gpa [value]        set the minimum GPA; no value turns the filter off
  show [n]           list up to n matching rows (default 10)
  describe           statistics of the matching rows
  plot <file>        write a scatter plot (.svg or .png)
  save <name>        save the current filter as a preset
  load <name>        restore a preset
  presets            list presets
  help               show this help
  quit               leave`

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively filter the survey from the terminal",
	Long: `Start an interactive session. Each command changes one part of the filter
and the summary is recomputed immediately. Type 'help' for commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine()
		if err != nil {
			return err
		}
		ex := &explorer{out: cmd.OutOrStdout(), store: preset.NewStore(cfg.PresetsDir)}
		s, err := filter.NewSession(eng, filter.SinkFunc(ex.publish), cfg.DefaultColumn)
		if err != nil {
			return err
		}
		ex.session = s
		fmt.Fprintln(ex.out, "Type 'help' for commands, 'quit' to leave.")
		return ex.run(cmd.InOrStdin())
	},
}

// explorer is the terminal front end of a Session: it turns input lines into
// events and prints every published update.
type explorer struct {
	out     io.Writer
	session *filter.Session
	store   *preset.Store
}

func (x *explorer) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		colorBold.Fprint(x.out, "likertlens> ")
		if !sc.Scan() {
			fmt.Fprintln(x.out)
			return sc.Err()
		}
		if !x.handle(strings.Fields(sc.Text())) {
			return nil
		}
	}
}

func (x *explorer) publish(u filter.Update) {
	if u.Err != nil {
		colorRed.Fprintf(x.out, "✗ %s\n", u.Summary.Text())
		return
	}
	colorGreen.Fprintln(x.out, u.Summary.Text())
	fmt.Fprintf(x.out, "  bounds [%s, %s], step %s\n", formatNum(u.Bounds.Lo), formatNum(u.Bounds.Hi), formatNum(u.Step))
	if u.Warning != "" {
		slog.Debug("gpa input ignored", "text", u.State.GPAText)
		colorYellow.Fprintf(x.out, "⚠ %s\n", u.Warning)
	}
}

func (x *explorer) warn(format string, a ...any) {
	colorYellow.Fprintf(x.out, "⚠ "+format+"\n", a...)
}

// handle runs one command line and reports whether the loop continues.
func (x *explorer) handle(fields []string) bool {
	if len(fields) == 0 {
		return true
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		fmt.Fprintln(x.out, exploreHelp)
	case "column", "col":
		if len(args) != 1 {
			x.warn("usage: column <name>")
			return true
		}
		x.session.Dispatch(filter.ColumnChanged{Column: args[0]})
	case "columns":
		cur := x.session.State().Column
		for _, c := range x.session.Engine().Options() {
			mark := " "
			if c == cur {
				mark = "*"
			}
			fmt.Fprintf(x.out, "%s %s\n", mark, c)
		}
	case "range":
		if len(args) != 2 {
			x.warn("usage: range <lo> <hi>")
			return true
		}
		lo, err1 := cast.ToFloat64E(strings.ReplaceAll(args[0], ",", "."))
		hi, err2 := cast.ToFloat64E(strings.ReplaceAll(args[1], ",", "."))
		if err1 != nil || err2 != nil {
			x.warn("range bounds must be numbers")
			return true
		}
		x.session.Dispatch(filter.RangeChanged{Lo: lo, Hi: hi})
	case "gpa":
		x.session.Dispatch(filter.ThresholdTextChanged{Text: strings.Join(args, " ")})
	case "show":
		n := 10
		if len(args) == 1 {
			v, err := cast.ToIntE(args[0])
			if err != nil {
				x.warn("usage: show [n]")
				return true
			}
			n = v
		}
		var buf bytes.Buffer
		writeRecords(&buf, x.session.Last().View, cfg.TooltipColumns, n)
		if buf.Len() == 0 {
			fmt.Fprintln(x.out, "(no rows)")
			return true
		}
		_, _ = x.out.Write(buf.Bytes())
	case "describe":
		rep, err := analysis.Describe(x.session.Engine().Dataset(), x.session.Last().View.Rows(), analysis.DefaultOptions())
		if err != nil {
			x.warn("%v", err)
			return true
		}
		fmt.Fprintln(x.out, rep.Markdown())
	case "plot":
		if len(args) != 1 {
			x.warn("usage: plot <file.svg|file.png>")
			return true
		}
		if err := scatterFromConfig(cfg).RenderFile(x.session.Last().View, args[0]); err != nil {
			x.warn("%v", err)
			return true
		}
		fmt.Fprintf(x.out, "✓ Plotted %d rows to %s\n", x.session.Last().View.Len(), args[0])
	case "save":
		if len(args) != 1 {
			x.warn("usage: save <name>")
			return true
		}
		p, err := x.store.Save(args[0], x.session.State())
		if err != nil {
			x.warn("%v", err)
			return true
		}
		fmt.Fprintf(x.out, "✓ Saved preset '%s'\n", p.Name)
	case "load":
		if len(args) != 1 {
			x.warn("usage: load <name>")
			return true
		}
		p, err := x.store.Get(args[0])
		if err != nil {
			x.warn("%v", err)
			return true
		}
		x.session.Restore(p.State())
	case "presets":
		items, err := x.store.List()
		if err != nil {
			x.warn("%v", err)
			return true
		}
		for _, p := range items {
			fmt.Fprintf(x.out, "- %s: %s in [%s, %s]\n", p.Name, p.Column, formatNum(p.Lo), formatNum(p.Hi))
		}
	default:
		x.warn("unknown command %q (try 'help')", name)
	}
	return true
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}
