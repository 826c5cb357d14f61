package convergence

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/667r/INF295-Inteligencia-Artificial/src/config"
)

// Summaries reads every configured table without rendering anything. Readable tables get
// StatusRead.
func Summaries(cfg config.Config) []Outcome {
	out := make([]Outcome, 0, len(cfg.Instances))
	for _, name := range cfg.Instances {
		o := Outcome{Instance: name, TablePath: cfg.TablePath(name)}
		tbl, err := loadTable(cfg, o.TablePath)
		switch {
		case errors.Is(err, errMissingTable):
			o.Status = StatusSkipped
		case err != nil:
			o.Status, o.Err = StatusFailed, err
		default:
			o.Status, o.Summary = StatusRead, tbl.Summarize()
		}
		out = append(out, o)
	}
	return out
}

// WriteSummaryText prints an aligned table of convergence figures.
func WriteSummaryText(w io.Writer, outs []Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTANCE\tROWS\tLAST_ITER\tINITIAL\tBEST\tFINAL\tLAST_IMPROVEMENT\tGAIN_%")
	for _, o := range outs {
		switch o.Status {
		case StatusSkipped:
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t-\t(missing)\n", o.Instance)
		case StatusFailed:
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\t-\t(error: %v)\n", o.Instance, o.Err)
		default:
			s := o.Summary
			fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.2f\t%.2f\t%.2f\t%.0f\t%.2f\n",
				o.Instance, s.Rows, s.LastIteration, s.InitialProfit, s.BestProfit, s.FinalProfit, s.LastImprovement, s.GainPct)
		}
	}
	return tw.Flush()
}

// WriteSummaryLaTeX prints a LaTeX tabular of the instances whose table could be read.
func WriteSummaryLaTeX(w io.Writer, outs []Outcome) error {
	var b strings.Builder
	b.WriteString("\\begin{table}[H]\n\\centering\n")
	b.WriteString("\\begin{tabular}{|l|c|c|c|c|}\n\\hline\n")
	b.WriteString("\\textbf{Instancia} & \\textbf{Profit Ini.} & \\textbf{Mejor Profit} & \\textbf{Iter. Mejora} & \\textbf{Ganancia (\\%)} \\\\ \\hline\n")
	n := 0
	for _, o := range outs {
		if o.Status != StatusRead && o.Status != StatusRendered {
			continue
		}
		s := o.Summary
		fmt.Fprintf(&b, "%s & %.0f & \\textbf{%.0f} & %.0f & %.2f \\\\\n",
			latexEscape(o.Instance), s.InitialProfit, s.BestProfit, s.LastImprovement, s.GainPct)
		n++
	}
	b.WriteString("\\hline\n\\end{tabular}\n")
	fmt.Fprintf(&b, "\\caption{Convergencia por instancia (%d instancias).}\n", n)
	b.WriteString("\\label{tab:convergencia}\n\\end{table}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var latexReplacer = strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "%", `\%`, "&", `\&`, "#", `\#`, "$", `\$`)

func latexEscape(s string) string { return latexReplacer.Replace(s) }
