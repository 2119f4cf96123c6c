package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/likertlens/internal/filter"
	"github.com/KaramelBytes/likertlens/internal/preset"
)

// stateFlags are the filter flags shared by the one-shot commands.
type stateFlags struct {
	column string
	lo     float64
	hi     float64
	gpa    string
	preset string
}

func (f *stateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.column, "column", "c", "", "Likert column to filter on (default from config)")
	cmd.Flags().Float64Var(&f.lo, "lo", 0, "lower bound, inclusive (default: column minimum)")
	cmd.Flags().Float64Var(&f.hi, "hi", 0, "upper bound, inclusive (default: column maximum)")
	cmd.Flags().StringVar(&f.gpa, "gpa", "", "minimum GPA; blank or non-numeric disables the GPA filter")
	cmd.Flags().StringVar(&f.preset, "preset", "", "start from a saved preset; other flags override it")
}

// session replays the flags as events on a new Session and returns the final
// update. One-shot commands treat an invalid state as an error.
func (f *stateFlags) session(cmd *cobra.Command, eng *filter.Engine, sink filter.Sink) (*filter.Session, filter.Update, error) {
	s, err := filter.NewSession(eng, sink, cfg.DefaultColumn)
	if err != nil {
		return nil, filter.Update{}, err
	}
	if f.preset != "" {
		p, err := preset.NewStore(cfg.PresetsDir).Get(f.preset)
		if err != nil {
			return nil, filter.Update{}, err
		}
		if u := s.Restore(p.State()); u.Err != nil {
			return nil, u, fmt.Errorf("apply preset '%s': %w", p.Name, u.Err)
		}
	}
	flags := cmd.Flags()
	u := s.Last()
	dispatch := func(ev filter.Event) error {
		u = s.Dispatch(ev)
		return u.Err
	}
	if flags.Changed("column") {
		if err := dispatch(filter.ColumnChanged{Column: f.column}); err != nil {
			return nil, u, err
		}
	}
	if flags.Changed("lo") || flags.Changed("hi") {
		// Unset bounds keep the column's current value.
		ev := filter.RangeChanged{Lo: s.State().Lo, Hi: s.State().Hi}
		if flags.Changed("lo") {
			ev.Lo = f.lo
		}
		if flags.Changed("hi") {
			ev.Hi = f.hi
		}
		if err := dispatch(ev); err != nil {
			return nil, u, err
		}
	}
	if flags.Changed("gpa") {
		if err := dispatch(filter.ThresholdTextChanged{Text: f.gpa}); err != nil {
			return nil, u, err
		}
	}
	if u.Warning != "" {
		slog.Warn(u.Warning)
	}
	return s, u, nil
}
