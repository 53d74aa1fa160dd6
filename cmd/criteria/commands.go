package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/comparison"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/natural"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/search"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const envPrefix = "CRITERIA"

type app struct {
	config *viper.Viper
	out    io.Writer
	logger *zap.Logger
	engine *comparison.Engine
}

func newRootCommand(out io.Writer) *cobra.Command {
	a := &app{config: viper.New(), out: out}

	root := &cobra.Command{
		Use:           "criteria",
		Short:         "Evaluate search criteria against values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("strict-ranges", false, "reject Between lists of odd length")
	_ = a.config.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.config.BindPFlag("strict_ranges", flags.Lookup("strict-ranges"))
	a.config.SetEnvPrefix(envPrefix)
	a.config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.config.AutomaticEnv()

	root.AddCommand(a.evalCommand(), a.rangeCommand(), a.sortCommand(), a.filterCommand())
	return root
}

func (a *app) setup() error {
	level, err := zapcore.ParseLevel(a.config.GetString("log_level"))
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "unable to build logger")
	}
	a.logger = logger
	a.engine = comparison.New(
		comparison.WithLogger(logger),
		comparison.WithStrictRanges(a.config.GetBool("strict_ranges")),
	)
	return nil
}

func (a *app) evalCommand() *cobra.Command {
	var left, op, right string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Compare a left value with a right operand",
		Example: `  criteria eval --left '"item2"' --op StringNumLessThan --right '"item10"'
  criteria eval --left 5 --op between --right '[1, 10]'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := criteria.Parse(op)
			if err != nil {
				return err
			}
			result := a.engine.Compare(decodeOperand(left), c, decodeOperand(right))
			a.logger.Debug("evaluated", zap.Stringer("criteria", c), zap.Bool("result", result))
			_, err = fmt.Fprintln(a.out, result)
			return err
		},
	}
	cmd.Flags().StringVar(&left, "left", "null", "left value as JSON (bare words are strings)")
	cmd.Flags().StringVar(&op, "op", "Equal", "criteria name or alias")
	cmd.Flags().StringVar(&right, "right", "null", "right operand as JSON (bare words are strings)")
	return cmd
}

func (a *app) rangeCommand() *cobra.Command {
	var left, op, values string
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Check a value against a list of bounds or members",
		RunE: func(cmd *cobra.Command, args []string) error {
			mc, err := criteria.ParseMult(op)
			if err != nil {
				return err
			}
			var list []any
			if err := json.UnmarshalFromString(values, &list); err != nil {
				return errors.Wrap(err, "values must be a JSON array")
			}
			result := a.engine.CompareRange(decodeOperand(left), mc, list)
			_, err = fmt.Fprintln(a.out, result)
			return err
		},
	}
	cmd.Flags().StringVar(&left, "left", "null", "left value as JSON (bare words are strings)")
	cmd.Flags().StringVar(&op, "op", "In", "Between, NotBetween, In or NotIn")
	cmd.Flags().StringVar(&values, "values", "[]", "operands as a JSON array")
	return cmd
}

func (a *app) sortCommand() *cobra.Command {
	var reverse bool
	cmd := &cobra.Command{
		Use:   "sort [words...]",
		Short: "Print words in natural order",
		RunE: func(cmd *cobra.Command, args []string) error {
			words := append([]string(nil), args...)
			natural.Sort(words)
			if reverse {
				for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
					words[i], words[j] = words[j], words[i]
				}
			}
			for _, w := range words {
				if _, err := fmt.Fprintln(a.out, w); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "print in descending order")
	return cmd
}

func (a *app) filterCommand() *cobra.Command {
	var conditions, records string
	cmd := &cobra.Command{
		Use:     "filter",
		Short:   "Print the records that match every condition",
		Example: `  criteria filter --conditions '[{"property": "age", "criteria": "gt", "value": 29.5}]' --records '[{"age": 30}, {"age": 20}]'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := search.ParseConditions([]byte(conditions))
			if err != nil {
				return err
			}
			var items []search.MapContext
			if err := json.UnmarshalFromString(records, &items); err != nil {
				return errors.Wrap(err, "records must be a JSON array of objects")
			}
			f := search.NewFilter(parsed, search.WithEngine(a.engine), search.WithLogger(a.logger))
			for _, c := range f.Conditions() {
				a.logger.Debug("condition", zap.Stringer("condition", c))
			}
			matched := search.Apply(f, items, func(r search.MapContext) search.Context { return r })
			for _, r := range matched {
				line, err := json.MarshalToString(r)
				if err != nil {
					return errors.Wrap(err, "unable to encode record")
				}
				if _, err := fmt.Fprintln(a.out, line); err != nil {
					return err
				}
			}
			a.logger.Debug("filtered", zap.Int("records", len(items)), zap.Int("matched", len(matched)))
			return nil
		},
	}
	cmd.Flags().StringVar(&conditions, "conditions", "[]", "conditions as a JSON array")
	cmd.Flags().StringVar(&records, "records", "[]", "records as a JSON array of objects")
	return cmd
}

// decodeOperand reads a JSON value, treating anything that is not valid
// JSON as a plain string.
func decodeOperand(raw string) any {
	var v any
	if err := json.UnmarshalFromString(raw, &v); err != nil {
		return raw
	}
	return v
}
