package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zephyrtronium/arithmancy"
)

type cli struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	Config      string             `help:"YAML file of constants and variable bindings." short:"c" type:"existingfile"`
	Given       map[string]float64 `help:"Bind a variable, as name=value (any number of times)." short:"g"`
	Format      string             `default:"%g" help:"Result formatting verb." name:"fmt"`
	Echo        bool               `help:"Print parse trees before results."`
	Expressions []string           `arg:"" help:"Expressions to evaluate. Lines of stdin are used if none are given." optional:""`
}

func main() {
	var c cli
	ktx := kong.Parse(&c,
		kong.Name("arithmancy"),
		kong.Description("Evaluate arithmetic expressions."),
		kong.UsageOnError(),
	)
	err := c.run(os.Stdin, os.Stdout, c.Log.logger(os.Stderr))
	ktx.FatalIfErrorf(err)
}

// run evaluates each expression, reading them from in if none were given on
// the command line. A parse error stops the run. Evaluation errors are
// printed in place of results.
func (c *cli) run(in io.Reader, out io.Writer, logger *slog.Logger) error {
	var cfg *config
	if c.Config != "" {
		var err error
		cfg, err = loadConfig(c.Config)
		if err != nil {
			return err
		}
	}
	env, err := cfg.newEnv(logger)
	if err != nil {
		return err
	}
	given := make(map[string]float64)
	if cfg != nil {
		for k, v := range cfg.Vars {
			given[k] = v
		}
	}
	for k, v := range c.Given {
		given[k] = v
	}
	names := make([]string, 0, len(given))
	for k := range given {
		names = append(names, k)
	}
	sort.Strings(names)

	srcs := c.Expressions
	if len(srcs) == 0 {
		srcs, err = lines(in)
		if err != nil {
			return err
		}
	}

	verb := c.Format + "\n"
	for _, src := range srcs {
		a, err := env.Parse(src)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", src, err)
		}
		for _, k := range names {
			err := env.SetVariable(k, given[k])
			var u *arithmancy.UnknownVariableError
			if errors.As(err, &u) && len(u.Suggestions) != 0 {
				logger.Warn("unused binding", slog.String("name", k), slog.String("expr", src), slog.Any("suggestions", u.Suggestions))
			}
		}
		if c.Echo {
			fmt.Fprintf(out, "%v : ", a)
		}
		r, err := a.Calculate()
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintf(out, verb, r)
	}
	return nil
}

// lines reads the non-blank lines of r.
func lines(r io.Reader) ([]string, error) {
	var srcs []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if strings.TrimSpace(s.Text()) != "" {
			srcs = append(srcs, s.Text())
		}
	}
	return srcs, s.Err()
}
