package checker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"instawatch/collector"
	"instawatch/models"
)

// Check is one named probe. A returned error counts as a failure.
type Check struct {
	Name string
	Run  func(ctx context.Context) (bool, error)
}

// Checker runs the compatibility probes in a fixed order and prints a line
// per finding to out.
type Checker struct {
	opts   Options
	runner collector.CommandRunner
	out    io.Writer
	checks []Check
}

// New builds a Checker. Nil Getenv or Platform in opts fall back to the
// defaults.
func New(opts Options, runner collector.CommandRunner, out io.Writer) *Checker {
	def := DefaultOptions()
	if opts.Getenv == nil {
		opts.Getenv = def.Getenv
	}
	if opts.Platform == nil {
		opts.Platform = def.Platform
	}
	if opts.Dir == "" {
		opts.Dir = def.Dir
	}

	c := &Checker{opts: opts, runner: runner, out: out}
	c.checks = []Check{
		{Name: "python_version", Run: c.checkPythonVersion},
		{Name: "os", Run: c.checkOS},
		{Name: "browser", Run: c.checkBrowser},
		{Name: "driver", Run: c.checkDriver},
		{Name: "display_server", Run: c.checkDisplayServer},
		{Name: "python_packages", Run: c.checkPackages},
		{Name: "display", Run: c.checkDisplay},
		{Name: "permissions", Run: c.checkPermissions},
	}
	return c
}

// Run executes every check, prints the summary and returns the results.
// A check that errors or panics is reported and counted as failed; the
// remaining checks still run.
func (c *Checker) Run(ctx context.Context) models.CheckSummary {
	c.printf("InstaPy Linux Compatibility Checker\n")
	c.printf("%s\n", strings.Repeat("=", 50))

	summary := models.CheckSummary{}
	for _, check := range c.checks {
		ok, err := c.runGuarded(ctx, check)
		result := models.CheckResult{Name: check.Name, Passed: ok && err == nil}
		if err != nil {
			result.Err = err.Error()
			c.printf("  ✗ Error during check: %v\n", err)
			slog.Debug("check failed with error", slog.String("check", check.Name), slog.String("error", err.Error()))
		}
		summary.Results = append(summary.Results, result)
		if result.Passed {
			summary.Passed++
		}
		summary.Total++
		c.printf("\n")
	}

	c.printSummary(summary)
	return summary
}

func (c *Checker) runGuarded(ctx context.Context, check Check) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("panic in %s: %v", check.Name, r)
		}
	}()
	return check.Run(ctx)
}

func (c *Checker) printSummary(s models.CheckSummary) {
	rule := strings.Repeat("=", 50)
	c.printf("%s\nCOMPATIBILITY SUMMARY\n%s\n", rule, rule)

	if s.AllPassed() {
		c.printf("All checks passed! Your system is compatible with InstaPy.\n")
		c.printf("\nTo get started:\n")
		c.printf("1. Run: chmod +x install_*.sh\n")
		c.printf("2. Run: ./install_linux.sh (or appropriate for your distro)\n")
		c.printf("3. Activate virtual environment: source instapy_env/bin/activate\n")
		c.printf("4. Run InstaPy: python quickstart.py\n")
		return
	}

	c.printf("%d/%d checks passed. Some issues need to be resolved.\n", s.Passed, s.Total)
	c.printf("\nCommon solutions:\n")
	c.printf("- Install missing packages: sudo apt install <package> (Ubuntu/Debian)\n")
	c.printf("- Install missing packages: sudo dnf install <package> (Fedora/CentOS)\n")
	c.printf("- Install %s manually\n", c.opts.Driver)
	c.printf("- Check README_LINUX.md for detailed instructions\n")
}

func (c *Checker) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
