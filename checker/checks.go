package checker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"instawatch/collector"
)

const pythonVersionScript = "import sys; print('%d.%d.%d' % sys.version_info[:3])"

// importScript exits non-zero when the module in argv[1] cannot be imported.
const importScript = "import importlib, sys; importlib.import_module(sys.argv[1])"

// PythonVersionOK reports whether InstaPy supports the interpreter version.
func PythonVersionOK(major, minor int) bool {
	return major == 3 && minor >= 7
}

// IsLinux reports whether a platform identifier names Linux.
func IsLinux(platform string) bool {
	return strings.EqualFold(strings.TrimSpace(platform), "linux")
}

func (c *Checker) checkPythonVersion(ctx context.Context) (bool, error) {
	c.printf("Checking Python version...\n")

	res, err := c.runner.Run(ctx, c.opts.Timeout, c.opts.Python, "-c", pythonVersionScript)
	if errors.Is(err, collector.ErrCommandNotFound) {
		c.printf("  ✗ %s not found - Requires Python 3.7+\n", c.opts.Python)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if res.ExitCode != 0 {
		c.printf("  ✗ %s exited with code %d\n", c.opts.Python, res.ExitCode)
		return false, nil
	}

	var major, minor, micro int
	version := strings.TrimSpace(res.Output)
	if _, err := fmt.Sscanf(version, "%d.%d.%d", &major, &minor, &micro); err != nil {
		return false, fmt.Errorf("unexpected python version output %q: %w", version, err)
	}

	if PythonVersionOK(major, minor) {
		c.printf("  ✓ Python %d.%d.%d - Compatible\n", major, minor, micro)
		return true, nil
	}
	c.printf("  ✗ Python %d.%d.%d - Requires Python 3.7+\n", major, minor, micro)
	return false, nil
}

func (c *Checker) checkOS(ctx context.Context) (bool, error) {
	c.printf("Checking operating system...\n")

	p := c.opts.Platform(ctx)
	label := p.OS
	if p.Distro != "" {
		label = strings.TrimSpace(fmt.Sprintf("%s (%s %s)", p.OS, p.Distro, p.Version))
	}

	if IsLinux(p.OS) {
		c.printf("  ✓ %s - Compatible\n", label)
		return true, nil
	}
	c.printf("  ✗ %s - This tool is for Linux only\n", label)
	return false, nil
}

func (c *Checker) checkBrowser(ctx context.Context) (bool, error) {
	return c.checkBinaryVersion(ctx, c.opts.Browser)
}

func (c *Checker) checkDriver(ctx context.Context) (bool, error) {
	return c.checkBinaryVersion(ctx, c.opts.Driver)
}

// checkBinaryVersion runs "<bin> --version". A timeout means the binary
// exists but is slow, so it passes.
func (c *Checker) checkBinaryVersion(ctx context.Context, bin string) (bool, error) {
	c.printf("Checking %s installation...\n", bin)

	res, err := c.runner.Run(ctx, c.opts.Timeout, bin, "--version")
	switch {
	case errors.Is(err, collector.ErrCommandTimeout):
		c.printf("  ✓ %s is installed (timeout during version check)\n", bin)
		return true, nil
	case errors.Is(err, collector.ErrCommandNotFound):
		c.printf("  ✗ %s is not installed\n", bin)
		return false, nil
	case err != nil:
		return false, err
	case res.ExitCode != 0:
		c.printf("  ✗ %s is not working properly\n", bin)
		return false, nil
	}

	if line := firstLine(res.Output); line != "" {
		c.printf("  ✓ %s is installed (%s)\n", bin, line)
	} else {
		c.printf("  ✓ %s is installed\n", bin)
	}
	return true, nil
}

func (c *Checker) checkDisplayServer(ctx context.Context) (bool, error) {
	c.printf("Checking %s availability...\n", c.opts.DisplayServer)

	path, err := c.runner.LookPath(c.opts.DisplayServer)
	if err != nil {
		c.printf("  ✗ %s is not available\n", c.opts.DisplayServer)
		return false, nil
	}
	c.printf("  ✓ %s is available (%s)\n", c.opts.DisplayServer, path)
	return true, nil
}

func (c *Checker) checkPackages(ctx context.Context) (bool, error) {
	c.printf("Checking Python packages...\n")

	var missing []string
	for _, pkg := range c.opts.Packages {
		res, err := c.runner.Run(ctx, c.opts.Timeout, c.opts.Python, "-c", importScript, pkg.Module)
		if err != nil || res.ExitCode != 0 {
			c.printf("  ✗ %s\n", pkg.Name)
			missing = append(missing, pkg.Name)
			continue
		}
		c.printf("  ✓ %s\n", pkg.Name)
	}

	if len(missing) > 0 {
		c.printf("\n  ! Missing packages: %s\n", strings.Join(missing, ", "))
		return false, nil
	}
	c.printf("  ✓ All required packages are installed\n")
	return true, nil
}

// checkDisplay is informational: a headless server has no DISPLAY.
func (c *Checker) checkDisplay(ctx context.Context) (bool, error) {
	c.printf("Checking DISPLAY environment...\n")

	if display := c.opts.Getenv("DISPLAY"); display != "" {
		c.printf("  ✓ DISPLAY is set to: %s\n", display)
	} else {
		c.printf("  ! DISPLAY is not set (this is normal for headless servers)\n")
	}
	return true, nil
}

// checkPermissions is informational and always passes.
func (c *Checker) checkPermissions(ctx context.Context) (bool, error) {
	c.printf("Checking file permissions...\n")

	for _, script := range c.opts.InstallScripts {
		info, err := os.Stat(filepath.Join(c.opts.Dir, script))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			c.printf("  ✗ %s not found\n", script)
		case err != nil:
			c.printf("  ✗ %s cannot be read: %v\n", script, err)
		case info.Mode().Perm()&0o111 != 0:
			c.printf("  ✓ %s is executable\n", script)
		default:
			c.printf("  ! %s is not executable (run: chmod +x %s)\n", script, script)
		}
	}
	return true, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
