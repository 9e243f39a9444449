package checker

import (
	"context"
	"fmt"
	"os"
	"time"

	"instawatch/collector"
	"instawatch/config"
)

// DefaultPackages are the Python distributions InstaPy needs. Module is the
// name passed to import when it differs from the distribution name.
var DefaultPackages = []config.PackageSpec{
	{Name: "selenium", Module: "selenium"},
	{Name: "requests", Module: "requests"},
	{Name: "urllib3", Module: "urllib3"},
	{Name: "certifi", Module: "certifi"},
	{Name: "chardet", Module: "chardet"},
	{Name: "idna", Module: "idna"},
	{Name: "PyYAML", Module: "yaml"},
	{Name: "jsonschema", Module: "jsonschema"},
	{Name: "regex", Module: "regex"},
	{Name: "emoji", Module: "emoji"},
	{Name: "clarifai", Module: "clarifai"},
	{Name: "protobuf", Module: "google.protobuf"},
	{Name: "grpcio", Module: "grpc"},
	{Name: "future", Module: "future"},
	{Name: "six", Module: "six"},
	{Name: "plyer", Module: "plyer"},
}

// DefaultInstallScripts are looked up in the working directory.
var DefaultInstallScripts = []string{"install_linux.sh", "install_ubuntu.sh", "install_centos.sh"}

// Options configures which binaries, packages and scripts are probed.
type Options struct {
	Python         string
	Browser        string
	Driver         string
	DisplayServer  string
	Timeout        time.Duration
	Packages       []config.PackageSpec
	InstallScripts []string
	// Dir is where install scripts are looked up.
	Dir      string
	Getenv   func(string) string
	Platform func(context.Context) collector.Platform
}

// DefaultOptions probes firefox, geckodriver and Xvfb with a 10 second
// version-check timeout.
func DefaultOptions() Options {
	return Options{
		Python:         config.DefaultPython,
		Browser:        "firefox",
		Driver:         "geckodriver",
		DisplayServer:  "Xvfb",
		Timeout:        10 * time.Second,
		Packages:       append([]config.PackageSpec(nil), DefaultPackages...),
		InstallScripts: append([]string(nil), DefaultInstallScripts...),
		Dir:            ".",
		Getenv:         os.Getenv,
		Platform:       collector.HostPlatform,
	}
}

// ApplyFile overrides options with the non-empty values of fc.
func (o *Options) ApplyFile(fc *config.CheckerFile) error {
	if fc == nil {
		return nil
	}
	if fc.Python != "" {
		o.Python = fc.Python
	}
	if fc.Browser != "" {
		o.Browser = fc.Browser
	}
	if fc.Driver != "" {
		o.Driver = fc.Driver
	}
	if fc.DisplayServer != "" {
		o.DisplayServer = fc.DisplayServer
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid timeout %q: must be positive", fc.Timeout)
		}
		o.Timeout = d
	}
	if len(fc.Packages) > 0 {
		o.Packages = fc.Packages
	}
	if len(fc.InstallScripts) > 0 {
		o.InstallScripts = fc.InstallScripts
	}
	return nil
}
