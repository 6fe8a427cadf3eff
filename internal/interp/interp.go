// Package interp models the Python interpreter variants a bootstrap run
// builds against.
package interp

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

// A Variant names one interpreter/config-tool pair a build is configured
// against. The zero Interp means the build system's default interpreter.
type Variant struct {
	Name       string // directory-safe variant name, e.g. "default", "python3"
	Interp     string // interpreter executable, empty for the build default
	ConfigTool string // paired introspection tool, e.g. "python3-config"
}

// Env returns the environment overrides that select this variant on a
// configure invocation. The default variant needs none.
func (v Variant) Env() map[string]string {
	env := make(map[string]string, 2)
	if v.Interp != "" {
		env["PYTHON"] = v.Interp
	}
	if v.ConfigTool != "" {
		env["PYTHON_CONFIG"] = v.ConfigTool
	}
	return env
}

// Check verifies the variant's executables resolve on PATH (or are
// absolute paths to existing files). The default variant always passes;
// its interpreter is chosen by configure itself.
func (v Variant) Check() error {
	for _, exe := range []string{v.Interp, v.ConfigTool} {
		if exe == "" {
			continue
		}
		if _, err := exec.LookPath(exe); err != nil {
			return fmt.Errorf("variant %s: %w", v.Name, err)
		}
	}
	return nil
}

// Default is the variant that lets configure pick the system interpreter.
var Default = Variant{Name: "default"}

// Alternate builds the explicitly-selected variant for the given
// interpreter and its paired config tool. An empty config tool defaults
// to "<python>-config".
func Alternate(python, configTool string) Variant {
	if python == "" {
		python = "python3"
	}
	if configTool == "" {
		configTool = python + "-config"
	}
	return Variant{
		Name:       filepath.Base(python),
		Interp:     python,
		ConfigTool: configTool,
	}
}

// Variants returns the two-pass build set: the default interpreter first,
// then the alternate pair.
func Variants(python, configTool string) []Variant {
	return []Variant{Default, Alternate(python, configTool)}
}
