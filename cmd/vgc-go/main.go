package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vgc-go/packages/compiler/src/compile"
	"vgc-go/packages/compiler/src/log"
	"vgc-go/packages/compiler/src/schema"
	"vgc-go/packages/compiler/src/spec"
)

func usage() {
	fmt.Println(`vgc-go - declarative visualization compiler
Usage: vgc-go <command> [args]

Commands:
  compile <spec.json> [-o out.json] [--config config.yaml]
                    Compile a view specification to a scenegraph spec
  validate <spec.json>
                    Validate a view specification against the schema
  help              Show help`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "help":
		usage()
	case "compile":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		if err := runCompile(os.Args[2], os.Args[3:]); err != nil {
			fmt.Fprintf(os.Stderr, "compile error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		if !runValidate(os.Args[2]) {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func runCompile(specPath string, args []string) error {
	outPath := ""
	configPath := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			i++
			if i >= len(args) {
				return fmt.Errorf("%s requires a path", args[i-1])
			}
			outPath = args[i]
		case "--config":
			i++
			if i >= len(args) {
				return fmt.Errorf("--config requires a path")
			}
			configPath = args[i]
		default:
			return fmt.Errorf("unknown flag %q", args[i])
		}
	}

	data, err := os.ReadFile(specPath)
	if err != nil {
		return err
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}
	if errs := validator.ValidateBytes(data); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s\n", e)
		}
		return fmt.Errorf("%s: invalid view specification", specPath)
	}

	var s spec.Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parse %s: %w", specPath, err)
	}
	if configPath != "" {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if s.Config == nil {
			s.Config = cfg
		}
	}

	out, err := compile.Compile(&s)
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	encoded = append(encoded, '\n')
	if outPath == "" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return err
	}
	log.Debug("wrote %s", outPath)
	return nil
}

func runValidate(specPath string) bool {
	validator, err := schema.NewValidator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return false
	}
	errs := validator.ValidateFile(specPath)
	if len(errs) == 0 {
		fmt.Printf("%s: ok\n", specPath)
		return true
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%s\n", e)
	}
	return false
}

// loadConfig reads a YAML config file into the compiler's config type.
// Only used when the spec itself carries no inline config.
func loadConfig(path string) (*spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg spec.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
