// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"procurement-workers/pkg/registry"
)

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "set":
		err = runSet(os.Args[2:])
	case "help":
		help()
		return
	default:
		help()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", "configs/activity-registry.json", "Path to registry file")
	bpmnDir := fs.String("bpmn", "bpmn", "Directory of BPMN files to cross-check; empty to skip")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}

	if *bpmnDir != "" {
		missing, err := reg.UndeclaredTaskTypes(*bpmnDir)
		if err != nil {
			return fmt.Errorf("failed to scan BPMN files: %w", err)
		}
		if len(missing) > 0 {
			files := make([]string, 0, len(missing))
			for f := range missing {
				files = append(files, f)
			}
			sort.Strings(files)
			for _, f := range files {
				fmt.Printf("%s references undeclared task types: %v\n", f, missing[f])
			}
			return fmt.Errorf("%d BPMN file(s) reference undeclared task types", len(missing))
		}
	}

	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("path", "configs/activity-registry.json", "Path to registry file")
	fs.Parse(args)

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	for _, a := range reg.Activities {
		fmt.Printf("%-26s %-14s %-6s %s\n", a.TaskType, a.Category, a.Timeout, a.ImplementationStatus)
	}
	return nil
}

func runSet(args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	path := fs.String("path", "configs/activity-registry.json", "Path to registry file")
	taskType := fs.String("taskType", "", "Task type of the activity to update")
	field := fs.String("field", "", "Field to update (status, version, timeout, retries, description)")
	value := fs.String("value", "", "New value for the field")
	fs.Parse(args)

	if *taskType == "" || *field == "" || *value == "" {
		fs.Usage()
		return fmt.Errorf("taskType, field and value are required")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	a, ok := reg.Lookup(*taskType)
	if !ok {
		return fmt.Errorf("task type %s not declared", *taskType)
	}

	switch *field {
	case "status":
		a.ImplementationStatus = *value
	case "version":
		a.Version = *value
	case "timeout":
		a.Timeout = *value
	case "description":
		a.Description = *value
	case "retries":
		retries, err := strconv.Atoi(*value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", *field)
	}

	if err := reg.Validate(); err != nil {
		return fmt.Errorf("update would leave registry invalid: %w", err)
	}
	if err := reg.Save(*path); err != nil {
		return err
	}
	fmt.Printf("Updated %s: %s = %s\n", *taskType, *field, *value)
	return nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  validate  Validate the registry and cross-check BPMN task types
  list      List declared activities
  set       Update one field of an activity
  help      Show this help message

Examples:
  registry-updater validate -path configs/activity-registry.json -bpmn bpmn
  registry-updater set -taskType analyze-product -field timeout -value 45s
  registry-updater list`)
}
