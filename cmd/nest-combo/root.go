package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/resources"
	"github.com/eggybyte-technology/nest-combo/internal/scaffold"
	"github.com/eggybyte-technology/nest-combo/internal/ui"
	"github.com/eggybyte-technology/nest-combo/internal/version"
)

const usage = `Usage: nest-combo <project|module-name> [options]

Options:
  -new,   --new-project    Create a new project
  -m,     --module         Generate a Module
  -c,     --controller     Generate a Controller
  -s,     --service        Generate a Service
  -g,     --gateway        Generate a Gateway
  -mw,    --middleware     Generate Middleware
  -itc,   --interceptor    Generate an Interceptor
  -f,     --file           Generate project from yml file

Optional for Modules:
  -ns, --no-spec           Do not generate spec (test) files
  -dr, --dry-run           Report actions that would be taken without writing out results.

Optional for Projects:
  -no-vscode               Do not open the editor in the new project

Commands:
  validate <file>          Validate a project file
  plan <file>              Print the commands a project file would run
  version                  Show version information

Global:
  --verbose                Show debug output
  --json                   Output in JSON format

Example:
  To create a new project:
    nest-combo my-project-name -new
  To create a module, controller and service in a single line command:
    nest-combo users -m -c -s
  To load a full project from a yml file:
    nest-combo -f project.yml
`

// rootTokens is the parsed form of a root invocation.
//
// Single-dash multi-letter flags such as -mw and -new cannot be declared with
// pflag, so the root command receives its raw arguments and matches tokens
// itself.
type rootTokens struct {
	name       string
	file       string
	hasFile    bool
	newProject bool
	noEditor   bool
	dryRun     bool
	help       bool
	version    bool
	verbose    bool
	json       bool
	rest       []string
}

func has(tok string, names ...string) bool {
	for _, n := range names {
		if tok == n {
			return true
		}
	}
	return false
}

// parseRootTokens splits raw arguments into global switches, the file
// argument and the remaining generator tokens.
func parseRootTokens(args []string) (rootTokens, error) {
	var t rootTokens
	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch {
		case has(tok, "--verbose", "-V"):
			t.verbose = true
		case tok == "--json":
			t.json = true
		case has(tok, "-h", "--help"):
			t.help = true
		case has(tok, "-v", "--version"):
			t.version = true
		case has(tok, "-f", "--file"):
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				return t, errors.New(errors.CodeInvalidArgument, "flag "+tok+" requires a file path")
			}
			i++
			t.file, t.hasFile = args[i], true
		case strings.HasPrefix(tok, "--file="):
			t.file, t.hasFile = strings.TrimPrefix(tok, "--file="), true
		default:
			switch {
			case has(tok, "-new", "--new-project"):
				t.newProject = true
			case tok == "-no-vscode":
				t.noEditor = true
			case has(tok, "-dr", "--dry-run"):
				t.dryRun = true
			}
			if t.name == "" && len(t.rest) == 0 && !strings.HasPrefix(tok, "-") {
				t.name = tok
			}
			t.rest = append(t.rest, tok)
		}
	}
	return t, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nest-combo <project|module-name> [options]",
		Short: "Generate NestJS projects and modules in one command",
		Long: `nest-combo drives the Nest CLI to create a project, install its dependencies
and generate a whole tree of modules, controllers, services, gateways,
middleware and interceptors, either from flags or from a YAML project file.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Version:            version.GetVersionString(),
		RunE:               runRoot,
	}
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), usage)
	})

	var verbose, jsonOutput bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose output")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cmd == cmd.Root() {
			return
		}
		ui.SetVerbose(verbose)
		ui.SetJSONOutput(jsonOutput)
	}

	root.AddCommand(newValidateCmd(), newPlanCmd(), newVersionCmd())
	return root
}

// execute runs root with args. A module or project named after a subcommand,
// as in `nest-combo plan -m -c`, goes to the flag-driven form instead of the
// subcommand.
func execute(ctx context.Context, root *cobra.Command, args []string) error {
	if isNamedInvocation(root, args) {
		root.SetContext(ctx)
		return runRoot(root, args)
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// isNamedInvocation reports whether args start with a subcommand name that is
// followed by a resource flag or -new.
func isNamedInvocation(root *cobra.Command, args []string) bool {
	if len(args) < 2 {
		return false
	}
	root.InitDefaultHelpCmd()

	named := false
	for _, c := range root.Commands() {
		if c.Name() == args[0] || c.HasAlias(args[0]) {
			named = true
			break
		}
	}
	if !named {
		return false
	}

	for _, tok := range args[1:] {
		if _, ok := resources.LookupFlag(tok); ok || has(tok, "-new", "--new-project") {
			return true
		}
	}
	return false
}

// runRoot handles the flag-driven forms:
//
//	nest-combo -f <file>
//	nest-combo <project> -new [-no-vscode] [-dr]
//	nest-combo <module> -m -c -s -g -mw -itc [-ns] [-dr]
func runRoot(cmd *cobra.Command, args []string) error {
	tokens, err := parseRootTokens(args)
	if err != nil {
		return err
	}
	ui.SetVerbose(tokens.verbose)
	ui.SetJSONOutput(tokens.json)

	switch {
	case tokens.version:
		ui.Info("%s", version.GetVersionString())
		return nil
	case tokens.help:
		return cmd.Help()
	}

	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	if tokens.hasFile {
		spec, err := loadSpec(tokens.file)
		if err != nil {
			return err
		}
		ui.Success("YAML file is valid.")
		s, err := a.scaffolder(ctx)
		if err != nil {
			return err
		}
		return s.FromFile(ctx, spec)
	}

	if tokens.newProject {
		if tokens.name == "" {
			return errors.New(errors.CodeInvalidArgument, "Project name is required.")
		}
		s, err := a.scaffolder(ctx)
		if err != nil {
			return err
		}
		var extra []string
		if tokens.dryRun {
			extra = append(extra, "--dry-run")
		}
		return s.CreateProject(ctx, tokens.name, a.settings.DefaultPackageManager, !tokens.noEditor && !tokens.dryRun, extra...)
	}

	if len(tokens.rest) == 0 {
		fmt.Fprint(cmd.ErrOrStderr(), usage)
	}
	if _, err := scaffold.CheckModuleArgs(tokens.name, tokens.rest); err != nil {
		return err
	}

	s, err := a.scaffolder(ctx)
	if err != nil {
		return err
	}
	return s.GenerateModule(ctx, tokens.name, tokens.rest)
}
