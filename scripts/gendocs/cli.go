package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/estree/estreegen/internal/cli"
	"github.com/estree/estreegen/internal/cli/config"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// documented returns the subcommands that get a reference page.
func documented(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.IsAvailableCommand() {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// generateCLIDocs writes index.md plus one page per command into outDir.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": cliIndex(root)}
	for _, cmd := range documented(root) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}

	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Commands, targets and environment of estreegen")
	w.GeneratedMarker()

	w.Header(1, "estreegen")
	w.Paragraph(root.Long)
	w.CodeBlock("bash", "go install github.com/estree/estreegen/cmd/estreegen@latest\nestreegen <command> [flags]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documented(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](%s.md)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Flags")
	w.Paragraph("Accepted by every command:")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	writeTargets(w)

	w.Header(2, "Environment")
	w.Paragraph(fmt.Sprintf("Each configuration field maps to a variable. Flags override these, "+
		"and these override %s.", InlineCode(config.ConfigFileNames[0])))
	var envRows [][]string
	for _, f := range getConfigSchema() {
		envRows = append(envRows, []string{InlineCode(f.EnvVar()), f.Type, f.Description})
	}
	w.Table([]string{"Variable", "Type", "Description"}, envRows)

	w.Header(2, "Exit Status")
	var exitRows [][]string
	for _, c := range cli.ExitCodes {
		exitRows = append(exitRows, []string{InlineCode(strconv.Itoa(c.Code)), c.Meaning})
	}
	w.Table([]string{"Code", "Meaning"}, exitRows)

	return w.Bytes()
}

// writeTargets documents every registered emitter.
func writeTargets(w *MarkdownWriter) {
	w.Header(2, "Targets")
	w.Paragraph(fmt.Sprintf("Names accepted by %s and as keys of %s.", InlineCode("estreegen emit"), InlineCode("outputs")))
	var rows [][]string
	for _, name := range emit.List() {
		e, ok := emit.Get(name)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			InlineCode(name),
			InlineCode(e.FileExtension()),
			InlineCode(envVar("outputs." + name)),
		})
	}
	w.Table([]string{"Target", "Extension", "Output variable"}, rows)
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("estreegen "+cmd.Name(), cleanDescription(cmd.Short))
	w.GeneratedMarker()

	w.Header(1, "estreegen "+cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}
	w.CodeBlock("bash", cmd.UseLine())

	if len(cmd.Aliases) > 0 {
		w.Paragraph("Aliases: " + InlineCode(strings.Join(cmd.Aliases, "`, `")))
	}
	if cmd.Name() == "emit" {
		writeTargets(w)
	}
	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Flags")
		w.Table(flagHeaders, flagRows(cmd.LocalFlags()))
	}
	if cmd.HasAvailableInheritedFlags() {
		w.Paragraph("Global flags are listed in the [reference index](index.md#flags).")
	}
	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}
	return w.Bytes()
}

var flagHeaders = []string{"Flag", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name = InlineCode("-"+f.Shorthand) + ", " + name
		}
		def := ""
		if f.DefValue != "" && f.DefValue != "[]" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{name, def, cleanDescription(f.Usage)})
	})
	return rows
}
