package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/aliasx/internal/errors"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputDir, _ := cmd.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "pass --dir")
		}

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		rootCmd.DisableAutoGenTag = true
		if err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler); err != nil {
			return errors.Wrap(err, "generating markdown")
		}

		printf(cmd, "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "o", "", "output directory for documentation")
	rootCmd.AddCommand(genDocCmd)
}

// filePrepender turns aliasx_backup_restore.md into a page titled "aliasx backup restore".
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	title := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
draft: false
toc: true
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
