package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/boolstep/internal/presets"
)

// kindDescriptions explains each preset kind on the reference page.
var kindDescriptions = map[presets.Kind]string{
	presets.KindTrace:   "Reduced step by step, showing the order of operations.",
	presets.KindTable:   "Shown as a truth table over the active variables.",
	presets.KindCompare: "Two expressions compared row by row for equivalence.",
}

// generatePresetDocs generates the built-in preset catalogue page.
func generatePresetDocs(outDir string) error {
	log.Printf("Generating preset docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	catalog := presets.Default()

	w := NewMarkdownWriter()
	w.Frontmatter("Presets", "Built-in boolstep presets")
	w.GeneratedMarker()

	w.Header(1, "Presets")
	w.Paragraph("Run any preset with `boolstep presets <name>`. A YAML file with the same layout replaces the catalogue through `presets_file` or `--presets`.")

	for _, kind := range []presets.Kind{presets.KindTrace, presets.KindTable, presets.KindCompare} {
		list := catalog.ByKind(kind)
		if len(list) == 0 {
			continue
		}
		w.Header(2, InlineCode(string(kind)))
		w.Paragraph(kindDescriptions[kind])

		headers := []string{"Name", "Expression", "Title"}
		if kind == presets.KindCompare {
			headers = []string{"Name", "Expression", "Compared with", "Title"}
		}
		var rows [][]string
		for _, p := range list {
			row := []string{InlineCode(p.Name), InlineCode(p.Expr)}
			if kind == presets.KindCompare {
				row = append(row, InlineCode(p.Compare))
			}
			rows = append(rows, append(row, p.Title))
		}
		w.Table(headers, rows)
	}

	if err := os.WriteFile(filepath.Join(outDir, "presets.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated presets.md")
	return nil
}
