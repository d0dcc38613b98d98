package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/prosody/internal/forms"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the fixed poetic forms prosody recognizes",
	Args:  cobra.NoArgs,
	RunE:  runForms,
}

func init() {
	RootCmd.AddCommand(formsCmd)
}

func runForms(cmd *cobra.Command, args []string) error {
	cfg, err := mustConfig()
	if err != nil {
		return err
	}

	catalog := forms.Builtin()
	if cfg.Forms.File != "" {
		catalog, err = forms.LoadFromFile(cfg.Forms.File)
		if err != nil {
			return fmt.Errorf("load forms: %w", err)
		}
	}

	u := GetUI()
	if u.IsJSON() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog.Forms())
	}

	for _, f := range catalog.Forms() {
		meter := f.Meter
		if meter == "" {
			meter = "any meter"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", u.Styles.Form.Render(f.Title), u.Styles.Muted.Render("("+f.Name+")"))
		fmt.Fprintf(os.Stdout, "  %s %d lines, %s, %s\n", u.Styles.Bullet, f.Lines, u.Styles.Letter.Render(f.Scheme), u.Styles.Meter.Render(meter))
	}
	return nil
}
