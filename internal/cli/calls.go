package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/batchlab/batchctl/internal/adapters/fs"
	"github.com/batchlab/batchctl/internal/app"
	"github.com/batchlab/batchctl/internal/domain"
)

// callSourceFlags are the mutually exclusive ways a command can receive a
// call list: an inline single call, a calls file, or a named template.
type callSourceFlags struct {
	to        string
	value     string
	data      string
	callsFile string
	template  string
}

func (f *callSourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to, "to", "", "Recipient for a single inline call")
	cmd.Flags().StringVar(&f.value, "value", "", "ETH value for the inline call (decimal, e.g. 0.001)")
	cmd.Flags().StringVar(&f.data, "data", "", "Hex calldata for the inline call")
	cmd.Flags().StringVarP(&f.callsFile, "calls-file", "f", "", "YAML or JSON file with the call list")
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Named batch template")
}

// resolve produces the authored call list, falling back to interactive
// template selection when nothing was specified.
func (f *callSourceFlags) resolve(cmd *cobra.Command, a *app.App) ([]domain.CallInput, string, error) {
	sources := 0
	for _, set := range []bool{f.to != "", f.callsFile != "", f.template != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, "", fmt.Errorf("--to, --calls-file and --template are mutually exclusive")
	}

	switch {
	case f.to != "":
		return []domain.CallInput{{To: f.to, Value: f.value, Data: f.data}}, "", nil

	case f.callsFile != "":
		calls, err := fs.LoadCallsFile(f.callsFile)
		return calls, "", err

	case f.template != "":
		tmpl, err := a.Templates.GetTemplate(cmd.Context(), f.template)
		if err != nil {
			return nil, "", err
		}
		return tmpl.Calls, tmpl.Name, nil

	default:
		templates, err := a.ListTemplates.Run(cmd.Context())
		if err != nil {
			return nil, "", err
		}
		tmpl, err := a.Selector.SelectTemplate(cmd.Context(), templates, "Select a batch template")
		if err != nil {
			return nil, "", err
		}
		return tmpl.Calls, tmpl.Name, nil
	}
}

// printJSON writes a result as indented JSON for --json mode.
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
