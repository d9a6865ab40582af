package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/services"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Offline helpers for tenant settings documents",
	}
	cmd.AddCommand(newSettingsValidateCmd(), newSettingsDefaultsCmd())
	return cmd
}

func newSettingsValidateCmd() *cobra.Command {
	var category, file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a settings document against its category rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, ok := models.ParseCategory(category)
			if !ok {
				return services.ErrInvalidCategory
			}

			var in io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			doc, err := decodeDocument(in)
			if err != nil {
				return err
			}
			if err := services.ValidateSettings(cat, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s settings are valid\n", cat)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "settings category")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON document to validate, - for stdin")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

// decodeDocument accepts either a bare settings object or the PUT request
// body shape {"settings": {...}}.
func decodeDocument(r io.Reader) (models.Document, error) {
	var raw interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidFormat, err)
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, services.ErrInvalidFormat
	}
	if len(obj) == 1 {
		if inner, ok := obj["settings"].(map[string]interface{}); ok {
			obj = inner
		}
	}
	return models.Document(obj), nil
}

func newSettingsDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "defaults [category]",
		Short:     "Print the default document for one or every category",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: categoryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if len(args) == 1 {
				cat, ok := models.ParseCategory(args[0])
				if !ok {
					return services.ErrInvalidCategory
				}
				return enc.Encode(services.DefaultSettings(cat))
			}
			all := make(map[models.Category]models.Document, len(models.Categories))
			for _, cat := range models.Categories {
				all[cat] = services.DefaultSettings(cat)
			}
			return enc.Encode(all)
		},
	}
}

func categoryNames() []string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return names
}
