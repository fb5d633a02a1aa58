package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the fastener catalog",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "only show one category (mechanical, adhesive, thermal)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	k, err := loadKB()
	if err != nil {
		return err
	}

	shown := 0
	for i := range k.Fasteners {
		f := &k.Fasteners[i]
		if catalogCategory != "" && string(f.Category) != catalogCategory {
			continue
		}
		shown++

		fmt.Println(successStyle.Render(f.Name) + "  " + badgeStyle.Render(string(f.Category)))
		fmt.Printf("  materials:  %s\n", strings.Join(f.CompatibleMaterials, ", "))
		fmt.Printf("  strength:   tensile %s, shear %s\n", f.TensileStrength, f.ShearStrength)
		fmt.Printf("  resists:    water %s, temp %s, UV %s, vibration %s, chemical %s\n",
			f.WaterResistance, f.TemperatureResistance, f.UVResistance,
			f.VibrationResistance, f.ChemicalResistance)
		fmt.Printf("  bond:       %s, %s\n", f.Rigidity, f.Permanence)
		if f.RequiresTwoSidedAccess {
			fmt.Println(mutedStyle.Render("  needs access to both sides"))
		}
		if f.CuringTime != "" {
			fmt.Printf("  curing:     %s\n", f.CuringTime)
		}
		if len(f.RequiresTools) > 0 {
			fmt.Printf("  tools:      %s\n", strings.Join(f.RequiresTools, ", "))
		}
		fmt.Println()
	}

	if shown == 0 {
		fmt.Println(warningStyle.Render("No fasteners match."))
	}
	return nil
}
