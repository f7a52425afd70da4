package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Print contact details",
	Long: `Prints the text of the in-game contact popup.

Examples:
  drive contact
  drive contact --config ./my-drive.yaml`,
	Args: cobra.NoArgs,
	Run:  runContact,
}

func runContact(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := cfg.Content.Contact
	fmt.Println(p.Title)
	fmt.Println(p.Message)
	if p.Content != "" {
		fmt.Println()
		fmt.Println(p.Content)
	}
}
