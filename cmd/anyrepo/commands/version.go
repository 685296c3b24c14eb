// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the anyrepo version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("anyrepo %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
