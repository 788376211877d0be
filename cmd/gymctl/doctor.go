package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Bhaskar125/gym-management-system/internal/application/orchestrators"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check storage connectivity with read and write probes",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		report := orchestrators.ExecuteDoctor(cmd.Context(), orchestrators.DoctorDeps{DB: db})

		printProbe("read", report.Read)
		printProbe("write", report.Write)
		if !report.Read.OK || !report.Write.OK {
			return fmt.Errorf("storage is unhealthy")
		}
		fmt.Println("Storage is healthy.")
		return nil
	},
}

func printProbe(name string, p orchestrators.ProbeResult) {
	if p.OK {
		fmt.Printf("%-6s ok\n", name)
		return
	}
	fmt.Printf("%-6s FAILED (%s): %s\n", name, p.Kind, p.Error)
}
