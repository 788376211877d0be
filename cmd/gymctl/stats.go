package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	billStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	memberStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	packStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/pack"
	"github.com/Bhaskar125/gym-management-system/internal/application/projections"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		stats, err := projections.QueryGetDashboardStats(cmd.Context(), projections.GetDashboardStatsDeps{
			MemberStore:  memberStore.NewDocStore(db),
			BillStore:    billStore.NewDocStore(db),
			PackageStore: packStore.NewDocStore(db),
		})
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Members:   %d total, %d active, %d inactive\n", stats.TotalMembers, stats.ActiveMembers, stats.InactiveMembers)
		fmt.Printf("Bills:     %d pending\n", stats.PendingBills)
		fmt.Printf("Revenue:   %.2f\n", stats.TotalRevenue)
		fmt.Printf("Packages:  %d\n", stats.TotalPackages)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}
