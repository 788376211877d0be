package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	accountStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/account"
	billStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	memberStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	notificationStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/notification"
	packStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/pack"
	"github.com/Bhaskar125/gym-management-system/internal/application/orchestrators"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate demo packages, members, bills and login accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		err = orchestrators.ExecuteSeed(cmd.Context(), orchestrators.SeedStores{
			Packages:      packStore.NewDocStore(db),
			Members:       memberStore.NewDocStore(db),
			Bills:         billStore.NewDocStore(db),
			Notifications: notificationStore.NewDocStore(db),
			Accounts:      accountStore.NewDocStore(db),
		})
		if errors.Is(err, orchestrators.ErrAlreadySeeded) {
			fmt.Println("Already seeded — nothing to do.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println("Seeded demo data.")
		fmt.Printf("Admin login:  %s / %s\n", orchestrators.DemoAdminEmail, orchestrators.DemoAdminPassword)
		fmt.Printf("Member login: %s / %s\n", orchestrators.DemoMemberEmail, orchestrators.DemoMemberPassword)
		return nil
	},
}
