package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/frahmantamala/hotel-pms/internal"
	"github.com/frahmantamala/hotel-pms/internal/auth"
	"github.com/frahmantamala/hotel-pms/internal/room"
	"github.com/frahmantamala/hotel-pms/internal/staff"
	"github.com/frahmantamala/hotel-pms/pkg/logger"
)

const (
	seedPassword     = "password123"
	seedOwnerEmail   = "owner@demo-hotel.test"
	seedManagerEmail = "manager@demo-hotel.test"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a demo hotel",
	Long:  `Create a demo hotel with an owner, an approved manager and a set of rooms.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(".")
		if err != nil {
			return err
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			return err
		}

		if clearData {
			if err := clearTables(gormDB); err != nil {
				return err
			}
			fmt.Println("Cleared existing data")
		}

		app := NewApplication(cfg, db, gormDB, logger.LoggerWrapper())
		defer app.Events.Wait()
		return seedDemoHotel(context.Background(), app)
	},
}

func seedDemoHotel(ctx context.Context, app *Application) error {
	location := "Jl. Demo No. 1"
	roomCount := 6
	owner, err := app.AuthService.Signup(ctx, auth.SignupDTO{
		Fullname:  "Demo Owner",
		Email:     seedOwnerEmail,
		Password:  seedPassword,
		HotelName: "Demo Hotel",
		Location:  &location,
		RoomCount: &roomCount,
	})
	if err != nil {
		if internal.IsConflict(err) {
			fmt.Println("Demo hotel already seeded; use --clear to start over")
			return nil
		}
		return fmt.Errorf("seed owner: %w", err)
	}
	hotelID := *owner.User.HotelID
	fmt.Println("Seeded owner:", seedOwnerEmail, "hotel:", hotelID)

	manager, err := app.AuthService.StaffSignup(ctx, auth.StaffSignupDTO{
		Fullname: "Demo Manager",
		Email:    seedManagerEmail,
		Password: seedPassword,
		HotelID:  hotelID,
		Role:     "manager",
	})
	if err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}

	approved := true
	if _, err := app.StaffService.SetApproval(ctx, owner.User, staff.SetApprovalDTO{StaffID: manager.ID, IsApproved: &approved}); err != nil {
		return fmt.Errorf("approve manager: %w", err)
	}
	fmt.Println("Seeded manager:", seedManagerEmail)

	batches := []room.AddRoomsDTO{
		{RoomNumbers: []string{"101", "102", "103"}, Type: "STANDARD", Price: 50000},
		{RoomNumbers: []string{"201", "202"}, Type: "DELUXE", Price: 90000},
		{RoomNumbers: []string{"301"}, Type: "SUITE", Price: 150000},
	}
	for _, b := range batches {
		resp, err := app.RoomService.AddRooms(ctx, hotelID, b)
		if err != nil {
			return fmt.Errorf("seed rooms: %w", err)
		}
		fmt.Println(resp.Message)
	}

	fmt.Println("Seeding completed. Password for both accounts:", seedPassword)
	return nil
}

func clearTables(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"bookings", "rooms", "sessions", "staff", "users", "hotels"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}
