package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jfinfosena/25adso-pap/config"
	"github.com/spf13/cobra"
)

const versionTimeFormat = "20060102150405"

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.AddCommand(
		createMigrationCommand(),
		migrateUpCommand(),
		migrateDownCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createMigrationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "create a pair of empty sql migration scripts",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			version := time.Now().Format(versionTimeFormat)
			name := args[0]
			up := fmt.Sprintf("migration/%s_%s.up.sql", version, name)
			down := fmt.Sprintf("migration/%s_%s.down.sql", version, name)

			if err := os.WriteFile(up, []byte{}, 0644); err != nil {
				panic(err)
			}
			if err := os.WriteFile(down, []byte{}, 0644); err != nil {
				panic(err)
			}

			fmt.Println("Created SQL up script:", up)
			fmt.Println("Created SQL down script:", down)
		},
	}
}

func migrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "migrate all the way up",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			m := newMigrate()
			err := m.Up()
			if err == migrate.ErrNoChange {
				fmt.Println("No change in migration")
				return
			}
			if err != nil {
				panic(err)
			}
			fmt.Println("Migrated up")
		},
	}
}

func migrateDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "roll back one migration step",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			m := newMigrate()
			err := m.Steps(-1)
			if err == migrate.ErrNoChange {
				fmt.Println("No change in migration")
				return
			}
			if err != nil {
				panic(err)
			}
			fmt.Println("Rolled back one step")
		},
	}
}

func newMigrate() *migrate.Migrate {
	db := config.Load().Database
	dsn := fmt.Sprintf(
		"mysql://%s:%s@tcp(%s:%d)/%s",
		db.Username, db.Password, db.Host, db.Port, db.DatabaseName,
	)
	m, err := migrate.New("file://migration", dsn)
	if err != nil {
		panic(err)
	}
	return m
}
