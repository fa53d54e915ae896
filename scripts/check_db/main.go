// Verifies both database roles can connect with the configured
// credentials. Useful when wiring up a new environment.
package main

import (
	"context"
	"fmt"
	"os"

	"workshop-bridge/internal/config"

	"github.com/jackc/pgx/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	checks := map[string]string{
		"anon":    cfg.Database.AnonConnectionString(),
		"service": cfg.Database.ServiceConnectionString(),
	}

	ctx := context.Background()
	failed := false

	for role, connString := range checks {
		conn, err := pgx.Connect(ctx, connString)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: unable to connect: %v\n", role, err)
			failed = true
			continue
		}

		var dbName, dbUser string
		if err := conn.QueryRow(ctx, "SELECT current_database(), current_user").Scan(&dbName, &dbUser); err != nil {
			fmt.Fprintf(os.Stderr, "%s: query failed: %v\n", role, err)
			failed = true
		} else {
			fmt.Printf("%s: connected to %s as %s\n", role, dbName, dbUser)
		}

		conn.Close(ctx)
	}

	if failed {
		os.Exit(1)
	}
}
