// Command-line tool to clean the database by dropping all tables in the public schema.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Monesha-B/nexus-job-platform/internal/config"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/resume"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
)

const dropAllTables = `
DO $$
	DECLARE
		r RECORD;
	BEGIN
		FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
			EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
		END LOOP;
	END $$;
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	purgeStorage := flag.Bool("purge-storage", false, "also delete every resume object from the configured bucket")
	flag.Parse()

	fmt.Println("WARNING: This command will DROP ALL TABLES in the 'public' schema of your database.")
	if *purgeStorage {
		fmt.Println("Every stored resume file in the configured bucket will be deleted as well.")
	}
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	if strings.TrimSpace(strings.ToLower(input)) != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Skip the admin seed; the tables are about to go.
	dbCfg := database.ConfigFrom(cfg)
	dbCfg.AdminEmail, dbCfg.AdminPassword = "", ""

	db, err := database.NewDBInstance(dbCfg)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	if err := db.Exec(dropAllTables).Error; err != nil {
		log.Fatalf("failed to execute drop command: %v", err)
	}
	fmt.Println("All tables dropped successfully.")

	if *purgeStorage {
		if err := purge(cfg.Storage.GCSBucket); err != nil {
			log.Fatalf("failed to purge storage: %v", err)
		}
	}
}

func purge(bucket string) error {
	if bucket == "" {
		fmt.Println("No bucket configured, nothing to purge.")
		return nil
	}
	client, err := resume.NewCloudStorageClient(bucket)
	if err != nil {
		return err
	}
	defer client.Close()

	names, err := client.ListObjects(resume.ObjectPrefix + "/")
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := client.DeleteFile(name); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}
	fmt.Printf("Deleted %d objects from %s.\n", len(names), bucket)
	return nil
}
