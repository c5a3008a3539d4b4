package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ecarvalho/aulaplan/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore the lesson collection",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all lessons to a JSON backup file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		collection, err := s.LessonRepo().Load(context.Background())
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}

		data, err := store.ExportBackup(collection)
		if err != nil {
			return err
		}

		out := store.BackupFilename(time.Now())
		if len(args) == 1 {
			out = args[0]
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}

		fmt.Printf("Exported %d lessons to %s\n", len(collection), out)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the lesson collection with a JSON backup",
	Long:  "Replaces every stored lesson with the contents of the backup file. The import is all-or-nothing: a malformed file leaves the current collection untouched.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}

		collection, err := store.ImportBackup(data)
		if err != nil {
			return err
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.LessonRepo().Save(context.Background(), collection); err != nil {
			return fmt.Errorf("save lessons: %w", err)
		}

		fmt.Printf("Imported %d lessons from %s\n", len(collection), args[0])
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
