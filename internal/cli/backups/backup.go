package backups

import (
	"fmt"

	"cuemark/internal/backup"
	"cuemark/internal/cli"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.DataPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.DataPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	fmt.Println("Backups (newest first):")
	for _, b := range backups {
		fmt.Printf("  %s (%s)\n", b.Name, b.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup name from 'backup list'."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.DataPath())
	if err := mgr.RestoreBackup(c.Name); err != nil {
		return err
	}
	fmt.Printf("Restored backup: %s\n", c.Name)
	return nil
}
