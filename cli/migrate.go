package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the audit database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				if a.services.Store == nil {
					return errors.New("no audit database configured (db.host)")
				}
				if err := a.services.Store.Migrate(); err != nil {
					return fmt.Errorf("migrating audit database: %w", err)
				}
				a.printer.message(a.ctx, "message.migrated", nil)
				return nil
			})
		},
	}
}
