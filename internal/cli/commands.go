package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pet-care-insights/internal/adapters/storage/boltstore"
	"pet-care-insights/internal/app"
	"pet-care-insights/internal/domain/reports"
)

func newNotificationsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Panel de notificaciones del usuario (24h atrás, 72h adelante)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := g.format()
			if err != nil {
				return err
			}
			if strings.TrimSpace(g.User) == "" {
				return errors.New("--user is required")
			}

			e, err := g.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			feed := e.services.Notifications.ForUser(cmd.Context(), strings.TrimSpace(g.User))
			return renderNotifications(cmd.OutOrStdout(), feed, format)
		},
	}
}

func newReportCmd(g *globalFlags) *cobra.Command {
	var (
		petID    string
		preset   string
		from     string
		to       string
		sections string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reporte de salud de una mascota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := g.format()
			if err != nil {
				return err
			}
			opts, err := reports.ParseSections(sections)
			if err != nil {
				return err
			}

			e, err := g.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			userID, err := g.userFor(cmd.Context(), e, petID)
			if err != nil {
				return err
			}

			rq := reports.RangeQuery{Preset: preset, From: from, To: to}
			content, err := e.services.Reports.Build(cmd.Context(), userID, petID, rq, opts)
			if err != nil {
				return err
			}
			return renderReport(cmd.OutOrStdout(), content, format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&petID, "pet", "", "pet id")
	f.StringVar(&preset, "range", "", "7d|30d|90d|180d|365d (default 30d)")
	f.StringVar(&from, "from", "", "range start (RFC3339 or YYYY-MM-DD), overrides --range")
	f.StringVar(&to, "to", "", "range end (default now)")
	f.StringVar(&sections, "sections", "", "csv of sections (default all)")
	_ = cmd.MarkFlagRequired("pet")
	return cmd
}

func newVaccinesCmd(g *globalFlags) *cobra.Command {
	var petID string

	cmd := &cobra.Command{
		Use:   "vaccines",
		Short: "Vacunas aplicadas y próximas de una mascota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := g.format()
			if err != nil {
				return err
			}

			e, err := g.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			userID, err := g.userFor(cmd.Context(), e, petID)
			if err != nil {
				return err
			}
			p, err := e.services.Vaccines.ForPet(cmd.Context(), userID, petID)
			if err != nil {
				return err
			}
			return renderVaccines(cmd.OutOrStdout(), p, format, e.now())
		},
	}

	cmd.Flags().StringVar(&petID, "pet", "", "pet id")
	_ = cmd.MarkFlagRequired("pet")
	return cmd
}

// newImportCmd copia un snapshot JSON a un archivo bbolt.
func newImportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Importa un snapshot JSON (--data) a un archivo bbolt (--db)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if g.Data == "" || g.DB == "" {
				return errors.New("import needs both --data and --db")
			}

			e, err := g.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ds, err := LoadSnapshotFile(g.Data, e.loc, e.now(), e.log)
			if err != nil {
				return err
			}

			store, err := boltstore.Open(g.DB)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := ds.Store(cmd.Context(), app.BoltStores(store)); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"imported %d pets, %d events, %d reminders, %d records into %s (%d dropped)\n",
				len(ds.Pets), len(ds.Events), len(ds.Reminders), len(ds.Records), store.Path(), ds.Dropped)
			return err
		},
	}
}
