package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tarika/internal/adapters/driving/inbox"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest files as they appear in a directory",
	Long: `Watch a directory and ingest every file written to it once it stops changing.

Hidden files and partial downloads are ignored. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchExisting bool
	watchSettle   time.Duration
)

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Also ingest files already in the directory")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", inbox.DefaultSettle, "How long a file must be unchanged before ingesting")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	w := inbox.New(args[0], ingestService,
		inbox.WithExisting(watchExisting),
		inbox.WithSettle(watchSettle),
		inbox.WithProgress(progressPrinter(cmd)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.Dir())
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Println("Stopped.")
	return nil
}
