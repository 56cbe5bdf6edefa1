package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"inventory/internal/models"
)

// NewServeCommand runs the HTTP API until SIGINT or SIGTERM.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the product API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Config.SeedDummyData {
				id, err := a.Products.InsertDummyProduct(cmd.Context())
				if err != nil {
					log.Printf("Error seeding dummy product: %v", err)
				} else {
					log.Printf("Seeded dummy product %d", id)
				}
			}

			unsubscribe := a.LogChanges()
			defer unsubscribe()

			if a.MQ != nil {
				err := a.MQ.ConsumeChanges(func(event models.ChangeEvent) error {
					log.Printf("Received change event %s: %s at %s", event.ID, event.URI, event.OccurredAt)
					return nil
				})
				if err != nil {
					log.Printf("Failed to start RabbitMQ consumer: %v", err)
				}
			}

			server := a.HTTP()
			log.Printf("Starting server on port %s", a.Config.AppPort)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			listenErr := make(chan error, 1)
			go func() {
				listenErr <- server.Listen(a.Config.AppPort)
			}()

			select {
			case err := <-listenErr:
				return fmt.Errorf("server failed to start: %w", err)
			case <-quit:
			}

			log.Println("Shutting down server...")
			if err := server.Shutdown(); err != nil {
				log.Printf("Error during Fiber shutdown: %v", err)
			}
			log.Println("Server gracefully stopped")
			return nil
		},
	}
}
