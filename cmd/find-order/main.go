package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/backend"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/config"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

// Ops tool: resolve one or more tracking codes against the order backend and
// print what it knows about them.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-order/main.go <tracking_code> [tracking_code...]")
		fmt.Println("Requires BACKEND_BASE_URL and BACKOFFICE_TOKEN (env or .env)")
		os.Exit(1)
	}

	// Load .env if present; real env vars win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	token := os.Getenv("BACKOFFICE_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "BACKOFFICE_TOKEN is required")
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := backend.NewClient(cfg.Backend, func() string { return token }, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Tracking", "Client", "Phone", "Status", "Amount", "Paid", "Updated"})

	for _, code := range os.Args[1:] {
		order, err := client.ResolveTracking(ctx, code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lookup %s: %v\n", code, err)
			continue
		}
		if order == nil {
			table.Append([]string{code, "-", "-", "not found", "-", "-", "-"})
			continue
		}
		table.Append([]string{
			order.TrackingCode,
			order.ClientName,
			order.ClientPhone,
			string(order.Status),
			formatAmount(order),
			fmt.Sprintf("%t", order.IsPaid),
			order.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}

	table.Render()
}

func formatAmount(o *domain.Order) string {
	if o.Amount == nil {
		return "-"
	}
	currency := domain.DefaultCurrency
	if o.Currency != nil {
		currency = *o.Currency
	}
	return fmt.Sprintf("%.2f %s", *o.Amount, currency)
}
