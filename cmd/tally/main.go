package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"tally/internal/cli"
	"tally/internal/core"
	"tally/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	var (
		refDate  = flag.String("date", "", "reference date for the cycle (YYYY-MM-DD, default today)")
		startDay = flag.Int("start-day", cfg.CycleStartDay, "day of month the cycle starts on (1-28)")
		category = flag.String("category", "", "only show rows in this category")
		kind     = flag.String("kind", "", "only show rows of this kind (income|expense)")
		search   = flag.String("search", "", "only show rows whose description contains this text")
	)
	flag.Parse()

	ref := time.Now()
	if *refDate != "" {
		parsed, err := time.Parse("2006-01-02", *refDate)
		if err != nil {
			logger.Error("Invalid reference date", "error", err, "date", *refDate)
			os.Exit(1)
		}
		ref = parsed
	}

	result := cli.InitBackend(logger, cfg)
	defer result.Cleanup()

	ledger := services.NewLedgerService(result.Store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accounts, err := ledger.SeedDefaultAccounts(ctx, cfg.UserID)
	if err != nil {
		logger.Error("Failed to seed default accounts", "error", err)
		os.Exit(1)
	}

	filter := core.LedgerFilter{
		Description: *search,
		Category:    *category,
		Kind:        core.Kind(*kind),
	}

	report, err := ledger.CycleView(ctx, cfg.UserID, ref, *startDay, filter)
	if err != nil {
		logger.Error("Failed to build cycle report", "error", err)
		os.Exit(1)
	}

	printReport(report, accounts)
}

func printReport(r *services.CycleReport, accounts []core.Account) {
	lv := r.Ledger

	fmt.Printf("Cycle %s\n\n", lv.Window)
	fmt.Printf("Opening balance: %10s\n", lv.OpeningBalance)
	fmt.Printf("Income:          %10s\n", lv.TotalIncome)
	fmt.Printf("Expenses:        %10s\n", lv.TotalExpense)
	fmt.Printf("Net:             %10s\n", lv.Net)
	fmt.Printf("Cycle balance:   %10s\n\n", lv.CycleBalance)

	if len(lv.Rows) > 0 {
		fmt.Println("Transactions (newest first):")
		for _, row := range lv.Rows {
			sign := "+"
			if row.Kind == core.Expense {
				sign = "-"
			}
			fmt.Printf("  %s  %s%9s  %-18s %-30s balance %s\n",
				row.Date.Format("2006-01-02"), sign, row.Amount,
				row.Category, row.Description, row.Balance)
		}
		fmt.Println()
	}

	if len(r.Budgets) > 0 {
		fmt.Println("Budgets:")
		for _, b := range r.Budgets {
			fmt.Printf("  %-18s %s / %s  (%.0f%%, %s)\n",
				b.Category, b.Spent, b.Limit, b.Percent, b.Status)
		}
		fmt.Println()
	}

	if len(accounts) > 0 {
		fmt.Println("Account balances:")
		for _, acc := range accounts {
			fmt.Printf("  %-18s %10s\n", acc.Name, r.Balances[acc.ID])
		}
	}
}
