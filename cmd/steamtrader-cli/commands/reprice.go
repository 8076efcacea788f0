package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"steamtrader/internal/components/chrono"
	"steamtrader/internal/components/telemetry"
	"steamtrader/lib/steamtrader"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	input "github.com/tcnksm/go-input"
)

func init() {
	repriceGame = repriceCmd.Flags().String("game", "tf2", "The game whose listings to reprice.")
	repriceSkipPrice = repriceCmd.Flags().Float64("skip-price", 0, "Leave items listed at exactly this price alone.")
	repriceDryRun = repriceCmd.Flags().Bool("dry-run", false, "Only print the planned changes.")
	repriceYes = repriceCmd.Flags().BoolP("yes", "y", false, "Apply the changes without asking.")
	repriceEvery = repriceCmd.Flags().String("every", "", "A cron spec like \"@every 15m\" to keep repricing on, requires --yes or --dry-run.")
	rootCmd.AddCommand(repriceCmd)
}

var (
	repriceGame      *string
	repriceSkipPrice *float64
	repriceDryRun    *bool
	repriceYes       *bool
	repriceEvery     *string
)

func renderPlans(plans []steamtrader.RepricePlan, caption string) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "GID", "Item ID", "Old", "New", "Direction"})
	for _, plan := range plans {
		t.AppendRow(table.Row{
			formatOptionalInt(plan.Item.ID),
			plan.Item.GID,
			plan.Item.ItemID,
			fmt.Sprintf("%.2f", plan.OldPrice),
			fmt.Sprintf("%.2f", plan.NewPrice),
			plan.Direction.String(),
		})
	}
	t.SetCaption(caption)
	t.Render()
}

func confirm(question string) (bool, error) {
	ui := input.DefaultUI()
	answer, err := ui.Ask(question, &input.Options{
		Default:  "n",
		Loop:     true,
		Required: true,
		ValidateFunc: func(s string) error {
			switch strings.ToLower(s) {
			case "y", "yes", "n", "no":
				return nil
			}
			return errors.New("answer y or n")
		},
	})
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

var repriceCmd = &cobra.Command{
	Use:   "reprice",
	Short: "Moves the prices of listed items towards the market: under the market price when above it, or up to the next offer when alone at the bottom.",
	RunE: func(cmd *cobra.Command, args []string) error {
		appID, err := parseGame(*repriceGame)
		if err != nil {
			return err
		}
		client, err := apiClient()
		if err != nil {
			return err
		}

		if *repriceEvery == "" {
			return repriceOnce(cmd.Context(), client, appID, !*repriceYes)
		}
		if !*repriceYes && !*repriceDryRun {
			return errors.New("--every cannot ask for confirmation, pass --yes or --dry-run")
		}

		ctx := cmd.Context()
		cron := chrono.NewStandardCron(session.tel, session.clock)
		err = cron.Cron(*repriceEvery, func() {
			err := repriceOnce(ctx, client, appID, false)
			if err != nil {
				slog.Error("reprice failed", "err", err)
			}
		})
		if err != nil {
			return fmt.Errorf("schedule %q: %w", *repriceEvery, err)
		}
		telemetry.InstrumentPerfStats(ctx, session.tel, time.Minute)
		slog.Info("repricing on a schedule, press Ctrl+C to stop", "every", *repriceEvery)

		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return cron.Stop(stopCtx)
	},
}

func repriceOnce(ctx context.Context, client *steamtrader.Client, appID int, ask bool) error {
	opts := steamtrader.RepriceOptions{SkipPrice: *repriceSkipPrice, DryRun: true}
	if *repriceDryRun || ask {
		plans, err := client.Reprice(ctx, appID, opts)
		if err != nil {
			return err
		}
		renderPlans(plans, "planned")
		if *repriceDryRun || len(plans) == 0 {
			return nil
		}
		ok, err := confirm(fmt.Sprintf("apply %d price changes? [y/N]", len(plans)))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	opts.DryRun = false
	plans, err := client.Reprice(ctx, appID, opts)
	if err != nil {
		if len(plans) > 0 {
			renderPlans(plans, "applied before the failure")
		}
		return err
	}
	if len(plans) > 0 {
		renderPlans(plans, "applied")
	}
	return nil
}
