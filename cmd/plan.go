package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vzahanych/trip-planner-app/internal/export"
	"github.com/vzahanych/trip-planner-app/internal/planner"
	"github.com/vzahanych/trip-planner-app/internal/trip"
	"go.uber.org/zap"
)

type planFlags struct {
	form    trip.Form
	pdfPath string
	txtPath string
}

func planCmd() *cobra.Command {
	f := &planFlags{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate one travel plan and print it",
		Example: `  tripplanner plan --destination Goa --days 3 --budget 15000 \
    --style Solo --food Vegetarian --stay Hostel --pdf goa.pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.form.Destination, "destination", "d", "", "destination city")
	flags.IntVar(&f.form.Duration, "days", 3, "trip length in days (1-7)")
	flags.Int64Var(&f.form.Budget, "budget", 15000, "total budget in major currency units")
	flags.StringVar(&f.form.TravelStyle, "style", string(trip.TravelSolo), "travel style: Solo, Friends or Family")
	flags.StringVar(&f.form.FoodPreference, "food", string(trip.FoodLocalCuisine), "food preference: Vegetarian, Non-Vegetarian or Local Cuisine")
	flags.StringVar(&f.form.Accommodation, "stay", string(trip.StayBudgetHotel), "accommodation: Hostel, Budget Hotel or Airbnb")
	flags.StringVar(&f.pdfPath, "pdf", "", "write the itinerary as PDF to this path")
	flags.StringVar(&f.txtPath, "txt", "", "write the itinerary as text to this path")

	return cmd
}

func runPlan(cmd *cobra.Command, f *planFlags) error {
	a, err := buildApp(cmd.Context(), cfg, log.Logger, tele)
	if err != nil {
		return err
	}
	defer a.Close()

	run := a.planner.Run(cmd.Context(), f.form)
	out := cmd.OutOrStdout()

	var verr *trip.ValidationError
	var genErr *planner.GenerationError
	switch {
	case run.State == planner.StateReady:
	case errors.As(run.Err, &verr):
		for _, fe := range verr.Fields {
			fmt.Fprintf(cmd.ErrOrStderr(), "invalid %s: %s\n", fe.Field, fe.Message)
		}
		return verr
	case errors.As(run.Err, &genErr):
		fmt.Fprintf(cmd.ErrOrStderr(), "Could not generate the itinerary: %s\n", genErr.Failure.Detail)
		return genErr
	default:
		return fmt.Errorf("planning run ended in state %s: %w", run.State, run.Err)
	}

	printBundle(out, run.Bundle, cfg.Planner.Currency)

	for format, path := range map[string]string{"pdf": f.pdfPath, "txt": f.txtPath} {
		if path == "" {
			continue
		}
		if err := writeExport(format, path, run.Bundle.Itinerary.Text); err != nil {
			log.Error("Export failed", zap.String("format", format), zap.Error(err))
			return err
		}
		fmt.Fprintf(out, "Saved %s to %s\n", strings.ToUpper(format), path)
	}

	return nil
}

func writeExport(format, path, text string) error {
	e, err := export.For(format, cfg.Export)
	if err != nil {
		return err
	}
	data, err := e.Export(text)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func printBundle(w io.Writer, b *trip.Bundle, currency string) {
	req := b.Request
	fmt.Fprintf(w, "%d-day trip to %s\n\n", req.Duration(), req.Destination())
	fmt.Fprintln(w, b.Itinerary.Text)

	fmt.Fprintln(w)
	if b.Weather.Available() {
		fmt.Fprintf(w, "Weather: %.1f°C, %s\n", *b.Weather.TemperatureC, *b.Weather.Condition)
	} else {
		fmt.Fprintln(w, "Weather: unavailable")
	}
	if b.Location.Available() {
		fmt.Fprintf(w, "Coordinates: %.4f, %.4f\n", *b.Location.Latitude, *b.Location.Longitude)
	} else {
		fmt.Fprintln(w, "Coordinates: unavailable")
	}

	fmt.Fprintln(w, "\nBudget:")
	for _, item := range b.Budget.Items {
		fmt.Fprintf(w, "  %-14s %s\n", item.Category, item.Amount.Format(currency))
	}
	fmt.Fprintf(w, "  Estimated spend: %s, remaining: %s\n",
		b.Budget.Total().Format(currency), b.Budget.Remaining(req.Budget()).Format(currency))

	if b.Tips != "" {
		fmt.Fprintf(w, "\nTips:\n%s\n", b.Tips)
	}
}
