package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/explore-flights/multimodal/api/business/routes"
	"github.com/explore-flights/multimodal/api/config"
	"github.com/explore-flights/multimodal/worker/action"
	"github.com/spf13/cobra"
)

type InputEvent struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params"`
}

var rootCmd = &cobra.Command{
	Use:          "worker",
	Short:        "Background jobs for the multimodal itinerary service",
	SilenceUsage: true,
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serves actions as an AWS Lambda handler",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := newHandlerFromConfig(cmd.Context())
		if err != nil {
			return err
		}

		lambda.StartWithOptions(handler, lambda.WithContext(cmd.Context()))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <action> [params-json]",
	Short: "Runs a single action and prints its output",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := json.RawMessage("{}")
		if len(args) == 2 {
			params = json.RawMessage(args[1])
		}

		handler, err := newHandlerFromConfig(cmd.Context())
		if err != nil {
			return err
		}

		output, err := handler(cmd.Context(), InputEvent{Action: args[0], Params: params})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
		return err
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd, runCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newHandlerFromConfig(ctx context.Context) (func(ctx context.Context, event InputEvent) (json.RawMessage, error), error) {
	settings, err := config.Config.Settings()
	if err != nil {
		return nil, err
	}

	c, err := config.Config.Cache(ctx)
	if err != nil {
		return nil, err
	}

	src, err := config.Config.CatalogSource(ctx)
	if err != nil {
		return nil, err
	}

	searcher, err := config.Config.FlightSearcher()
	if err != nil {
		return nil, err
	}

	catalog := routes.NewCatalog(src, c, settings.RoutesTTL, settings.TimetableTTL)
	return newHandler(searcher, c, catalog, settings), nil
}

func newHandler(searcher action.FlightSearcher, c action.Cache, catalog action.RouteRefresher, settings config.Settings) func(ctx context.Context, event InputEvent) (json.RawMessage, error) {
	sfAction := action.NewSearchFlightsAction(searcher, c, settings.FlightJobTimeout, settings.FlightTTL)
	pfAction := action.NewPrefetchFlightsAction(searcher, c, settings.FlightJobTimeout, settings.FlightTTL)
	wrAction := action.NewWarmRoutesAction(catalog)
	cronAction := action.NewCronAction(wrAction, pfAction)

	return func(ctx context.Context, event InputEvent) (json.RawMessage, error) {
		switch event.Action {
		case "search_flights":
			return handle(ctx, sfAction, event.Params)

		case "prefetch_flights":
			return handle(ctx, pfAction, event.Params)

		case "warm_routes":
			return handle(ctx, wrAction, event.Params)

		case "cron":
			return handle(ctx, cronAction, event.Params)
		}

		return nil, fmt.Errorf("unsupported action: %v", event.Action)
	}
}

func handle[IN any, OUT any](ctx context.Context, act action.Action[IN, OUT], params json.RawMessage) (json.RawMessage, error) {
	var input IN
	if err := json.Unmarshal(params, &input); err != nil {
		return nil, err
	}

	output, err := act.Handle(ctx, input)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}

	return b, nil
}
