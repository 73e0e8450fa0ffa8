package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryotel "github.com/getsentry/sentry-go/otel"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"

	"github.com/rujira-labs/finsdk/domain"
	"github.com/rujira-labs/finsdk/domain/json"
	"github.com/rujira-labs/finsdk/domain/keyring"
	"github.com/rujira-labs/finsdk/log"
	"github.com/rujira-labs/finsdk/sdk"
)

const shutdownTimeout = 10 * time.Second

// @title           FIN Quote Server API
// @version         1.0
func main() {
	configPath := flag.String("config", "config.json", "config file location")
	hostName := flag.String("host", "finsdk", "the name of the host")
	isDebug := flag.Bool("debug", false, "debug mode")
	printQuotes := flag.String("quote-routes", "", "print quotes for all configured routes for the given amount and exit")
	swapRoute := flag.String("swap-route", "", "execute a single swap on the named route and exit")
	swapAmount := flag.String("swap-amount", "", "amount offered by -swap-route, in base units")

	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		stdlog.Fatalf("failed to load config %s: %v", *configPath, err)
	}

	logger, err := log.NewLogger(config.LoggerIsProduction, config.LoggerFilename, config.LoggerLevel)
	if err != nil {
		stdlog.Fatalf("error while creating logger: %v", err)
	}

	if config.OTEL != nil && config.OTEL.DSN != "" {
		if err := initSentry(*config.OTEL, *hostName, *isDebug); err != nil {
			logger.Fatal("sentry.Init", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)

		if err := initOTELTracer(*hostName); err != nil {
			logger.Fatal("failed to initialize tracer", zap.Error(err))
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	openOpts := sdk.OpenOptions{Logger: logger}
	if *swapRoute != "" {
		keyringConfig, err := keyring.ConfigFromEnv()
		if err != nil {
			logger.Fatal("signing key is required to swap", zap.Error(err))
		}
		openOpts.Keyring, err = keyring.Open(keyringConfig)
		if err != nil {
			logger.Fatal("failed to open keyring", zap.Error(err))
		}
	}

	finSDK, err := sdk.Open(ctx, config, openOpts)
	if err != nil {
		logger.Fatal("failed to open SDK", zap.Error(err))
	}
	defer func() {
		if err := finSDK.Close(); err != nil {
			logger.Error("failed to close SDK", zap.Error(err))
		}
	}()

	switch {
	case *swapRoute != "":
		err = swap(ctx, finSDK, *swapRoute, *swapAmount)
	case *printQuotes != "":
		err = printRouteQuotes(ctx, finSDK, *printQuotes)
	default:
		err = serve(ctx, finSDK, config, logger)
	}
	if err != nil {
		logger.Error("exiting", zap.Error(err))
		sentry.CaptureException(err)
		os.Exit(1)
	}
}

// loadConfig reads the config file over DefaultConfig and validates the result.
func loadConfig(configPath string) (domain.Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetEnvPrefix("FINSDK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return domain.Config{}, err
	}

	config := DefaultConfig
	if err := viper.Unmarshal(&config); err != nil {
		return domain.Config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return domain.Config{}, err
	}
	return config, nil
}

func serve(ctx context.Context, finSDK *sdk.SDK, config domain.Config, logger log.Logger) error {
	server := NewQueryServer(finSDK, config, logger)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down quote server", zap.Error(err))
		}
	}()

	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printRouteQuotes(ctx context.Context, finSDK *sdk.SDK, amount string) error {
	quotes := finSDK.GetAllRouteQuotes(ctx, amount, "")

	out, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func swap(ctx context.Context, finSDK *sdk.SDK, routeName string, amount string) error {
	for _, route := range finSDK.GetRoutes() {
		if route.Name != routeName {
			continue
		}

		result, err := finSDK.ExecuteSwap(ctx, domain.QuoteRequest{
			FromAsset: route.FromAsset,
			ToAsset:   route.ToAsset,
			Amount:    amount,
		}, domain.QuoteOptions{SkipCache: true}, domain.ExecuteOptions{})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	return fmt.Errorf("route %s is not configured", routeName)
}

func initSentry(otelConfig domain.OTELConfig, hostName string, isDebug bool) error {
	if err := sentry.Init(sentry.ClientOptions{
		ServerName:         hostName,
		Dsn:                otelConfig.DSN,
		SampleRate:         otelConfig.SampleRate,
		EnableTracing:      otelConfig.EnableTracing,
		TracesSampleRate:   otelConfig.TracesSampleRate,
		Debug:              isDebug,
		ProfilesSampleRate: otelConfig.ProfilesSampleRate,
		Environment:        otelConfig.Environment,
	}); err != nil {
		return err
	}

	sentry.CaptureMessage("finsdk started")
	return nil
}

// initOTELTracer initializes the OTEL tracer
// and wires it up with the Sentry exporter.
func initOTELTracer(hostName string) error {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("stdouttrace.New: %w", err)
	}

	resource, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(hostName),
		),
	)
	if err != nil {
		return fmt.Errorf("resource.New: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
		sdktrace.WithSpanProcessor(sentryotel.NewSentrySpanProcessor()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(sentryotel.NewSentryPropagator())
	return nil
}
