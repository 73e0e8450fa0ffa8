package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/osmosis-labs/osmosis/osmomath"
)

// Config defines the config for the SDK and the quote binary.
type Config struct {
	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// ServerAddress is where the quote server listens.
	ServerAddress string `mapstructure:"server-address"`

	ChainGRPCEndpoint string `mapstructure:"grpc-endpoint"`
	ChainGRPCTLS      bool   `mapstructure:"grpc-tls"`
	ChainRPCEndpoint  string `mapstructure:"rpc-endpoint"`
	ChainID           string `mapstructure:"chain-id"`

	CORS *CORSConfig `mapstructure:"cors"`
	OTEL *OTELConfig `mapstructure:"otel"`

	// Signer is only required for executing swaps.
	Signer *SignerConfig `mapstructure:"signer"`

	// PairStorePath is the bbolt file discovered pair addresses are persisted to.
	// Persistence is disabled when empty.
	PairStorePath string `mapstructure:"pair-store-path"`

	Quote     *QuoteConfig     `mapstructure:"quote"`
	Discovery *DiscoveryConfig `mapstructure:"discovery"`

	Routes         []Route         `mapstructure:"routes"`
	StaticPairs    []StaticPair    `mapstructure:"static-pairs"`
	DenomOverrides []DenomOverride `mapstructure:"denom-overrides"`
}

// CORSConfig represents HTTP CORS headers configuration.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig represents OpenTelemetry and Sentry configuration.
type OTELConfig struct {
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	TracesSampleRate   float64 `mapstructure:"traces-sample-rate"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
}

// SignerConfig configures transaction signing and fees.
type SignerConfig struct {
	Bech32Prefix  string  `mapstructure:"bech32-prefix"`
	FeeDenom      string  `mapstructure:"fee-denom"`
	GasPrice      string  `mapstructure:"gas-price"`
	GasAdjustment float64 `mapstructure:"gas-adjustment"`
}

// QuoteConfig encapsulates the quote engine config.
type QuoteConfig struct {
	QuoteTTLMs         int64 `mapstructure:"quote-ttl-ms"`
	ExpiryBufferMs     int64 `mapstructure:"expiry-buffer-ms"`
	StalenessWarningMs int64 `mapstructure:"staleness-warning-ms"`

	CacheTTLMs   int64 `mapstructure:"cache-ttl-ms"`
	CacheMaxSize int   `mapstructure:"cache-max-size"`

	DefaultSlippageBps uint32 `mapstructure:"default-slippage-bps"`
	OrderBookDepth     int    `mapstructure:"orderbook-depth"`
	BatchConcurrency   int    `mapstructure:"batch-concurrency"`

	// Heuristic price impact tiers in base units of the input asset.
	MediumTradeThreshold string `mapstructure:"medium-trade-threshold"`
	LargeTradeThreshold  string `mapstructure:"large-trade-threshold"`

	// NetworkFee is the outbound network fee in base units of the output asset.
	NetworkFee      string `mapstructure:"network-fee"`
	AffiliateFeeBps uint32 `mapstructure:"affiliate-fee-bps"`
}

// DiscoveryConfig encapsulates the contract discovery config.
type DiscoveryConfig struct {
	IndexerURL       string `mapstructure:"indexer-url"`
	IndexerAPIKey    string `mapstructure:"indexer-api-key"`
	IndexerTimeoutMs int64  `mapstructure:"indexer-timeout-ms"`

	// IndexerRequestsPerMinute throttles calls to the indexer. Zero disables throttling.
	IndexerRequestsPerMinute int `mapstructure:"indexer-requests-per-minute"`

	CacheTTLMs int64 `mapstructure:"cache-ttl-ms"`

	// CodeIDs are the orderbook contract code IDs enumerated by the chain scan fallback.
	CodeIDs []uint64 `mapstructure:"code-ids"`

	// Placeholders for markets only known by address.
	DefaultTickSize string `mapstructure:"default-tick-size"`
	DefaultTakerFee string `mapstructure:"default-taker-fee"`
	DefaultMakerFee string `mapstructure:"default-maker-fee"`
}

// DefaultQuoteConfig returns the quote engine defaults.
func DefaultQuoteConfig() *QuoteConfig {
	return &QuoteConfig{
		QuoteTTLMs:           120_000,
		ExpiryBufferMs:       60_000,
		StalenessWarningMs:   5_000,
		CacheTTLMs:           30_000,
		CacheMaxSize:         100,
		DefaultSlippageBps:   100,
		OrderBookDepth:       10,
		BatchConcurrency:     3,
		MediumTradeThreshold: "10000000000",
		LargeTradeThreshold:  "100000000000",
		NetworkFee:           "0",
		AffiliateFeeBps:      0,
	}
}

// DefaultSignerConfig returns the THORChain signing defaults.
func DefaultSignerConfig() *SignerConfig {
	return &SignerConfig{
		Bech32Prefix:  "thor",
		FeeDenom:      "rune",
		GasPrice:      "0",
		GasAdjustment: 1.5,
	}
}

// DefaultDiscoveryConfig returns the discovery defaults.
func DefaultDiscoveryConfig() *DiscoveryConfig {
	return &DiscoveryConfig{
		IndexerTimeoutMs:         10_000,
		IndexerRequestsPerMinute: 600,
		CacheTTLMs:               300_000,
		CodeIDs:                  []uint64{},
		DefaultTickSize:          "6",
		DefaultTakerFee:          "0.0015",
		DefaultMakerFee:          "0.00075",
	}
}

func (c QuoteConfig) QuoteTTL() time.Duration {
	return time.Duration(c.QuoteTTLMs) * time.Millisecond
}

func (c QuoteConfig) ExpiryBuffer() time.Duration {
	return time.Duration(c.ExpiryBufferMs) * time.Millisecond
}

func (c QuoteConfig) StalenessWarning() time.Duration {
	return time.Duration(c.StalenessWarningMs) * time.Millisecond
}

func (c QuoteConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMs) * time.Millisecond
}

func (c DiscoveryConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMs) * time.Millisecond
}

func (c DiscoveryConfig) IndexerTimeout() time.Duration {
	return time.Duration(c.IndexerTimeoutMs) * time.Millisecond
}

// Validate implements validator.Validator.
func (c *Config) Validate() error {
	if c.Quote == nil {
		return errors.New("quote config is required")
	}
	if c.Discovery == nil {
		return errors.New("discovery config is required")
	}
	if err := c.Quote.Validate(); err != nil {
		return err
	}
	if err := c.Discovery.Validate(); err != nil {
		return err
	}

	if c.Signer != nil {
		if err := c.Signer.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(c.Routes))
	for _, route := range c.Routes {
		if route.Name == "" {
			return errors.New("route name must not be empty")
		}
		if _, ok := seen[route.Name]; ok {
			return fmt.Errorf("duplicate route %s", route.Name)
		}
		seen[route.Name] = struct{}{}
		if route.FromAsset == "" || route.ToAsset == "" || route.FromAsset == route.ToAsset {
			return fmt.Errorf("route %s must have two distinct assets", route.Name)
		}
	}

	for _, pair := range c.StaticPairs {
		if pair.BaseAsset == "" || pair.QuoteAsset == "" || pair.ContractAddress == "" {
			return fmt.Errorf("static pair %s/%s is incomplete", pair.BaseAsset, pair.QuoteAsset)
		}
	}
	return nil
}

// Validate validates the quote config.
func (c *QuoteConfig) Validate() error {
	if c.QuoteTTLMs <= 0 {
		return errors.New("quote-ttl-ms must be positive")
	}
	if c.ExpiryBufferMs < 0 || c.ExpiryBufferMs >= c.QuoteTTLMs {
		return fmt.Errorf("expiry-buffer-ms (%d) must be in [0, quote-ttl-ms)", c.ExpiryBufferMs)
	}
	if c.CacheTTLMs <= 0 || c.CacheMaxSize <= 0 {
		return errors.New("quote cache ttl and size must be positive")
	}
	if c.DefaultSlippageBps == 0 || c.DefaultSlippageBps > MaxSlippageToleranceBps {
		return fmt.Errorf("default-slippage-bps (%d) must be in [1, %d]", c.DefaultSlippageBps, MaxSlippageToleranceBps)
	}
	if c.BatchConcurrency <= 0 {
		return errors.New("batch-concurrency must be positive")
	}
	if c.AffiliateFeeBps >= uint32(BpsDenominator) {
		return errors.New("affiliate-fee-bps must be below 10000")
	}

	medium, ok := osmomath.NewIntFromString(c.MediumTradeThreshold)
	if !ok {
		return fmt.Errorf("invalid medium-trade-threshold %q", c.MediumTradeThreshold)
	}
	large, ok := osmomath.NewIntFromString(c.LargeTradeThreshold)
	if !ok {
		return fmt.Errorf("invalid large-trade-threshold %q", c.LargeTradeThreshold)
	}
	if !medium.LT(large) {
		return errors.New("medium-trade-threshold must be below large-trade-threshold")
	}
	if _, ok := osmomath.NewIntFromString(c.NetworkFee); !ok {
		return fmt.Errorf("invalid network-fee %q", c.NetworkFee)
	}
	return nil
}

// Validate validates the discovery config.
func (c *DiscoveryConfig) Validate() error {
	if c.CacheTTLMs <= 0 {
		return errors.New("discovery cache-ttl-ms must be positive")
	}
	if c.IndexerRequestsPerMinute < 0 {
		return errors.New("indexer-requests-per-minute must not be negative")
	}
	if c.IndexerURL == "" && len(c.CodeIDs) == 0 {
		return errors.New("discovery needs an indexer-url or at least one code id")
	}
	return nil
}

// Validate validates the signer config.
func (c *SignerConfig) Validate() error {
	if c.Bech32Prefix == "" {
		return errors.New("signer bech32-prefix is required")
	}
	if c.FeeDenom == "" {
		return errors.New("signer fee-denom is required")
	}
	if _, err := osmomath.NewDecFromStr(c.GasPrice); err != nil {
		return fmt.Errorf("invalid signer gas-price %q: %w", c.GasPrice, err)
	}
	if c.GasAdjustment < 1 {
		return errors.New("signer gas-adjustment must be at least 1")
	}
	return nil
}
