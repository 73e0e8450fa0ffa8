package main

import (
	"github.com/rujira-labs/finsdk/domain"
)

// DefaultConfig defines the default config for the quote server.
var DefaultConfig = domain.Config{
	ServerAddress: ":9092",

	LoggerFilename:     "finsdk.log",
	LoggerIsProduction: true,
	LoggerLevel:        "info",

	ChainGRPCEndpoint: "localhost:9090",
	ChainRPCEndpoint:  "http://localhost:26657",
	ChainID:           "thorchain-1",

	CORS: &domain.CORSConfig{
		AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With, X-Server-Time",
		AllowedMethods: "HEAD, GET, POST, OPTIONS",
		AllowedOrigin:  "*",
	},

	OTEL: &domain.OTELConfig{
		Environment: "development",
	},

	Signer: domain.DefaultSignerConfig(),

	PairStorePath: "pairs.db",

	Quote:     domain.DefaultQuoteConfig(),
	Discovery: domain.DefaultDiscoveryConfig(),
}
