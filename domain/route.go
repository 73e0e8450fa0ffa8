package domain

// Route is a named, preconfigured swap direction.
type Route struct {
	Name      string `mapstructure:"name" json:"name"`
	FromAsset string `mapstructure:"from-asset" json:"from_asset"`
	ToAsset   string `mapstructure:"to-asset" json:"to_asset"`
}

// StaticPair seeds the local pair table with a known contract address.
type StaticPair struct {
	BaseAsset       string `mapstructure:"base-asset"`
	QuoteAsset      string `mapstructure:"quote-asset"`
	ContractAddress string `mapstructure:"contract-address"`
}

// DenomOverride pins the denom of an asset when the default conversion rules do not apply.
type DenomOverride struct {
	Asset string `mapstructure:"asset"`
	Denom string `mapstructure:"denom"`
}

// FinConfigResponse is the response of the orderbook contract config query.
type FinConfigResponse struct {
	Denoms   [2]string `json:"denoms"`
	Tick     uint8     `json:"tick"`
	FeeTaker string    `json:"fee_taker"`
	FeeMaker string    `json:"fee_maker"`
}

// FinConfigQuery is the orderbook contract config query payload.
type FinConfigQuery struct {
	Config struct{} `json:"config"`
}
