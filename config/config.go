// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/imdario/mergo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName      = "config"
	RPCEndpointFlagName = "rpc-endpoint"
	RPCChainFlagName    = "rpc-chain"

	ENV_PREFIX = "X402"
)

type Config struct {
	ServiceConfig ServiceConfig
	ChainConfigs  []map[string]interface{}
}

type ServiceConfig struct {
	LogLevel                  zerolog.Level
	LogFormat                 string
	Env                       string
	Id                        string
	ApiAddr                   string
	HealthPort                uint16
	OpenTelemetryCollectorURL string

	FacilitatorURL    string
	FacilitatorAPIKey string
	AcrossURL         string
	MockQuotes        bool
	QuoteTTL          time.Duration

	CreditedRecipient common.Address
	Platform          common.Address
	PlatformFeeBps    uint64
	Resource          string
	MaxTimeoutSeconds uint64

	PaywallPrice   string
	PaywallNetwork string

	SameChainGrace  time.Duration
	CrossChainGrace time.Duration
	WatchFills      bool
}

type RawConfig struct {
	ServiceConfig RawServiceConfig         `mapstructure:"service" json:"service"`
	ChainConfigs  []map[string]interface{} `mapstructure:"chains" json:"chains"`
}

type RawServiceConfig struct {
	LogLevel                  string `mapstructure:"logLevel" json:"logLevel" default:"info"`
	LogFormat                 string `mapstructure:"logFormat" json:"logFormat" default:"json"`
	Env                       string `mapstructure:"env" json:"env" default:"testnet"`
	Id                        string `mapstructure:"id" json:"id" default:"x402-across"`
	ApiAddr                   string `mapstructure:"apiAddr" json:"apiAddr" default:":8080"`
	HealthPort                uint16 `mapstructure:"healthPort" json:"healthPort" default:"9001"`
	OpenTelemetryCollectorURL string `mapstructure:"openTelemetryCollectorURL" json:"openTelemetryCollectorURL"`

	FacilitatorURL    string `mapstructure:"facilitatorUrl" json:"facilitatorUrl" default:"https://api.mrdn.finance"`
	FacilitatorAPIKey string `mapstructure:"facilitatorApiKey" json:"facilitatorApiKey"`
	AcrossURL         string `mapstructure:"acrossUrl" json:"acrossUrl" default:"https://testnet.across.to/api"`
	MockQuotes        bool   `mapstructure:"mockQuotes" json:"mockQuotes"`
	QuoteTTL          uint64 `mapstructure:"quoteTtl" json:"quoteTtl" default:"10"`

	CreditedRecipient string `mapstructure:"creditedRecipient" json:"creditedRecipient" default:"0x85B7B882EeCDfC709EF167Ec8D350064E85F1b07"`
	Platform          string `mapstructure:"platform" json:"platform" default:"0x0000000000000000000000000000000000000000"`
	PlatformFeeBps    uint64 `mapstructure:"platformFeeBps" json:"platformFeeBps"`
	Resource          string `mapstructure:"resource" json:"resource" default:"https://api.mrdn.finance/v1/samples"`
	MaxTimeoutSeconds uint64 `mapstructure:"maxTimeoutSeconds" json:"maxTimeoutSeconds" default:"60"`

	PaywallPrice   string `mapstructure:"paywallPrice" json:"paywallPrice" default:"$0.01"`
	PaywallNetwork string `mapstructure:"paywallNetwork" json:"paywallNetwork" default:"base-sepolia"`

	SameChainGrace  uint64 `mapstructure:"sameChainGrace" json:"sameChainGrace" default:"1"`
	CrossChainGrace uint64 `mapstructure:"crossChainGrace" json:"crossChainGrace" default:"30"`
	WatchFills      bool   `mapstructure:"watchFills" json:"watchFills"`
}

func (c *RawServiceConfig) Validate() error {
	if !common.IsHexAddress(c.CreditedRecipient) {
		return fmt.Errorf("invalid credited recipient %q", c.CreditedRecipient)
	}
	if !common.IsHexAddress(c.Platform) {
		return fmt.Errorf("invalid platform address %q", c.Platform)
	}
	if c.PlatformFeeBps > 10000 {
		return fmt.Errorf("platform fee %d bps exceeds 100%%", c.PlatformFeeBps)
	}
	if c.FacilitatorURL == "" {
		return fmt.Errorf("facilitator url is required")
	}
	return nil
}

func (c *Config) Validate() error {
	if len(c.ChainConfigs) == 0 {
		return fmt.Errorf("at least one chain must be configured")
	}
	for _, chain := range c.ChainConfigs {
		if chain["type"] == "" || chain["type"] == nil {
			return fmt.Errorf("chain 'type' must be provided for every configured chain")
		}
	}
	return nil
}

// BindFlags registers the configuration flags shared by every command.
func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, ".", "Path to JSON configuration file, or 'env' to read from environment")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))

	rootCMD.PersistentFlags().String(RPCEndpointFlagName, "", "RPC endpoint overriding the configured one")
	_ = viper.BindPFlag(RPCEndpointFlagName, rootCMD.PersistentFlags().Lookup(RPCEndpointFlagName))

	rootCMD.PersistentFlags().String(RPCChainFlagName, "", "Network name the --rpc-endpoint override applies to")
	_ = viper.BindPFlag(RPCChainFlagName, rootCMD.PersistentFlags().Lookup(RPCChainFlagName))
}

// GetConfigFromFile reads the configuration file and merges it over the
// optional shared configuration.
func GetConfigFromFile(path string, shared *Config) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	rawConfig := RawConfig{}
	if err := v.Unmarshal(&rawConfig); err != nil {
		return nil, err
	}

	return processRawConfig(rawConfig, shared)
}

// GetConfigFromENV reads the service configuration from X402_ prefixed
// environment variables. Chains are provided as a JSON array in X402_CHAINS.
func GetConfigFromENV(shared *Config) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	rawConfig := RawConfig{}
	for _, key := range serviceKeys() {
		_ = v.BindEnv("service."+key, fmt.Sprintf("%s_%s", ENV_PREFIX, strings.ToUpper(key)))
	}
	if err := v.Unmarshal(&rawConfig); err != nil {
		return nil, err
	}

	chains := v.GetString("chains")
	if chains != "" {
		if err := json.Unmarshal([]byte(chains), &rawConfig.ChainConfigs); err != nil {
			return nil, fmt.Errorf("invalid %s_CHAINS: %w", ENV_PREFIX, err)
		}
	}

	return processRawConfig(rawConfig, shared)
}

// GetSharedConfigFromNetwork fetches a configuration published over HTTP.
// Values in the local configuration take precedence over it.
func GetSharedConfigFromNetwork(url string) (*Config, error) {
	resp, err := http.Get(url) // nolint:gosec
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d fetching shared config", resp.StatusCode)
	}

	rawConfig := RawConfig{}
	if err := json.NewDecoder(resp.Body).Decode(&rawConfig); err != nil {
		return nil, err
	}

	return &Config{
		ServiceConfig: ServiceConfig{
			FacilitatorURL: rawConfig.ServiceConfig.FacilitatorURL,
			AcrossURL:      rawConfig.ServiceConfig.AcrossURL,
			Resource:       rawConfig.ServiceConfig.Resource,
			PaywallPrice:   rawConfig.ServiceConfig.PaywallPrice,
			PaywallNetwork: rawConfig.ServiceConfig.PaywallNetwork,
		},
		ChainConfigs: rawConfig.ChainConfigs,
	}, nil
}

func processRawConfig(rawConfig RawConfig, shared *Config) (*Config, error) {
	if err := defaults.Set(&rawConfig); err != nil {
		return nil, err
	}
	if err := rawConfig.ServiceConfig.Validate(); err != nil {
		return nil, err
	}

	logLevel, err := zerolog.ParseLevel(rawConfig.ServiceConfig.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %s: %w", rawConfig.ServiceConfig.LogLevel, err)
	}

	sc := rawConfig.ServiceConfig
	config := &Config{
		ServiceConfig: ServiceConfig{
			LogLevel:                  logLevel,
			LogFormat:                 sc.LogFormat,
			Env:                       sc.Env,
			Id:                        sc.Id,
			ApiAddr:                   sc.ApiAddr,
			HealthPort:                sc.HealthPort,
			OpenTelemetryCollectorURL: sc.OpenTelemetryCollectorURL,

			FacilitatorURL:    strings.TrimRight(sc.FacilitatorURL, "/"),
			FacilitatorAPIKey: sc.FacilitatorAPIKey,
			AcrossURL:         strings.TrimRight(sc.AcrossURL, "/"),
			MockQuotes:        sc.MockQuotes,
			// nolint:gosec
			QuoteTTL: time.Duration(sc.QuoteTTL) * time.Second,

			CreditedRecipient: common.HexToAddress(sc.CreditedRecipient),
			Platform:          common.HexToAddress(sc.Platform),
			PlatformFeeBps:    sc.PlatformFeeBps,
			Resource:          sc.Resource,
			MaxTimeoutSeconds: sc.MaxTimeoutSeconds,

			PaywallPrice:   sc.PaywallPrice,
			PaywallNetwork: sc.PaywallNetwork,

			// nolint:gosec
			SameChainGrace: time.Duration(sc.SameChainGrace) * time.Second,
			// nolint:gosec
			CrossChainGrace: time.Duration(sc.CrossChainGrace) * time.Second,
			WatchFills:      sc.WatchFills,
		},
		ChainConfigs: rawConfig.ChainConfigs,
	}

	if shared != nil {
		if err := mergo.Merge(config, shared); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func serviceKeys() []string {
	return []string{
		"logLevel", "logFormat", "env", "id", "apiAddr", "healthPort", "openTelemetryCollectorURL",
		"facilitatorUrl", "facilitatorApiKey", "acrossUrl", "mockQuotes", "quoteTtl",
		"creditedRecipient", "platform", "platformFeeBps", "resource", "maxTimeoutSeconds",
		"paywallPrice", "paywallNetwork", "sameChainGrace", "crossChainGrace", "watchFills",
	}
}
