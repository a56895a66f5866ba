package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// PricingConfig holds the rates and fees used to price a cart.
type PricingConfig struct {
	TaxRate               float64            `mapstructure:"tax_rate"`
	FreeDeliveryThreshold float64            `mapstructure:"free_delivery_threshold"`
	StandardDeliveryFee   float64            `mapstructure:"standard_delivery_fee"`
	ExpressDeliveryFee    float64            `mapstructure:"express_delivery_fee"`
	PromoCodes            map[string]float64 `mapstructure:"promo_codes"`
}

// DefaultPricing returns the storefront's built-in policy.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		TaxRate:               0.08,
		FreeDeliveryThreshold: 75,
		StandardDeliveryFee:   8,
		ExpressDeliveryFee:    15,
		PromoCodes:            map[string]float64{"welcome10": 0.10},
	}
}

// LoadPricing reads a pricing policy file. Keys missing from the file, or an empty path,
// fall back to DefaultPricing; promo codes from the file are added to the default ones.
// PRICING_* environment variables override scalar file values.
func LoadPricing(path string) (PricingConfig, error) {
	def := DefaultPricing()

	v := viper.New()
	v.SetDefault("tax_rate", def.TaxRate)
	v.SetDefault("free_delivery_threshold", def.FreeDeliveryThreshold)
	v.SetDefault("standard_delivery_fee", def.StandardDeliveryFee)
	v.SetDefault("express_delivery_fee", def.ExpressDeliveryFee)
	promos := make(map[string]any, len(def.PromoCodes))
	for code, rate := range def.PromoCodes {
		promos[code] = rate
	}
	v.SetDefault("promo_codes", promos)
	v.SetEnvPrefix("PRICING")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return PricingConfig{}, fmt.Errorf("read pricing file: %w", err)
		}
	}

	var cfg PricingConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return PricingConfig{}, fmt.Errorf("decode pricing: %w", err)
	}
	if cfg.TaxRate < 0 || cfg.StandardDeliveryFee < 0 || cfg.ExpressDeliveryFee < 0 {
		return PricingConfig{}, fmt.Errorf("pricing rates and fees must not be negative")
	}
	for code, rate := range cfg.PromoCodes {
		if rate <= 0 || rate > 1 {
			return PricingConfig{}, fmt.Errorf("promo code %q: rate must be in (0, 1]", code)
		}
	}
	return cfg, nil
}
