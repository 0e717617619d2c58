package stage

import (
	"adscribe/internal/ads"
	"adscribe/internal/services"
)

// ParseAds parses an item's ads payload and returns the envelope.
// On failure it returns a services.ErrValidation suitable for stage Execute methods.
func ParseAds(raw string) (ads.Envelope, error) {
	env, err := ads.Parse(raw)
	if err != nil {
		return ads.Envelope{}, services.Wrap(
			services.ErrValidation, "stage", "parse ads payload",
			"Ads payload missing or invalid; rerun the scan", err)
	}
	return env, nil
}
