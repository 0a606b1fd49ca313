package config

import (
	"time"
)

type MapsConfig struct {
	Provider   string            `yaml:"provider"` // nominatim, google
	Nominatim  *NominatimConfig  `yaml:"nominatim"`
	GoogleMaps *GoogleMapsConfig `yaml:"google_maps"`

	// Debounce is how long location input must be quiet before a
	// preview lookup fires.
	Debounce time.Duration `yaml:"debounce"`
}

type NominatimConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`

	// Service-area bounding box, lonW,latN,lonE,latS. Lookups outside
	// this box are rejected by the geocoder, which keeps free-text
	// queries like "Campus Center" anchored to the right city.
	Viewbox string `yaml:"viewbox"`

	// Fallback map center when nothing has been geocoded yet.
	CenterLat float64 `yaml:"center_lat"`
	CenterLng float64 `yaml:"center_lng"`
}

type GoogleMapsConfig struct {
	APIKey string `yaml:"api_key"`
	Region string `yaml:"region"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider: getEnv("MAPS_PROVIDER", "nominatim"),
		Nominatim: &NominatimConfig{
			BaseURL:   getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
			Timeout:   getEnvAsDuration("NOMINATIM_TIMEOUT", 10*time.Second),
			Viewbox:   getEnv("NOMINATIM_VIEWBOX", "-85.35,41.20,-84.95,40.95"),
			CenterLat: getEnvAsFloat64("MAPS_CENTER_LAT", 41.0793),
			CenterLng: getEnvAsFloat64("MAPS_CENTER_LNG", -85.1394),
		},
		GoogleMaps: &GoogleMapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
			Region: getEnv("GOOGLE_MAPS_REGION", "us"),
		},
		Debounce: getEnvAsDuration("MAPS_DEBOUNCE", 400*time.Millisecond),
	}
}
