package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Timezone struct {
		Default string `yaml:"default" default:"UTC"`
	} `yaml:"timezone"`
	Geocoding struct {
		BaseURL   string        `yaml:"base_url" default:"https://nominatim.openstreetmap.org"`
		UserAgent string        `yaml:"user_agent" default:"horary-judgment-service"`
		Timeout   time.Duration `yaml:"timeout" default:"10s"`
		CacheTTL  time.Duration `yaml:"cache_ttl" default:"720h"`
		Redis     struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"geocoding"`
	Ephemeris struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"ephemeris"`

	Orbs       OrbsConfig       `yaml:"orbs"`
	Timing     TimingConfig     `yaml:"timing"`
	Dignity    DignityConfig    `yaml:"dignity"`
	Confidence ConfidenceConfig `yaml:"confidence"`
	Radicality RadicalityConfig `yaml:"radicality"`
	Moon       MoonConfig       `yaml:"moon"`
	Visibility VisibilityConfig `yaml:"visibility"`
	Retrograde RetrogradeConfig `yaml:"retrograde"`
}

// OrbsConfig lists maximum orbs per aspect plus the solar-proximity thresholds.
type OrbsConfig struct {
	Conjunction float64 `yaml:"conjunction" default:"8.0"`
	Sextile     float64 `yaml:"sextile" default:"6.0"`
	Square      float64 `yaml:"square" default:"7.0"`
	Trine       float64 `yaml:"trine" default:"8.0"`
	Opposition  float64 `yaml:"opposition" default:"8.0"`

	SunOrbBonus  float64 `yaml:"sun_orb_bonus" default:"2.0"`
	MoonOrbBonus float64 `yaml:"moon_orb_bonus" default:"2.5"`

	CazimiOrbArcmin      float64 `yaml:"cazimi_orb_arcmin" default:"17.0"`
	ExactCazimiOrbArcmin float64 `yaml:"exact_cazimi_orb_arcmin" default:"3.0"`
	CombustionOrb        float64 `yaml:"combustion_orb" default:"8.5"`
	UnderBeamsOrb        float64 `yaml:"under_beams_orb" default:"15.0"`
	VoidOrbDeg           float64 `yaml:"void_orb_deg" default:"6.0"`
}

// ForAspect returns the configured maximum orb for the named aspect.
func (o OrbsConfig) ForAspect(name string) float64 {
	switch name {
	case "Conjunction":
		return o.Conjunction
	case "Sextile":
		return o.Sextile
	case "Square":
		return o.Square
	case "Trine":
		return o.Trine
	case "Opposition":
		return o.Opposition
	default:
		log.Printf("config: orb not found for %q, using default 8.0", name)
		return 8.0
	}
}

type TimingConfig struct {
	DefaultMoonSpeedFallback float64 `yaml:"default_moon_speed_fallback" default:"13.2"`
	MaxFutureDays            float64 `yaml:"max_future_days" default:"90.0"`
	TimingPrecisionDays      float64 `yaml:"timing_precision_days" default:"0.1"`
	StationarySpeedThreshold float64 `yaml:"stationary_speed_threshold" default:"0.03"`
}

type DignityConfig struct {
	Rulership  int `yaml:"rulership" default:"5"`
	Exaltation int `yaml:"exaltation" default:"4"`
	Detriment  int `yaml:"detriment" default:"-5"`
	Fall       int `yaml:"fall" default:"-4"`
	Joy        int `yaml:"joy" default:"2"`
	Angular    int `yaml:"angular" default:"2"`
	Succedent  int `yaml:"succedent" default:"1"`
	Cadent     int `yaml:"cadent" default:"-1"`

	RetrogradePenalty int `yaml:"retrograde_penalty" default:"-2"`
}

type ConfidenceConfig struct {
	BaseConfidence int `yaml:"base_confidence" default:"100"`

	Perfection struct {
		DirectBasic                int `yaml:"direct_basic" default:"75"`
		DirectWithMutualRulership  int `yaml:"direct_with_mutual_rulership" default:"95"`
		DirectWithMutualExaltation int `yaml:"direct_with_mutual_exaltation" default:"85"`
		TranslationOfLight         int `yaml:"translation_of_light" default:"75"`
		CollectionOfLight          int `yaml:"collection_of_light" default:"70"`
		ReceptionOnly              int `yaml:"reception_only" default:"65"`
	} `yaml:"perfection"`

	Denial struct {
		Prohibition           int `yaml:"prohibition" default:"85"`
		FrustrationRetrograde int `yaml:"frustration_retrograde" default:"80"`
	} `yaml:"denial"`

	LunarConfidenceCaps struct {
		Favorable   int `yaml:"favorable" default:"70"`
		Unfavorable int `yaml:"unfavorable" default:"75"`
		Neutral     int `yaml:"neutral" default:"50"`
	} `yaml:"lunar_confidence_caps"`

	Solar struct {
		CazimiBonus       int `yaml:"cazimi_bonus" default:"6"`
		ExactCazimiBonus  int `yaml:"exact_cazimi_bonus" default:"8"`
		CombustionPenalty int `yaml:"combustion_penalty" default:"5"`
		UnderBeamsPenalty int `yaml:"under_beams_penalty" default:"3"`
	} `yaml:"solar"`

	Reception struct {
		MutualExaltationBonus float64 `yaml:"mutual_exaltation_bonus" default:"15.0"`
	} `yaml:"reception"`
}

type RadicalityConfig struct {
	AscTooEarly        float64 `yaml:"asc_too_early" default:"3.0"`
	AscTooLate         float64 `yaml:"asc_too_late" default:"27.0"`
	Saturn7thEnabled   bool    `yaml:"saturn_7th_enabled" default:"true"`
	ViaCombustaEnabled bool    `yaml:"via_combusta_enabled" default:"true"`
	ViaCombusta        struct {
		LibraStart     float64 `yaml:"libra_start" default:"15.0"`
		ScorpioFull    bool    `yaml:"scorpio_full" default:"true"`
		CapricornStart float64 `yaml:"capricorn_start" default:"15.0"`
	} `yaml:"via_combusta"`
}

type MoonConfig struct {
	// VoidRule selects the void-of-course algorithm: by_sign, by_orb or lilly.
	VoidRule       string `yaml:"void_rule" default:"by_sign"`
	VoidExceptions struct {
		Cancer      bool `yaml:"cancer" default:"true"`
		Taurus      bool `yaml:"taurus" default:"true"`
		Sagittarius bool `yaml:"sagittarius" default:"true"`
	} `yaml:"void_exceptions"`

	TestimonyNegativeThreshold int `yaml:"testimony_negative_threshold" default:"-3"`

	PhaseBonus struct {
		NewMoon        int `yaml:"new_moon" default:"-2"`
		WaxingCrescent int `yaml:"waxing_crescent" default:"1"`
		FirstQuarter   int `yaml:"first_quarter" default:"2"`
		WaxingGibbous  int `yaml:"waxing_gibbous" default:"2"`
		FullMoon       int `yaml:"full_moon" default:"3"`
		WaningGibbous  int `yaml:"waning_gibbous" default:"1"`
		LastQuarter    int `yaml:"last_quarter" default:"0"`
		WaningCrescent int `yaml:"waning_crescent" default:"-1"`
	} `yaml:"phase_bonus"`

	SpeedBonus struct {
		VerySlow int `yaml:"very_slow" default:"-2"`
		Slow     int `yaml:"slow" default:"-1"`
		Average  int `yaml:"average" default:"0"`
		Fast     int `yaml:"fast" default:"1"`
		VeryFast int `yaml:"very_fast" default:"2"`
	} `yaml:"speed_bonus"`

	AngularityBonus struct {
		Angular   int `yaml:"angular" default:"2"`
		Succedent int `yaml:"succedent" default:"1"`
		Cadent    int `yaml:"cadent" default:"-1"`
	} `yaml:"angularity_bonus"`

	Translation struct {
		RequireProperSequence bool `yaml:"require_proper_sequence" default:"true"`
		RequireSpeedAdvantage bool `yaml:"require_speed_advantage"`
	} `yaml:"translation"`

	Collection struct {
		RequireCollectorDignity bool `yaml:"require_collector_dignity" default:"true"`
		MinimumDignityScore     int  `yaml:"minimum_dignity_score" default:"0"`
	} `yaml:"collection"`
}

type VisibilityConfig struct {
	MinElongation             float64 `yaml:"min_elongation" default:"10.0"`
	MercuryExtendedElongation float64 `yaml:"mercury_extended_elongation" default:"18.0"`
	VenusMaxElongation        float64 `yaml:"venus_max_elongation" default:"40.0"`
	TwilightAltitudeMax       float64 `yaml:"twilight_altitude_max" default:"-8.0"`
}

type RetrogradeConfig struct {
	// AutomaticDenial restores the legacy frustration rule: a retrograde
	// significator denies outright instead of taking a dignity penalty.
	AutomaticDenial bool `yaml:"automatic_denial"`
}

// Load reads and parses a YAML configuration file. Missing tunables fall back
// to hard-coded defaults; only structural problems abort.
func Load(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Printf("config: %s not found, running on built-in defaults", path)
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	if v := os.Getenv("HORARY_CONFIG"); v != "" {
		path = v
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("EPHEMERIS_URL"); v != "" {
		c.Ephemeris.BaseURL = v
	}
	if v := os.Getenv("NOMINATIM_URL"); v != "" {
		c.Geocoding.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Geocoding.Redis.Addr = v
		c.Geocoding.Redis.Enabled = true
	}

	return c, nil
}

// Validate checks fields that have no sensible default.
func (c *Config) Validate() error {
	switch c.Moon.VoidRule {
	case "by_sign", "by_orb", "lilly":
	default:
		log.Printf("config: unknown moon.void_rule %q, defaulting to by_sign", c.Moon.VoidRule)
		c.Moon.VoidRule = "by_sign"
	}
	if c.Radicality.AscTooEarly >= c.Radicality.AscTooLate {
		return fmt.Errorf("radicality: asc_too_early (%v) must be below asc_too_late (%v)",
			c.Radicality.AscTooEarly, c.Radicality.AscTooLate)
	}
	if c.Ephemeris.BaseURL == "" {
		return fmt.Errorf("ephemeris.base_url is required (or set EPHEMERIS_URL)")
	}
	return nil
}
