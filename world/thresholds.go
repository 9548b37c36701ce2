package world

// Thresholds are the tunable distances and timings behind the snapshot's
// derived signals. Times are in seconds of game time.
type Thresholds struct {
	ProxyRadius        float64 `yaml:"proxy_radius" env:"PROXY_RADIUS"`
	FloatingAfter      float64 `yaml:"floating_after" env:"FLOATING_AFTER"`
	GroundThreatRadius float64 `yaml:"ground_threat_radius" env:"GROUND_THREAT_RADIUS"`
	AirThreatRadius    float64 `yaml:"air_threat_radius" env:"AIR_THREAT_RADIUS"`
	OneBaseCheckAt     float64 `yaml:"one_base_check_at" env:"ONE_BASE_CHECK_AT"`
}

// DefaultThresholds returns the values the build orders were tuned against.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ProxyRadius:        75,
		FloatingAfter:      300,
		GroundThreatRadius: 20,
		AirThreatRadius:    30,
		OneBaseCheckAt:     100,
	}
}

// Validate replaces non-positive values with their defaults.
func (t *Thresholds) Validate() {
	d := DefaultThresholds()
	t.ProxyRadius = positiveOr(t.ProxyRadius, d.ProxyRadius)
	t.FloatingAfter = positiveOr(t.FloatingAfter, d.FloatingAfter)
	t.GroundThreatRadius = positiveOr(t.GroundThreatRadius, d.GroundThreatRadius)
	t.AirThreatRadius = positiveOr(t.AirThreatRadius, d.AirThreatRadius)
	t.OneBaseCheckAt = positiveOr(t.OneBaseCheckAt, d.OneBaseCheckAt)
}

func positiveOr(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}
