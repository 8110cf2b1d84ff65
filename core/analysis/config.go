package analysis

import "fmt"

// Config holds the arrival-analysis policy knobs.
type Config struct {
	// CompetitionWindowMinutes is the half-width of the symmetric window
	// around a target ETA used to detect contending arrivals.
	CompetitionWindowMinutes int `json:"competition_window_minutes"`
	// MediumCompetitionMax is the largest competitor count still graded
	// medium; zero competitors is always low, anything above is high.
	MediumCompetitionMax int `json:"medium_competition_max"`
	// LeadMarginMinutes is how far ahead of the earliest competitor an
	// accelerated arrival is recommended to aim.
	LeadMarginMinutes int `json:"lead_margin_minutes"`
}

// SetDefaults applies the standard policy constants.
func (c *Config) SetDefaults() {
	if c.CompetitionWindowMinutes == 0 {
		c.CompetitionWindowMinutes = 60
	}
	if c.MediumCompetitionMax == 0 {
		c.MediumCompetitionMax = 2
	}
	if c.LeadMarginMinutes == 0 {
		c.LeadMarginMinutes = 30
	}
}

// Validate checks the policy constants are coherent.
func (c Config) Validate() error {
	if c.CompetitionWindowMinutes < 0 {
		return fmt.Errorf("competition_window_minutes must not be negative")
	}
	if c.MediumCompetitionMax < 1 {
		return fmt.Errorf("medium_competition_max must be at least 1")
	}
	if c.LeadMarginMinutes < 0 {
		return fmt.Errorf("lead_margin_minutes must not be negative")
	}
	return nil
}
