package check

import (
	"strings"

	"github.com/adjustkit/claimlens/internal/model"
)

// Per-item score units in sixtieths of the full score. Each tier's
// weight is spread evenly across its items (0.6 over four critical
// items, 0.3 over three important, 0.1 over three supporting); keeping
// the arithmetic integral until the final division means a fully
// evidenced claim scores exactly 1.0.
const (
	criticalUnits   = 9 // 0.6 / 4 items
	importantUnits  = 6 // 0.3 / 3 items
	supportingUnits = 2 // 0.1 / 3 items
	totalUnits      = 60
)

// tierItem is one scoreable piece of evidence
type tierItem struct {
	name    string
	present func(*model.PropertyDamageClaim) bool
}

// Scorer computes the tier-weighted completeness score. Adding any item
// a claimant has not supplied lowers the score; nothing else does, so
// the score is monotone in the evidence.
type Scorer struct {
	critical   []tierItem
	important  []tierItem
	supporting []tierItem
}

// NewScorer creates a scorer with the standard evidence tiers
func NewScorer() *Scorer {
	return &Scorer{
		critical: []tierItem{
			{"damage_photos", func(c *model.PropertyDamageClaim) bool {
				return c.Evidence.HasDamagePhotos && c.Evidence.DamagePhotoCount >= 1
			}},
			{"incident_description", func(c *model.PropertyDamageClaim) bool {
				return c.Incident.Description != nil && strings.TrimSpace(*c.Incident.Description) != ""
			}},
			{"damage_type", func(c *model.PropertyDamageClaim) bool {
				return c.Incident.DamageType.Known()
			}},
			{"property_type", func(c *model.PropertyDamageClaim) bool {
				return c.PropertyDamage.PropertyType.Known()
			}},
		},
		important: []tierItem{
			{"incident_location", func(c *model.PropertyDamageClaim) bool {
				return c.Incident.Location != nil && strings.TrimSpace(*c.Incident.Location) != ""
			}},
			{"estimated_repair_cost", func(c *model.PropertyDamageClaim) bool {
				return c.PropertyDamage.EstimatedRepairCost != nil
			}},
			{"incident_date", func(c *model.PropertyDamageClaim) bool {
				return c.Incident.Date != nil
			}},
		},
		supporting: []tierItem{
			{"repair_estimate_document", func(c *model.PropertyDamageClaim) bool {
				return c.Evidence.HasRepairEstimate
			}},
			{"room_location", func(c *model.PropertyDamageClaim) bool {
				return c.PropertyDamage.RoomLocation != nil && strings.TrimSpace(*c.PropertyDamage.RoomLocation) != ""
			}},
			{"multiple_photos", func(c *model.PropertyDamageClaim) bool {
				return c.Evidence.DamagePhotoCount >= 2
			}},
		},
	}
}

// Score returns the completeness score and the names of missing items in
// tier order (critical first). The claim is read, never modified.
func (s *Scorer) Score(claim *model.PropertyDamageClaim) (float64, []string) {
	missing := []string{}
	units := 0

	for _, item := range s.critical {
		if item.present(claim) {
			units += criticalUnits
		} else {
			missing = append(missing, item.name)
		}
	}
	for _, item := range s.important {
		if item.present(claim) {
			units += importantUnits
		} else {
			missing = append(missing, item.name)
		}
	}
	for _, item := range s.supporting {
		if item.present(claim) {
			units += supportingUnits
		} else {
			missing = append(missing, item.name)
		}
	}

	return float64(units) / totalUnits, missing
}
