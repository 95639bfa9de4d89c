package listing

// Feature is one boolean amenity attribute of a property. The set is open:
// adding a new constant does not break existing records because absent
// entries read as false.
type Feature string

const (
	FeatureBalcony         Feature = "balcony"
	FeatureGym             Feature = "gym"
	FeaturePool            Feature = "pool"
	FeatureElevator        Feature = "elevator"
	FeatureConcierge24h    Feature = "concierge_24h"
	FeatureGreenAreas      Feature = "green_areas"
	FeatureSoccerField     Feature = "soccer_field"
	FeatureBBQKiosk        Feature = "bbq_kiosk"
	FeatureSocialRoom      Feature = "social_room"
	FeaturePlayground      Feature = "playground"
	FeatureWalkingPath     Feature = "walking_path"
	FeatureDiningRoom      Feature = "dining_room"
	FeatureDomesticGas     Feature = "domestic_gas"
	FeatureTemperedGlass   Feature = "tempered_glass"
	FeatureSecurityGrille  Feature = "security_grille"
	FeatureTraditionalDoor Feature = "traditional_door"
)

// Features lists every known amenity flag.
func Features() []Feature {
	return []Feature{
		FeatureBalcony,
		FeatureGym,
		FeaturePool,
		FeatureElevator,
		FeatureConcierge24h,
		FeatureGreenAreas,
		FeatureSoccerField,
		FeatureBBQKiosk,
		FeatureSocialRoom,
		FeaturePlayground,
		FeatureWalkingPath,
		FeatureDiningRoom,
		FeatureDomesticGas,
		FeatureTemperedGlass,
		FeatureSecurityGrille,
		FeatureTraditionalDoor,
	}
}

// IsKnownFeature reports whether name matches a declared amenity flag.
func IsKnownFeature(name string) bool {
	for _, f := range Features() {
		if string(f) == name {
			return true
		}
	}
	return false
}

// FeatureSet is a sparse map of enabled amenity flags. A missing key means
// the property does not have the amenity.
type FeatureSet map[Feature]bool

// Has reports whether the flag is enabled on the set.
func (s FeatureSet) Has(f Feature) bool {
	return s[f]
}

// Set enables or disables a flag, allocating the map on first use.
// Disabled flags are removed so the set stays sparse.
func (s *FeatureSet) Set(f Feature, enabled bool) {
	if *s == nil {
		*s = make(FeatureSet)
	}
	if enabled {
		(*s)[f] = true
	} else {
		delete(*s, f)
	}
}

// Enabled returns the enabled flags in declaration order.
func (s FeatureSet) Enabled() []Feature {
	var out []Feature
	for _, f := range Features() {
		if s[f] {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s FeatureSet) Clone() FeatureSet {
	if s == nil {
		return nil
	}
	out := make(FeatureSet, len(s))
	for f, v := range s {
		if v {
			out[f] = true
		}
	}
	return out
}
