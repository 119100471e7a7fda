package ai

// MaxAdjustment is how far a verdict may move confidence from the Rule
// Matcher's value. Validation is a second opinion, not an override.
const MaxAdjustment = 20

// BoundAdjustment clamps a proposed confidence to ±MaxAdjustment of the
// base and to [0,100].
func BoundAdjustment(base, proposed int) int {
	if proposed > base+MaxAdjustment {
		proposed = base + MaxAdjustment
	}
	if proposed < base-MaxAdjustment {
		proposed = base - MaxAdjustment
	}
	if proposed > 100 {
		proposed = 100
	}
	if proposed < 0 {
		proposed = 0
	}
	return proposed
}
