package cbl

// RiskRating is CBL's 0-4 ordinal classification of a player.
type RiskRating int

// RiskUnknown is used when CBL returns no rating or a non-integer one.
const RiskUnknown RiskRating = -1

var riskLabels = map[RiskRating]string{
	0: "None",
	1: "Low",
	2: "Medium",
	3: "High",
	4: "Extreme",
}

// Label returns the human readable rating. Values outside 0-4 are "Unknown".
func (r RiskRating) Label() string {
	if label, ok := riskLabels[r]; ok {
		return label
	}
	return "Unknown"
}
