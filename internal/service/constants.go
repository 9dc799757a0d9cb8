package service

const (
	// Food history shown for "pick a previous food"
	RecentFoodsLimit = 30

	// Preset names
	PresetPushPullLegs = "push-pull-legs"
	PresetUpperLower   = "upper-lower"
)
