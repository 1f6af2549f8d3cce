package lbvh

var (
	Debug         = false // set to true for verbose debug output via DebugLog (used by Build)
	ValidateInput = false // set to true to reject primitive AABBs with Min > Max on any axis
)
