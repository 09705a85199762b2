package models

// BehaviorResult records whether one expected behavior was observed in a
// transcript, with the judge's supporting evidence.
type BehaviorResult struct {
	Behavior string `json:"behavior" mapstructure:"behavior"`
	Present  bool   `json:"present" mapstructure:"present"`
	Evidence string `json:"evidence,omitempty" mapstructure:"evidence"`
}

// Judgment is the judge model's verdict on a finished transcript. It is
// derived once per transcript and never mutated afterwards.
//
// Overall is the judge's 1-5 score taken at face value: an out-of-range
// value from the judge is passed through rather than clamped, so a
// misbehaving judge shows up in the results instead of being masked.
type Judgment struct {
	Overall         int              `json:"overall" mapstructure:"overall"`
	Reasoning       string           `json:"reasoning,omitempty" mapstructure:"reasoning"`
	BehaviorResults []BehaviorResult `json:"behavior_results,omitempty" mapstructure:"behavior_results"`
}
