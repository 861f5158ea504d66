package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidRoll is returned when a d100 result lies outside [1, 100].
var ErrInvalidRoll = errors.New("dice: d100 roll out of range")

// FumbleThreshold is the lowest d100 result that fumbles.
const FumbleThreshold = 96

// Outcome is a resolved d100 roll against a target.
//
// Fumble is evaluated independently of Success, so a high target can yield a
// roll that is both.
type Outcome struct {
	Roll     int  `yaml:"roll"`
	Target   int  `yaml:"target"`
	Success  bool `yaml:"success"`
	Critical bool `yaml:"critical"`
	Fumble   bool `yaml:"fumble"`
}

// Resolve grades a d100 roll against target: success when roll <= target,
// critical when roll <= floor(target/20), fumble when roll >= 96.
//
// Precondition: roll in [1, 100].
// Postcondition: Critical implies Success.
func Resolve(target, roll int) (Outcome, error) {
	if roll < 1 || roll > 100 {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidRoll, roll)
	}
	return Outcome{
		Roll:     roll,
		Target:   target,
		Success:  roll <= target,
		Critical: roll <= max(0, target)/20,
		Fumble:   roll >= FumbleThreshold,
	}, nil
}

// D100 draws a d100 result from src.
func D100(src Source) int {
	return src.Intn(100) + 1
}
