package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged rolling.
// Every roll is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// D100 rolls percentile dice against target and logs the graded outcome.
//
// Postcondition: Outcome.Roll is in [1, 100].
func (r *Roller) D100(target int) Outcome {
	out, err := Resolve(target, D100(r.src))
	if err != nil {
		// D100 always yields [1, 100]; a Source violating Intn's contract lands here.
		panic(err)
	}
	r.logger.Debug("d100 roll",
		zap.Int("target", out.Target),
		zap.Int("roll", out.Roll),
		zap.Bool("success", out.Success),
		zap.Bool("critical", out.Critical),
		zap.Bool("fumble", out.Fumble),
	)
	return out
}

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
// Postcondition: result logged; returns RollResult or error.
func (r *Roller) Roll(expr Expression) (RollResult, error) {
	result, err := Roll(expr, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// RollExpr parses expr and rolls it, logging the result.
//
// Precondition: expr must be a valid dice expression string.
// Postcondition: Returns a RollResult or a parse/roll error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e)
}
