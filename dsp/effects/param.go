package effects

import "fmt"

// Param identifies a configurable effect parameter.
type Param int

const (
	ParamGain Param = iota
	ParamDelay
	ParamWidth
	ParamFrequency
)

// String returns the parameter name.
func (p Param) String() string {
	switch p {
	case ParamGain:
		return "gain"
	case ParamDelay:
		return "delay"
	case ParamWidth:
		return "width"
	case ParamFrequency:
		return "frequency"
	default:
		return fmt.Sprintf("param(%d)", int(p))
	}
}

// ParamError reports a rejected parameter value. The effect's state
// is unchanged when a ParamError is returned.
type ParamError struct {
	Param Param
	Value float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("effects: invalid value for %s: %g", e.Param, e.Value)
}
