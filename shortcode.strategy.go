package shortcode

import (
	"go.uber.org/zap"
)

// strategyFor returns the strategy for sc: a valid onerror attribute wins
// over the engine default.
func (e *Engine) strategyFor(sc *Shortcode) ErrorStrategy {
	if v, ok := sc.Attributes.Get(AttrOnError); ok && IsValidErrorStrategy(v) {
		return ParseErrorStrategy(v)
	}
	return e.config.errorStrategy
}

// handleError applies the error strategy to a failed shortcode and returns
// the replacement text, or err for ErrorStrategyThrow.
func (e *Engine) handleError(sc *Shortcode, err error) (string, error) {
	strategy := e.strategyFor(sc)

	switch strategy {
	case ErrorStrategyDefault:
		e.logStrategy(sc, strategy, err)
		return sc.Attributes.GetDefault(AttrDefault, ""), nil
	case ErrorStrategyRemove:
		e.logStrategy(sc, strategy, err)
		return "", nil
	case ErrorStrategyKeepRaw:
		e.logStrategy(sc, strategy, err)
		return sc.Raw, nil
	case ErrorStrategyLog:
		e.logger.Warn(LogMsgRenderFailed,
			zap.String(LogFieldShortcode, sc.Name),
			zap.Stringer(LogFieldStrategy, strategy),
			zap.Error(err))
		return "", nil
	default:
		return "", err
	}
}

func (e *Engine) logStrategy(sc *Shortcode, strategy ErrorStrategy, err error) {
	e.logger.Debug(LogMsgStrategyApplied,
		zap.String(LogFieldShortcode, sc.Name),
		zap.Stringer(LogFieldStrategy, strategy),
		zap.Error(err))
}
