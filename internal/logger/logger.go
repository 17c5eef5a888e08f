package logger

import (
  "go.uber.org/zap"
  "go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper over zap's sugared logger so every layer logs
// with the same key/value call shape.
type Logger struct {
  sugar *zap.SugaredLogger
}

func New(mode string) (*Logger, error) {
  var cfg zap.Config
  switch mode {
  case "production":
    cfg = zap.NewProductionConfig()
  default:
    cfg = zap.NewDevelopmentConfig()
    cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
  }
  cfg.EncoderConfig.TimeKey = "ts"
  cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
  base, err := cfg.Build(zap.AddCallerSkip(1))
  if err != nil {
    return nil, err
  }
  return &Logger{sugar: base.Sugar()}, nil
}

func NewNop() *Logger {
  return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) With(kv ...any) *Logger {
  return &Logger{sugar: l.sugar.With(kv...)}
}

func (l *Logger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

func (l *Logger) Sync() error {
  return l.sugar.Sync()
}
