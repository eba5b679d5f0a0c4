package providers

import (
	"net/http"
	"os"
	"path/filepath"
	"sid/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum int

// Log categories. App events and request logs go to separate files so the
// request stream can be rotated independently.
const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
	TypeAuth
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == http.MethodPost {
		return TypePost
	}
	return TypeGet
}

type LogProvider struct {
	app    zerolog.Logger
	access zerolog.Logger
	auth   zerolog.Logger
	files  []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	lp := &LogProvider{}
	mode := os.FileMode(conf.Logger.Mode)

	open := func(name string) (zerolog.Logger, error) {
		path := filepath.Join(conf.Logger.Dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, mode)
		if err != nil {
			return zerolog.Logger{}, err
		}
		lp.files = append(lp.files, file)
		return zerolog.New(file).Level(level).With().Timestamp().Logger(), nil
	}

	if lp.app, err = open("app.log"); err != nil {
		lp.Close()
		return nil, err
	}
	if lp.access, err = open("access.log"); err != nil {
		lp.Close()
		return nil, err
	}
	if lp.auth, err = open("auth.log"); err != nil {
		lp.Close()
		return nil, err
	}
	return lp, nil
}

func (lp *LogProvider) byType(t TypeEnum) *zerolog.Logger {
	switch t {
	case TypeGet, TypePost:
		return &lp.access
	case TypeAuth:
		return &lp.auth
	default:
		return &lp.app
	}
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.byType(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
	lp.files = nil
}
