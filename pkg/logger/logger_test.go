package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/coopfondos/coopfondos-api/pkg/logger"
)

func TestNew_NivelDeConfiguracion(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelDesconocidoCaeAInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "ruidoso"})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}

func TestNew_NivelVacioCaeAInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "development", Level: ""})
	assert.Equal(t, zerolog.InfoLevel, l.Zerolog().GetLevel())
}
