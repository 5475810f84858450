package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/joho/godotenv"

	"ros-cargo-build/internal/ports"
)

// EnvFileAdapter snapshots the process environment and overlays an
// optional dotenv file on top of it.
type EnvFileAdapter struct {
	Environ func() []string
}

func NewEnvFileAdapter() EnvFileAdapter {
	return EnvFileAdapter{Environ: os.Environ}
}

func (a EnvFileAdapter) Load(envFile string) (map[string]string, error) {
	environ := a.Environ
	if environ == nil {
		environ = os.Environ
	}
	env := map[string]string{}
	for _, entry := range environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	if strings.TrimSpace(envFile) == "" {
		return env, nil
	}
	overlay, err := godotenv.Read(envFile)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read env file").
			WithCause(err)
	}
	for key, value := range overlay {
		env[key] = value
	}
	return env, nil
}

var _ ports.EnvironmentPort = EnvFileAdapter{}
