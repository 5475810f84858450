package adapters

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/shared"
	"ros-cargo-build/internal/types"
)

// CargoBuildAdapter compiles the crate with cargo. The environment handed to
// cargo is the request environment only; callers merge the process
// environment in beforehand.
type CargoBuildAdapter struct{}

func NewCargoBuildAdapter() CargoBuildAdapter {
	return CargoBuildAdapter{}
}

func (a CargoBuildAdapter) Build(ctx context.Context, req ports.BuildToolRequest) error {
	if strings.TrimSpace(req.SourceDir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is empty")
	}
	command := strings.TrimSpace(req.Command)
	if command == "" {
		command = string(types.BuildToolCargo)
	}
	args := cargoArgs(req)
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = req.SourceDir
	cmd.Env = envList(req.Env)

	log.Ctx(ctx).Info().
		Str("command", command).
		Strs("args", args).
		Str("dir", req.SourceDir).
		Msg("running build tool")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("%s build failed", command)).
			WithCause(shared.CommandError(output, err))
	}
	log.Ctx(ctx).Debug().Str("output", string(output)).Msg("build tool finished")
	return nil
}

func cargoArgs(req ports.BuildToolRequest) []string {
	args := []string{"build"}
	switch profile := strings.TrimSpace(req.Profile); profile {
	case "", types.DefaultBuildProfile:
		args = append(args, "--release")
	case "dev", "debug":
	default:
		args = append(args, "--profile", profile)
	}
	if manifest := strings.TrimSpace(req.ManifestPath); manifest != "" {
		args = append(args, "--manifest-path", manifest)
	}
	if len(req.Features) > 0 {
		args = append(args, "--features", strings.Join(req.Features, ","))
	}
	if req.Jobs > 0 {
		args = append(args, "--jobs", strconv.Itoa(req.Jobs))
	}
	return args
}

func envList(env map[string]string) []string {
	if len(env) == 0 {
		return os.Environ()
	}
	list := make([]string, 0, len(env))
	for _, key := range shared.SortedKeys(env) {
		list = append(list, key+"="+env[key])
	}
	return list
}

var _ ports.BuildToolPort = CargoBuildAdapter{}
