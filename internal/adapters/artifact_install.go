package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

// MissingSourceArtifactMsg prefixes the error returned when an install rule
// points at a file the build did not produce.
const MissingSourceArtifactMsg = "missing source artifact"

type ArtifactInstallAdapter struct{}

func NewArtifactInstallAdapter() ArtifactInstallAdapter {
	return ArtifactInstallAdapter{}
}

func (a ArtifactInstallAdapter) Install(ctx context.Context, prefix string, rules []types.InstallRule) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("install prefix is empty")
	}
	for _, rule := range rules {
		info, err := os.Stat(rule.Source)
		if err != nil || info.IsDir() {
			builder := errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("%s: %s", MissingSourceArtifactMsg, rule.Source))
			if err != nil {
				builder = builder.WithCause(err)
			}
			return nil, builder
		}
	}

	installed := make([]string, 0, len(rules))
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return installed, err
		}
		dest := filepath.Join(prefix, filepath.FromSlash(rule.Destination))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return installed, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create install directory").
				WithCause(err)
		}
		if err := copyExecutable(rule.Source, dest); err != nil {
			return installed, err
		}
		log.Ctx(ctx).Info().Str("source", rule.Source).Str("destination", dest).Msg("installed")
		installed = append(installed, dest)
	}
	return installed, nil
}

// copyExecutable writes through a temporary file in the destination
// directory and renames it into place, so a running binary is replaced
// rather than truncated.
func copyExecutable(srcPath string, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: %s", MissingSourceArtifactMsg, srcPath)).
			WithCause(err)
	}
	defer srcFile.Close()

	tmp, err := os.CreateTemp(filepath.Dir(destPath), "."+filepath.Base(destPath)+"-*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create destination file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, srcFile); err != nil {
		tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy artifact").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to flush artifact").
			WithCause(err)
	}
	if err := os.Chmod(tmpPath, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to mark artifact executable").
			WithCause(err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to move artifact into place").
			WithCause(err)
	}
	return nil
}

var _ ports.InstallerPort = ArtifactInstallAdapter{}
