package ports

import "context"

type BuildToolRequest struct {
	Command      string
	SourceDir    string
	ManifestPath string
	Profile      string
	Features     []string
	Jobs         int
	Env          map[string]string
}

type BuildToolPort interface {
	Build(ctx context.Context, req BuildToolRequest) error
}
