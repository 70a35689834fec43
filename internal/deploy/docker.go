package deploy

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DockerRunner abstracts the docker CLI so tests can record invocations
// without a daemon.
type DockerRunner interface {
	Login(ctx context.Context, registry, username, password string) error
	Build(ctx context.Context, dir, tag string) error
	Tag(ctx context.Context, source, target string) error
	Push(ctx context.Context, image string) error
}

// ExecDockerRunner shells out to the local docker binary.
type ExecDockerRunner struct{}

func (ExecDockerRunner) run(ctx context.Context, stdin string, args ...string) error {
	cmd := exec.CommandContext(ctx, "docker", args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker %s: %w", args[0], err)
	}
	return nil
}

// Login pipes the password through stdin so it never appears in the
// process list.
func (r ExecDockerRunner) Login(ctx context.Context, registry, username, password string) error {
	return r.run(ctx, password, "login", "--username", username, "--password-stdin", registry)
}

func (r ExecDockerRunner) Build(ctx context.Context, dir, tag string) error {
	return r.run(ctx, "", "build", "--platform", "linux/amd64", "-t", tag, dir)
}

func (r ExecDockerRunner) Tag(ctx context.Context, source, target string) error {
	return r.run(ctx, "", "tag", source, target)
}

func (r ExecDockerRunner) Push(ctx context.Context, image string) error {
	return r.run(ctx, "", "push", image)
}

func (p *Pipeline) buildImage(ctx context.Context) error {
	if err := p.docker.Build(ctx, p.opts.BuildDir, p.opts.RepositoryName); err != nil {
		return err
	}
	return p.docker.Tag(ctx, p.opts.RepositoryName, p.imageURI())
}

func (p *Pipeline) pushImage(ctx context.Context) error {
	return p.docker.Push(ctx, p.imageURI())
}
