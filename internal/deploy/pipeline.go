// Package deploy builds the backend container image and releases it to AWS
// App Runner through ECR. Each pipeline run is a fixed sequence of named
// steps; the first failure aborts the run. There is no rollback: ECR
// repositories, IAM roles and App Runner services are left as they are, and
// every step tolerates resources that already exist, so reruns converge.
package deploy

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Options carries the knobs for one pipeline run.
type Options struct {
	RepositoryName string
	ServiceName    string
	ImageTag       string
	BuildDir       string
	RoleName       string
	ServicePort    string
	RuntimeEnv     map[string]string
}

// Step is one named stage of a deployment.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline ties the AWS clients and the docker runner to the options for a
// single run.
type Pipeline struct {
	opts   Options
	ecr    *ECRManager
	iam    *RoleManager
	runner *AppRunnerManager
	docker DockerRunner

	// filled in as steps complete
	repositoryURI string
	roleARN       string
}

func NewPipeline(opts Options, ecr *ECRManager, iam *RoleManager, runner *AppRunnerManager, docker DockerRunner) *Pipeline {
	if opts.ImageTag == "" {
		opts.ImageTag = "latest"
	}
	if opts.ServicePort == "" {
		opts.ServicePort = "8000"
	}
	if opts.RoleName == "" {
		opts.RoleName = opts.ServiceName + "-ecr-access"
	}
	return &Pipeline{opts: opts, ecr: ecr, iam: iam, runner: runner, docker: docker}
}

func (p *Pipeline) imageURI() string {
	return p.repositoryURI + ":" + p.opts.ImageTag
}

// Steps returns the run sequence in order.
func (p *Pipeline) Steps() []Step {
	return []Step{
		{Name: "ensure ECR repository", Run: p.ensureRepository},
		{Name: "log in to ECR registry", Run: p.registryLogin},
		{Name: "build image", Run: p.buildImage},
		{Name: "push image", Run: p.pushImage},
		{Name: "ensure App Runner access role", Run: p.ensureRole},
		{Name: "deploy App Runner service", Run: p.deployService},
	}
}

// Run executes every step in order and stops at the first failure.
func (p *Pipeline) Run(ctx context.Context) error {
	steps := p.Steps()
	start := time.Now()
	for i, step := range steps {
		log.Printf("[%d/%d] %s", i+1, len(steps), step.Name)
		if err := step.Run(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	log.Printf("✓ Deployed %s in %s", p.opts.ServiceName, time.Since(start).Round(time.Second))
	return nil
}
