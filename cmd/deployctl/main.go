package main

import (
	"context"
	"flag"
	"log"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apprunner"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"fasalmitra/internal/deploy"
)

func main() {
	var (
		region   = flag.String("region", "ap-south-1", "AWS region")
		repo     = flag.String("repo", "fasalmitra-backend", "ECR repository name")
		service  = flag.String("service", "fasalmitra-backend", "App Runner service name")
		tag      = flag.String("tag", "latest", "image tag")
		buildDir = flag.String("dir", ".", "docker build context directory")
		port     = flag.String("port", "8000", "container port")
		envPairs = flag.String("env", "", "runtime env variables as KEY=VALUE,KEY=VALUE")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(*region))
	if err != nil {
		log.Fatalf("Failed to load AWS configuration: %v", err)
	}

	pipeline := deploy.NewPipeline(
		deploy.Options{
			RepositoryName: *repo,
			ServiceName:    *service,
			ImageTag:       *tag,
			BuildDir:       *buildDir,
			ServicePort:    *port,
			RuntimeEnv:     parseEnv(*envPairs),
		},
		deploy.NewECRManager(ecr.NewFromConfig(cfg)),
		deploy.NewRoleManager(iam.NewFromConfig(cfg)),
		deploy.NewAppRunnerManager(apprunner.NewFromConfig(cfg)),
		deploy.ExecDockerRunner{},
	)

	if err := pipeline.Run(ctx); err != nil {
		log.Fatalf("Deployment failed: %v", err)
	}
}

func parseEnv(pairs string) map[string]string {
	if pairs == "" {
		return nil
	}
	env := make(map[string]string)
	for _, pair := range strings.Split(pairs, ",") {
		key, value, found := strings.Cut(pair, "=")
		if found && key != "" {
			env[key] = value
		}
	}
	return env
}
