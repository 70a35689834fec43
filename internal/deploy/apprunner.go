package deploy

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apprunner"
	artypes "github.com/aws/aws-sdk-go-v2/service/apprunner/types"
)

// AppRunnerAPI is the slice of the App Runner client the pipeline uses.
type AppRunnerAPI interface {
	ListServices(ctx context.Context, params *apprunner.ListServicesInput, optFns ...func(*apprunner.Options)) (*apprunner.ListServicesOutput, error)
	CreateService(ctx context.Context, params *apprunner.CreateServiceInput, optFns ...func(*apprunner.Options)) (*apprunner.CreateServiceOutput, error)
	StartDeployment(ctx context.Context, params *apprunner.StartDeploymentInput, optFns ...func(*apprunner.Options)) (*apprunner.StartDeploymentOutput, error)
}

type AppRunnerManager struct {
	client AppRunnerAPI
}

func NewAppRunnerManager(client AppRunnerAPI) *AppRunnerManager {
	return &AppRunnerManager{client: client}
}

// findService returns the ARN of the named service, or "" when it does not
// exist yet.
func (m *AppRunnerManager) findService(ctx context.Context, name string) (string, error) {
	var nextToken *string
	for {
		out, err := m.client.ListServices(ctx, &apprunner.ListServicesInput{NextToken: nextToken})
		if err != nil {
			return "", fmt.Errorf("failed to list services: %w", err)
		}
		for _, svc := range out.ServiceSummaryList {
			if aws.ToString(svc.ServiceName) == name {
				return aws.ToString(svc.ServiceArn), nil
			}
		}
		if out.NextToken == nil {
			return "", nil
		}
		nextToken = out.NextToken
	}
}

// Deploy creates the service on first run. On later runs it starts a new
// deployment of the already-pushed image instead.
func (m *AppRunnerManager) Deploy(ctx context.Context, name, imageURI, accessRoleARN, port string, env map[string]string) (string, error) {
	arn, err := m.findService(ctx, name)
	if err != nil {
		return "", err
	}

	if arn != "" {
		log.Printf("✓ Service %s exists, starting deployment", name)
		_, err := m.client.StartDeployment(ctx, &apprunner.StartDeploymentInput{
			ServiceArn: aws.String(arn),
		})
		if err != nil {
			return "", fmt.Errorf("failed to start deployment: %w", err)
		}
		return arn, nil
	}

	log.Printf("✓ Creating service %s", name)
	out, err := m.client.CreateService(ctx, &apprunner.CreateServiceInput{
		ServiceName: aws.String(name),
		SourceConfiguration: &artypes.SourceConfiguration{
			AuthenticationConfiguration: &artypes.AuthenticationConfiguration{
				AccessRoleArn: aws.String(accessRoleARN),
			},
			AutoDeploymentsEnabled: aws.Bool(false),
			ImageRepository: &artypes.ImageRepository{
				ImageIdentifier:     aws.String(imageURI),
				ImageRepositoryType: artypes.ImageRepositoryTypeEcr,
				ImageConfiguration: &artypes.ImageConfiguration{
					Port:                        aws.String(port),
					RuntimeEnvironmentVariables: env,
				},
			},
		},
		InstanceConfiguration: &artypes.InstanceConfiguration{
			Cpu:    aws.String("1024"),
			Memory: aws.String("2048"),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create service: %w", err)
	}
	return aws.ToString(out.Service.ServiceArn), nil
}

func (p *Pipeline) deployService(ctx context.Context) error {
	arn, err := p.runner.Deploy(ctx, p.opts.ServiceName, p.imageURI(), p.roleARN, p.opts.ServicePort, p.opts.RuntimeEnv)
	if err != nil {
		return err
	}
	log.Printf("✓ Service ARN: %s", arn)
	return nil
}
