package deploy

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

// ECRAPI is the slice of the ECR client the pipeline uses.
type ECRAPI interface {
	CreateRepository(ctx context.Context, params *ecr.CreateRepositoryInput, optFns ...func(*ecr.Options)) (*ecr.CreateRepositoryOutput, error)
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
}

type ECRManager struct {
	client ECRAPI
}

func NewECRManager(client ECRAPI) *ECRManager {
	return &ECRManager{client: client}
}

// EnsureRepository creates the repository if needed and returns its URI.
func (m *ECRManager) EnsureRepository(ctx context.Context, name string) (string, error) {
	out, err := m.client.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(name),
	})
	if err == nil {
		return aws.ToString(out.Repository.RepositoryUri), nil
	}

	var exists *ecrtypes.RepositoryAlreadyExistsException
	if !errors.As(err, &exists) {
		return "", fmt.Errorf("failed to create repository: %w", err)
	}

	desc, err := m.client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe repository: %w", err)
	}
	if len(desc.Repositories) == 0 {
		return "", fmt.Errorf("repository %s not found after create", name)
	}
	return aws.ToString(desc.Repositories[0].RepositoryUri), nil
}

// AuthCredentials resolves the registry endpoint and the docker login
// credentials from an ECR authorization token.
func (m *ECRManager) AuthCredentials(ctx context.Context) (registry, username, password string, err error) {
	out, err := m.client.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to get authorization token: %w", err)
	}
	if len(out.AuthorizationData) == 0 {
		return "", "", "", errors.New("no authorization data returned")
	}
	data := out.AuthorizationData[0]

	decoded, err := base64.StdEncoding.DecodeString(aws.ToString(data.AuthorizationToken))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to decode authorization token: %w", err)
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", "", errors.New("malformed authorization token")
	}

	registry = strings.TrimPrefix(aws.ToString(data.ProxyEndpoint), "https://")
	return registry, username, password, nil
}

func (p *Pipeline) ensureRepository(ctx context.Context) error {
	uri, err := p.ecr.EnsureRepository(ctx, p.opts.RepositoryName)
	if err != nil {
		return err
	}
	p.repositoryURI = uri
	return nil
}

func (p *Pipeline) registryLogin(ctx context.Context) error {
	registry, username, password, err := p.ecr.AuthCredentials(ctx)
	if err != nil {
		return err
	}
	return p.docker.Login(ctx, registry, username, password)
}
