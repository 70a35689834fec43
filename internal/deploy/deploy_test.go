package deploy

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apprunner"
	artypes "github.com/aws/aws-sdk-go-v2/service/apprunner/types"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubECR struct {
	createErr error
	uri       string
	token     string
	endpoint  string
}

func (s *stubECR) CreateRepository(ctx context.Context, params *ecr.CreateRepositoryInput, optFns ...func(*ecr.Options)) (*ecr.CreateRepositoryOutput, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &ecr.CreateRepositoryOutput{
		Repository: &ecrtypes.Repository{RepositoryUri: aws.String(s.uri)},
	}, nil
}

func (s *stubECR) DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	return &ecr.DescribeRepositoriesOutput{
		Repositories: []ecrtypes.Repository{{RepositoryUri: aws.String(s.uri)}},
	}, nil
}

func (s *stubECR) GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error) {
	return &ecr.GetAuthorizationTokenOutput{
		AuthorizationData: []ecrtypes.AuthorizationData{{
			AuthorizationToken: aws.String(s.token),
			ProxyEndpoint:      aws.String(s.endpoint),
		}},
	}, nil
}

func TestEnsureRepository_New(t *testing.T) {
	m := NewECRManager(&stubECR{uri: "123.dkr.ecr.ap-south-1.amazonaws.com/fasalmitra-backend"})

	uri, err := m.EnsureRepository(context.Background(), "fasalmitra-backend")
	require.NoError(t, err)
	assert.Equal(t, "123.dkr.ecr.ap-south-1.amazonaws.com/fasalmitra-backend", uri)
}

func TestEnsureRepository_AlreadyExists(t *testing.T) {
	m := NewECRManager(&stubECR{
		createErr: &ecrtypes.RepositoryAlreadyExistsException{},
		uri:       "123.dkr.ecr.ap-south-1.amazonaws.com/fasalmitra-backend",
	})

	uri, err := m.EnsureRepository(context.Background(), "fasalmitra-backend")
	require.NoError(t, err)
	assert.Equal(t, "123.dkr.ecr.ap-south-1.amazonaws.com/fasalmitra-backend", uri)
}

func TestAuthCredentials(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("AWS:ecr-password"))
	m := NewECRManager(&stubECR{
		token:    token,
		endpoint: "https://123.dkr.ecr.ap-south-1.amazonaws.com",
	})

	registry, username, password, err := m.AuthCredentials(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "123.dkr.ecr.ap-south-1.amazonaws.com", registry)
	assert.Equal(t, "AWS", username)
	assert.Equal(t, "ecr-password", password)
}

type stubIAM struct {
	createErr error
	arn       string
	attached  []string
}

func (s *stubIAM) CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &iam.CreateRoleOutput{Role: &iamtypes.Role{Arn: aws.String(s.arn)}}, nil
}

func (s *stubIAM) GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error) {
	return &iam.GetRoleOutput{Role: &iamtypes.Role{Arn: aws.String(s.arn)}}, nil
}

func (s *stubIAM) AttachRolePolicy(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error) {
	s.attached = append(s.attached, aws.ToString(params.PolicyArn))
	return &iam.AttachRolePolicyOutput{}, nil
}

func TestEnsureRole_New(t *testing.T) {
	stub := &stubIAM{arn: "arn:aws:iam::123:role/fasalmitra-ecr-access"}
	m := NewRoleManager(stub)

	arn, err := m.EnsureRole(context.Background(), "fasalmitra-ecr-access")
	require.NoError(t, err)

	assert.Equal(t, "arn:aws:iam::123:role/fasalmitra-ecr-access", arn)
	require.Len(t, stub.attached, 1)
	assert.Equal(t, ecrAccessPolicyARN, stub.attached[0])
}

func TestEnsureRole_AlreadyExists(t *testing.T) {
	stub := &stubIAM{
		createErr: &iamtypes.EntityAlreadyExistsException{},
		arn:       "arn:aws:iam::123:role/fasalmitra-ecr-access",
	}
	m := NewRoleManager(stub)

	arn, err := m.EnsureRole(context.Background(), "fasalmitra-ecr-access")
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::123:role/fasalmitra-ecr-access", arn)
	assert.Len(t, stub.attached, 1, "policy attach runs on reruns too")
}

type stubAppRunner struct {
	existing   map[string]string
	deployed   []string
	created    []string
	lastCreate *apprunner.CreateServiceInput
}

func (s *stubAppRunner) ListServices(ctx context.Context, params *apprunner.ListServicesInput, optFns ...func(*apprunner.Options)) (*apprunner.ListServicesOutput, error) {
	var summaries []artypes.ServiceSummary
	for name, arn := range s.existing {
		summaries = append(summaries, artypes.ServiceSummary{
			ServiceName: aws.String(name),
			ServiceArn:  aws.String(arn),
		})
	}
	return &apprunner.ListServicesOutput{ServiceSummaryList: summaries}, nil
}

func (s *stubAppRunner) CreateService(ctx context.Context, params *apprunner.CreateServiceInput, optFns ...func(*apprunner.Options)) (*apprunner.CreateServiceOutput, error) {
	s.created = append(s.created, aws.ToString(params.ServiceName))
	s.lastCreate = params
	return &apprunner.CreateServiceOutput{
		Service: &artypes.Service{ServiceArn: aws.String("arn:new")},
	}, nil
}

func (s *stubAppRunner) StartDeployment(ctx context.Context, params *apprunner.StartDeploymentInput, optFns ...func(*apprunner.Options)) (*apprunner.StartDeploymentOutput, error) {
	s.deployed = append(s.deployed, aws.ToString(params.ServiceArn))
	return &apprunner.StartDeploymentOutput{}, nil
}

func TestDeploy_CreatesNewService(t *testing.T) {
	stub := &stubAppRunner{}
	m := NewAppRunnerManager(stub)

	arn, err := m.Deploy(context.Background(), "fasalmitra-backend", "repo:latest", "arn:role", "8000", map[string]string{"ENV": "production"})
	require.NoError(t, err)

	assert.Equal(t, "arn:new", arn)
	assert.Empty(t, stub.deployed)
	require.NotNil(t, stub.lastCreate)

	img := stub.lastCreate.SourceConfiguration.ImageRepository
	assert.Equal(t, "repo:latest", aws.ToString(img.ImageIdentifier))
	assert.Equal(t, "8000", aws.ToString(img.ImageConfiguration.Port))
	assert.Equal(t, "production", img.ImageConfiguration.RuntimeEnvironmentVariables["ENV"])
}

func TestDeploy_RedeploysExistingService(t *testing.T) {
	stub := &stubAppRunner{existing: map[string]string{"fasalmitra-backend": "arn:existing"}}
	m := NewAppRunnerManager(stub)

	arn, err := m.Deploy(context.Background(), "fasalmitra-backend", "repo:latest", "arn:role", "8000", nil)
	require.NoError(t, err)

	assert.Equal(t, "arn:existing", arn)
	assert.Empty(t, stub.created)
	assert.Equal(t, []string{"arn:existing"}, stub.deployed)
}

type recordingDocker struct {
	calls  []string
	failOn string
}

func (r *recordingDocker) record(name string) error {
	r.calls = append(r.calls, name)
	if r.failOn == name {
		return assert.AnError
	}
	return nil
}

func (r *recordingDocker) Login(ctx context.Context, registry, username, password string) error {
	return r.record("login")
}
func (r *recordingDocker) Build(ctx context.Context, dir, tag string) error { return r.record("build") }
func (r *recordingDocker) Tag(ctx context.Context, source, target string) error {
	return r.record("tag")
}
func (r *recordingDocker) Push(ctx context.Context, image string) error { return r.record("push") }

func testPipeline(docker DockerRunner, runner *stubAppRunner) *Pipeline {
	token := base64.StdEncoding.EncodeToString([]byte("AWS:pw"))
	return NewPipeline(
		Options{RepositoryName: "fasalmitra-backend", ServiceName: "fasalmitra-backend"},
		NewECRManager(&stubECR{uri: "repo", token: token, endpoint: "https://registry"}),
		NewRoleManager(&stubIAM{arn: "arn:role"}),
		NewAppRunnerManager(runner),
		docker,
	)
}

func TestPipeline_RunsAllStepsInOrder(t *testing.T) {
	docker := &recordingDocker{}
	runner := &stubAppRunner{}

	err := testPipeline(docker, runner).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"login", "build", "tag", "push"}, docker.calls)
	assert.Equal(t, []string{"fasalmitra-backend"}, runner.created)
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	docker := &recordingDocker{failOn: "build"}
	runner := &stubAppRunner{}

	err := testPipeline(docker, runner).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build image")

	assert.Equal(t, []string{"login", "build"}, docker.calls, "nothing runs after the failed step")
	assert.Empty(t, runner.created)
	assert.Empty(t, runner.deployed)
}

func TestPipeline_ImageURIUsesTag(t *testing.T) {
	p := NewPipeline(Options{RepositoryName: "r", ServiceName: "s", ImageTag: "v2"}, nil, nil, nil, nil)
	p.repositoryURI = "123.dkr.ecr.ap-south-1.amazonaws.com/r"
	assert.Equal(t, "123.dkr.ecr.ap-south-1.amazonaws.com/r:v2", p.imageURI())
}
