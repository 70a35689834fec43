package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// ecrAccessPolicyARN is the AWS managed policy that lets App Runner pull
// images from private ECR repositories.
const ecrAccessPolicyARN = "arn:aws:iam::aws:policy/service-role/AWSAppRunnerServicePolicyForECRAccess"

// appRunnerTrustPolicy allows the App Runner build service to assume the
// access role.
const appRunnerTrustPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": "build.apprunner.amazonaws.com"},
      "Action": "sts:AssumeRole"
    }
  ]
}`

// IAMAPI is the slice of the IAM client the pipeline uses.
type IAMAPI interface {
	CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
	GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	AttachRolePolicy(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error)
}

type RoleManager struct {
	client IAMAPI
}

func NewRoleManager(client IAMAPI) *RoleManager {
	return &RoleManager{client: client}
}

// EnsureRole creates the ECR access role if needed, attaches the managed
// pull policy, and returns the role ARN. AttachRolePolicy is idempotent so
// it runs on every call.
func (m *RoleManager) EnsureRole(ctx context.Context, name string) (string, error) {
	var arn string

	out, err := m.client.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(name),
		AssumeRolePolicyDocument: aws.String(appRunnerTrustPolicy),
	})
	switch {
	case err == nil:
		arn = aws.ToString(out.Role.Arn)
	default:
		var exists *iamtypes.EntityAlreadyExistsException
		if !errors.As(err, &exists) {
			return "", fmt.Errorf("failed to create role: %w", err)
		}
		existing, err := m.client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})
		if err != nil {
			return "", fmt.Errorf("failed to get role: %w", err)
		}
		arn = aws.ToString(existing.Role.Arn)
	}

	_, err = m.client.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(name),
		PolicyArn: aws.String(ecrAccessPolicyARN),
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach policy: %w", err)
	}
	return arn, nil
}

func (p *Pipeline) ensureRole(ctx context.Context) error {
	arn, err := p.iam.EnsureRole(ctx, p.opts.RoleName)
	if err != nil {
		return err
	}
	p.roleARN = arn
	return nil
}
