package aws

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"

	"github.com/vitalibo/pyxis"
)

// CloudFormationClient is the subset of the CloudFormation API the resolver
// uses.
type CloudFormationClient interface {
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

// CloudFormationResolver resolves stack outputs:
//
//	{{resolve:cloudformation:stack-name:output-key}}
type CloudFormationResolver struct {
	client CloudFormationClient
}

var cloudFormationPattern = regexp.MustCompile(`^\{\{resolve:cloudformation:([a-zA-Z0-9-]+):([a-zA-Z0-9]+)}}`)

// NewCloudFormationResolver creates a CloudFormationResolver using the
// default AWS credential chain.
func NewCloudFormationResolver() (*CloudFormationResolver, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &CloudFormationResolver{client: cloudformation.NewFromConfig(cfg)}, nil
}

// MatchCloudFormation reports whether the value is a CloudFormation output
// reference.
func MatchCloudFormation(value string) bool {
	return strings.HasPrefix(value, "{{resolve:cloudformation:") && strings.HasSuffix(value, "}}")
}

// Resolve fetches the named output value of the stack.
func (r *CloudFormationResolver) Resolve(_ *pyxis.Config, _ string, value string) (any, error) {
	m := cloudFormationPattern.FindStringSubmatch(value)
	if m == nil {
		return nil, fmt.Errorf("value %q is not a valid CloudFormation format", value)
	}
	stackName, outputKey := m[1], m[2]

	out, err := r.client.DescribeStacks(context.Background(), &cloudformation.DescribeStacksInput{
		StackName: &stackName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe stack %q: %w", stackName, err)
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("CloudFormation stack %q does not exist", stackName)
	}

	for _, output := range out.Stacks[0].Outputs {
		if awssdk.ToString(output.OutputKey) == outputKey {
			return awssdk.ToString(output.OutputValue), nil
		}
	}
	return nil, fmt.Errorf("CloudFormation stack %q does not have output %q", stackName, outputKey)
}

var _ pyxis.ValueResolver = (*CloudFormationResolver)(nil)
