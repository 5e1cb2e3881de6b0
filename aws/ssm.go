package aws

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/vitalibo/pyxis"
)

// SystemsManagerClient is the subset of the SSM API the resolver uses.
type SystemsManagerClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SystemsManagerResolver resolves values from Systems Manager Parameter
// Store:
//
//	{{resolve:ssm:parameter-name:version}}
//	{{resolve:ssm-secure:parameter-name:version}}
//
// The ssm-secure form decrypts secure string parameters; version is optional.
type SystemsManagerResolver struct {
	client SystemsManagerClient
}

var systemsManagerPattern = regexp.MustCompile(`^\{\{resolve:ssm(-secure)?:([-a-zA-Z0-9_./]+)(:\d+)?}}`)

// NewSystemsManagerResolver creates a SystemsManagerResolver using the
// default AWS credential chain.
func NewSystemsManagerResolver() (*SystemsManagerResolver, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &SystemsManagerResolver{client: ssm.NewFromConfig(cfg)}, nil
}

// MatchSystemsManager reports whether the value is a Parameter Store
// reference.
func MatchSystemsManager(value string) bool {
	return (strings.HasPrefix(value, "{{resolve:ssm:") || strings.HasPrefix(value, "{{resolve:ssm-secure:")) &&
		strings.HasSuffix(value, "}}")
}

// Resolve fetches the parameter value as a string.
func (r *SystemsManagerResolver) Resolve(_ *pyxis.Config, _ string, value string) (any, error) {
	m := systemsManagerPattern.FindStringSubmatch(value)
	if m == nil {
		return nil, fmt.Errorf("value %q is not a valid SSM format", value)
	}
	secure, name, version := m[1], m[2], m[3]

	if version != "" {
		name += version
	}
	params := &ssm.GetParameterInput{Name: &name}
	if secure != "" {
		params.WithDecryption = awssdk.Bool(true)
	}

	out, err := r.client.GetParameter(context.Background(), params)
	if err != nil {
		return nil, fmt.Errorf("failed to get parameter %q: %w", name, err)
	}
	return awssdk.ToString(out.Parameter.Value), nil
}

var _ pyxis.ValueResolver = (*SystemsManagerResolver)(nil)
