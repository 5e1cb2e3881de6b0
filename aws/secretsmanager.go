package aws

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/vitalibo/pyxis"
)

// SecretsManagerClient is the subset of the Secrets Manager API the resolver
// uses.
type SecretsManagerClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerResolver resolves values of the form
//
//	{{resolve:secretsmanager:secret-id:secret-string:json-key:version-id}}
//
// where secret-id is the friendly name or the full ARN of the secret,
// secret-string must be SecretString when present, json-key selects a field
// from the JSON secret payload, and version-id pins a specific version.
type SecretsManagerResolver struct {
	client SecretsManagerClient
}

var secretsManagerPattern = regexp.MustCompile(
	`^\{\{resolve:secretsmanager:(arn:aws:secretsmanager:.*:.*:secret:.+?|.+?)(?::(.*?)(?::(.*?)(?::(.*?))?)?)?}}`)

// NewSecretsManagerResolver creates a SecretsManagerResolver using the
// default AWS credential chain.
func NewSecretsManagerResolver() (*SecretsManagerResolver, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &SecretsManagerResolver{client: secretsmanager.NewFromConfig(cfg)}, nil
}

// MatchSecretsManager reports whether the value is a Secrets Manager
// reference.
func MatchSecretsManager(value string) bool {
	return strings.HasPrefix(value, "{{resolve:secretsmanager:") && strings.HasSuffix(value, "}}")
}

// Resolve fetches the secret and returns its JSON payload, or a single field
// of it when a json-key is given.
func (r *SecretsManagerResolver) Resolve(_ *pyxis.Config, _ string, value string) (any, error) {
	m := secretsManagerPattern.FindStringSubmatch(value)
	if m == nil {
		return nil, fmt.Errorf("value %q is not a valid Secrets Manager format", value)
	}
	secretID, decryption, jsonKey, versionID := m[1], m[2], m[3], m[4]

	if secretID == "" {
		return nil, fmt.Errorf("secret ID is required")
	}
	if decryption != "" && decryption != "SecretString" {
		return nil, fmt.Errorf("SecretString is the only supported decryption type")
	}

	params := &secretsmanager.GetSecretValueInput{SecretId: &secretID}
	if versionID != "" {
		params.VersionId = &versionID
	}
	out, err := r.client.GetSecretValue(context.Background(), params)
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %q: %w", secretID, err)
	}

	payload, err := pyxis.JSONParser{}.Parse(awssdk.ToString(out.SecretString))
	if err != nil {
		return nil, fmt.Errorf("failed to parse secret %q payload: %w", secretID, err)
	}

	if jsonKey == "" {
		return payload, nil
	}
	return pyxis.New(payload).Get(jsonKey)
}

var _ pyxis.ValueResolver = (*SecretsManagerResolver)(nil)
