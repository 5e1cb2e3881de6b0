package aws

import (
	"context"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsManagerClient struct {
	secretID  string
	versionID string
	payload   string
	err       error
}

func (f *fakeSecretsManagerClient) GetSecretValue(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.secretID = awssdk.ToString(params.SecretId)
	f.versionID = awssdk.ToString(params.VersionId)
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: awssdk.String(f.payload)}, nil
}

// TestMatchSecretsManager tests the reference predicate
func TestMatchSecretsManager(t *testing.T) {
	assert.True(t, MatchSecretsManager("{{resolve:secretsmanager:my-secret}}"))
	assert.False(t, MatchSecretsManager("{{resolve:ssm:my-param}}"))
	assert.False(t, MatchSecretsManager("{{resolve:secretsmanager:unclosed"))
	assert.False(t, MatchSecretsManager("plain"))
}

// TestSecretsManagerResolve tests secret retrieval and field extraction
func TestSecretsManagerResolve(t *testing.T) {
	t.Run("FullPayload", func(t *testing.T) {
		client := &fakeSecretsManagerClient{payload: `{"username": "admin", "password": "s3cr3t"}`}
		resolver := &SecretsManagerResolver{client: client}

		v, err := resolver.Resolve(nil, "db.credentials", "{{resolve:secretsmanager:my-secret}}")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"username": "admin", "password": "s3cr3t"}, v)
		assert.Equal(t, "my-secret", client.secretID)
		assert.Empty(t, client.versionID)
	})

	t.Run("JSONKey", func(t *testing.T) {
		client := &fakeSecretsManagerClient{payload: `{"username": "admin", "password": "s3cr3t"}`}
		resolver := &SecretsManagerResolver{client: client}

		v, err := resolver.Resolve(nil, "db.password", "{{resolve:secretsmanager:my-secret:SecretString:password}}")
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", v)
	})

	t.Run("VersionID", func(t *testing.T) {
		client := &fakeSecretsManagerClient{payload: `{"password": "old"}`}
		resolver := &SecretsManagerResolver{client: client}

		v, err := resolver.Resolve(nil, "", "{{resolve:secretsmanager:my-secret:SecretString:password:v1}}")
		require.NoError(t, err)
		assert.Equal(t, "old", v)
		assert.Equal(t, "v1", client.versionID)
	})

	t.Run("FullARN", func(t *testing.T) {
		client := &fakeSecretsManagerClient{payload: `{"k": "v"}`}
		resolver := &SecretsManagerResolver{client: client}

		arn := "arn:aws:secretsmanager:us-east-1:123456789012:secret:my-secret-AbCdEf"
		_, err := resolver.Resolve(nil, "", "{{resolve:secretsmanager:"+arn+"}}")
		require.NoError(t, err)
		assert.Equal(t, arn, client.secretID)
	})

	t.Run("UnsupportedDecryptionType", func(t *testing.T) {
		resolver := &SecretsManagerResolver{client: &fakeSecretsManagerClient{}}

		_, err := resolver.Resolve(nil, "", "{{resolve:secretsmanager:my-secret:SecretBinary}}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SecretString is the only supported decryption type")
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		resolver := &SecretsManagerResolver{client: &fakeSecretsManagerClient{}}

		_, err := resolver.Resolve(nil, "", "not-a-reference")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid Secrets Manager format")
	})
}
