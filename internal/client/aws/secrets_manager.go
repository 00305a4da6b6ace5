package aws

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/logger"
)

// SecretsManagerClient wraps the AWS Secrets Manager client. The paymaster
// keeps its operator private key and database URL out of plain environment
// variables in deployed stages.
type SecretsManagerClient struct {
	svc *secretsmanager.Client
	cfg aws.Config
}

// NewSecretsManagerClient creates and initializes a new Secrets Manager client.
// It uses the default AWS configuration chain (environment variables, shared config, IAM role).
func NewSecretsManagerClient(ctx context.Context) (*SecretsManagerClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS SDK config")
	}

	return &SecretsManagerClient{
		svc: secretsmanager.NewFromConfig(cfg),
		cfg: cfg,
	}, nil
}

// GetSecretString fetches a secret string from Secrets Manager using an ARN
// held in secretArnEnvVar. If the ARN variable is unset or the fetch fails,
// it falls back to reading the value directly from fallbackEnvVar. Returns an
// error only when both sources come up empty.
func (c *SecretsManagerClient) GetSecretString(ctx context.Context, secretArnEnvVar string, fallbackEnvVar string) (string, error) {
	secretArn := os.Getenv(secretArnEnvVar)

	if secretArn != "" {
		result, err := c.svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId: aws.String(secretArn),
		})
		if err == nil && result.SecretString != nil && *result.SecretString != "" {
			logger.Debug("Fetched secret from Secrets Manager",
				zap.String("secret_arn", secretArn))
			return *result.SecretString, nil
		}
		logger.Warn("Failed to retrieve secret from Secrets Manager, falling back to env var",
			zap.String("secret_arn", secretArn),
			zap.String("fallback_env_var", fallbackEnvVar),
			zap.Error(err),
		)
	}

	if value := os.Getenv(fallbackEnvVar); value != "" {
		return value, nil
	}

	return "", errors.Errorf("secret not found in Secrets Manager (%s) or environment (%s)",
		secretArnEnvVar, fallbackEnvVar)
}

// GetSecretJSON fetches a secret and unmarshals its JSON payload into target.
func (c *SecretsManagerClient) GetSecretJSON(ctx context.Context, secretArnEnvVar string, fallbackEnvVar string, target interface{}) error {
	raw, err := c.GetSecretString(ctx, secretArnEnvVar, fallbackEnvVar)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return errors.Wrapf(err, "failed to parse secret JSON (%s)", secretArnEnvVar)
	}
	return nil
}
