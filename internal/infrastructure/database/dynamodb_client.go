package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBSettings selects the account and, for DynamoDB Local, the endpoint
// of the drafts table.
type DynamoDBSettings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // empty means the regional AWS endpoint
}

// ConnectDynamoDB builds the client the draft store talks to.
func ConnectDynamoDB(ctx context.Context, s DynamoDBSettings) (*dynamodb.Client, error) {
	cfg, err := LoadAWSConfig(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("load aws config region=%s: %w", s.Region, err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// LoadAWSConfig uses static credentials when both keys are set and the
// default provider chain (env, shared config, IAM role) otherwise.
func LoadAWSConfig(ctx context.Context, s DynamoDBSettings) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(s.Region)}
	if s.AccessKeyID != "" && s.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, ""),
		))
	}
	if s.Endpoint != "" {
		opts = append(opts, config.WithEndpointResolverWithOptions(localEndpointResolver(s.Endpoint)))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}

// localEndpointResolver routes only DynamoDB calls to endpoint.
func localEndpointResolver(endpoint string) aws.EndpointResolverWithOptions {
	return aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
		if service != dynamodb.ServiceID {
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		}
		return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
	})
}
