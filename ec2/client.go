// Package ec2 discovers EC2 instance types for the configured region.
//
// A Client owns an immutable resolved configuration and exposes a single
// query, ListMachineTypes. Credentials and region come from the eigenangi
// configuration chain (environment, .env, user TOML file), falling back to
// the SDK's default credential chain when the chain supplies no key pair.
// Every provider failure is translated into one of the typed errors from
// eigenangi/errors.
package ec2

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"

	"eigenangi/errors"
	"eigenangi/internal/config"
)

// pageSize is the number of instance types requested per DescribeInstanceTypes
// page (API maximum is 100).
const pageSize = 100

// credentialProbeTimeout bounds the credential retrieval check performed at
// construction time.
const credentialProbeTimeout = 10 * time.Second

// archFilterName is the server-side DescribeInstanceTypes filter used to
// pre-narrow by CPU architecture. Family and burstable filters are applied
// client-side.
const archFilterName = "processor-info.supported-architecture"

// DescribeInstanceTypesAPI is the slice of the EC2 API the client depends on.
// *ec2.Client from the AWS SDK satisfies it.
type DescribeInstanceTypesAPI = awsec2.DescribeInstanceTypesAPIClient

// Client wraps the EC2 API for machine type discovery.
type Client struct {
	api    DescribeInstanceTypesAPI
	region string
}

// ClientConfig holds construction-time overrides for the client.
type ClientConfig struct {
	// Region overrides the region from the configuration chain.
	Region string
}

// NewClient resolves configuration and builds a client for the resolved
// region. Configuration failures (malformed files, missing region) surface
// here, before any network call.
func NewClient(ctx context.Context, clientConfig *ClientConfig) (*Client, error) {
	if clientConfig == nil {
		clientConfig = &ClientConfig{}
	}

	resolved, err := config.Resolve(clientConfig.Region)
	if err != nil {
		return nil, err
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(resolved.Region),
		// Single attempt per request: retry policy is left to callers, so a
		// throttled or failing provider surfaces as a typed error instead of
		// being retried silently.
		awsconfig.WithRetryMaxAttempts(1),
	}

	if resolved.HasStaticCredentials() {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				resolved.AccessKeyID, resolved.SecretAccessKey, resolved.SessionToken)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, errors.CredentialsErrorWithCause("failed to load AWS configuration", err).
			WithSuggestion("Ensure AWS credentials are configured (environment variables, .env, user config file, or IAM role)")
	}

	// Verify credentials resolve before handing out the client, so a missing
	// credential chain fails at construction rather than on the first query.
	probeCtx, cancel := context.WithTimeout(ctx, credentialProbeTimeout)
	defer cancel()

	if _, err := cfg.Credentials.Retrieve(probeCtx); err != nil {
		return nil, errors.CredentialsErrorWithCause("AWS credentials not found", err).
			WithSuggestion(fmt.Sprintf("Set %s and %s environment variables", config.EnvAccessKeyID, config.EnvSecretAccessKey)).
			WithSuggestion("Configure a shared credentials file or IAM role")
	}

	return &Client{
		api:    awsec2.NewFromConfig(cfg),
		region: resolved.Region,
	}, nil
}

// NewClientFromAPI builds a client around an already-configured EC2 API.
// Useful for callers that manage their own SDK configuration, and for tests.
func NewClientFromAPI(api DescribeInstanceTypesAPI, region string) *Client {
	return &Client{api: api, region: region}
}

// Region returns the region all queries are issued against.
func (c *Client) Region() string {
	return c.region
}

// ListMachineTypes discovers the instance types available in the client's
// region. Pages are aggregated in provider order, the filters in opts are
// applied conjunctively client-side, and the result is truncated to
// opts.MaxResults when set. A nil opts matches everything.
func (c *Client) ListMachineTypes(ctx context.Context, opts *ListOptions) ([]MachineType, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	input := &awsec2.DescribeInstanceTypesInput{
		MaxResults: aws.Int32(pageSize),
	}

	if opts != nil && opts.Architecture != "" {
		input.Filters = []types.Filter{{
			Name:   aws.String(archFilterName),
			Values: []string{opts.Architecture},
		}}
	}

	var machines []MachineType
	pages := 0

	paginator := awsec2.NewDescribeInstanceTypesPaginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, mapProviderError(err)
		}
		pages++

		for _, info := range page.InstanceTypes {
			machine := machineTypeFromAWS(info)
			if !opts.matches(machine) {
				continue
			}

			machines = append(machines, machine)
			if opts != nil && opts.MaxResults > 0 && len(machines) == opts.MaxResults {
				slog.Debug("machine type listing truncated",
					"region", c.region, "maxResults", opts.MaxResults, "pages", pages)
				return machines, nil
			}
		}
	}

	slog.Debug("machine type listing complete",
		"region", c.region, "count", len(machines), "pages", pages)

	return machines, nil
}

// Provider error codes mapped onto the typed taxonomy.
var (
	permissionCodes = map[string]bool{
		"AccessDenied":          true,
		"AccessDeniedException": true,
		"UnauthorizedOperation": true,
	}
	credentialCodes = map[string]bool{
		"AuthFailure":                 true,
		"ExpiredToken":                true,
		"InvalidClientTokenId":        true,
		"MissingAuthenticationToken":  true,
		"SignatureDoesNotMatch":       true,
		"UnrecognizedClientException": true,
	}
)

// mapProviderError translates any DescribeInstanceTypes failure into exactly
// one typed error, preserving the provider code for diagnostics.
func mapProviderError(err error) *errors.DiscoveryError {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		code := apiErr.ErrorCode()

		switch {
		case permissionCodes[code]:
			return errors.PermissionErrorWithCause("access denied for DescribeInstanceTypes", err).
				WithCode(code).
				WithSuggestion("Grant the ec2:DescribeInstanceTypes permission to the calling identity")
		case credentialCodes[code]:
			return errors.CredentialsErrorWithCause("AWS rejected the supplied credentials", err).
				WithCode(code).
				WithSuggestion("Check that the access key, secret key, and session token are current")
		default:
			// Throttling, internal errors, and anything unrecognized.
			return errors.ServiceErrorWithCause("EC2 request failed", err).WithCode(code)
		}
	}

	// No provider response: network failure, malformed response, cancellation.
	return errors.ServiceErrorWithCause("EC2 request failed before a provider response", err)
}
