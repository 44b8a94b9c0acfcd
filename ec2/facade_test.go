package ec2

import (
	"context"
	"sync"
	"testing"

	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eigenangi/internal/config"
)

func TestDefaultConstructsOnce(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvAccessKeyID, "AKIAEXAMPLE")
	t.Setenv(config.EnvSecretAccessKey, "secret")
	t.Setenv(config.EnvDefaultRegion, "us-east-1")

	ResetDefault()
	t.Cleanup(ResetDefault)

	const callers = 8
	clients := make([]*Client, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client, err := Default(context.Background())
			assert.NoError(t, err)
			clients[i] = client
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, clients[0], clients[i], "all callers must share one client")
	}
}

func TestDefaultRetriesAfterFailedConstruction(t *testing.T) {
	isolateConfig(t)

	ResetDefault()
	t.Cleanup(ResetDefault)

	// No region anywhere: construction fails and must not be cached.
	_, err := Default(context.Background())
	require.Error(t, err)

	t.Setenv(config.EnvAccessKeyID, "AKIAEXAMPLE")
	t.Setenv(config.EnvSecretAccessKey, "secret")
	t.Setenv(config.EnvDefaultRegion, "us-east-1")

	client, err := Default(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", client.Region())
}

func TestPackageLevelListMachineTypesDelegates(t *testing.T) {
	api := &mockDescribeAPI{
		pages: []*awsec2.DescribeInstanceTypesOutput{{
			InstanceTypes: []types.InstanceTypeInfo{
				descriptor("c7g.large", types.ArchitectureTypeArm64, false),
			},
		}},
	}

	SetDefault(NewClientFromAPI(api, "us-east-1"))
	t.Cleanup(ResetDefault)

	machines, err := ListMachineTypes(context.Background(), &ListOptions{Architecture: ArchARM64})
	require.NoError(t, err)

	require.Len(t, machines, 1)
	assert.Equal(t, "c7g.large", machines[0].InstanceType)
	assert.Equal(t, 1, api.calls)
}

func TestSetDefaultReplacesClient(t *testing.T) {
	first := NewClientFromAPI(&mockDescribeAPI{}, "us-east-1")
	second := NewClientFromAPI(&mockDescribeAPI{}, "eu-west-1")

	SetDefault(first)
	t.Cleanup(ResetDefault)

	client, err := Default(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, client)

	SetDefault(second)
	client, err = Default(context.Background())
	require.NoError(t, err)
	assert.Same(t, second, client)
}
