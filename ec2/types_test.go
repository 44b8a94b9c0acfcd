package ec2

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"

	"eigenangi/errors"
)

func TestMachineTypeFromAWS(t *testing.T) {
	info := types.InstanceTypeInfo{
		InstanceType: types.InstanceType("t4g.micro"),
		VCpuInfo:     &types.VCpuInfo{DefaultVCpus: aws.Int32(2)},
		MemoryInfo:   &types.MemoryInfo{SizeInMiB: aws.Int64(1024)},
		ProcessorInfo: &types.ProcessorInfo{
			SupportedArchitectures: []types.ArchitectureType{types.ArchitectureTypeArm64},
		},
		NetworkInfo: &types.NetworkInfo{
			NetworkPerformance: aws.String("Up to 5 Gigabit"),
			EnaSupport:         types.EnaSupportRequired,
		},
		BurstablePerformanceSupported: aws.Bool(true),
	}

	machine := machineTypeFromAWS(info)

	assert.Equal(t, "t4g.micro", machine.InstanceType)
	assert.Equal(t, "t4g", machine.Family)
	assert.Equal(t, int32(2), machine.VCPUs)
	assert.Equal(t, int64(1024), machine.MemoryMiB)
	assert.Equal(t, []string{"arm64"}, machine.Architectures)
	assert.Equal(t, "Up to 5 Gigabit", machine.NetworkPerformance)
	assert.True(t, machine.ENASupport)
	assert.True(t, machine.Burstable)
}

func TestMachineTypeFromAWSSparseDescriptor(t *testing.T) {
	machine := machineTypeFromAWS(types.InstanceTypeInfo{
		InstanceType: types.InstanceType("mac2.metal"),
	})

	assert.Equal(t, "mac2.metal", machine.InstanceType)
	assert.Equal(t, "mac2", machine.Family)
	assert.Zero(t, machine.VCPUs)
	assert.Zero(t, machine.MemoryMiB)
	assert.Empty(t, machine.Architectures)
	assert.False(t, machine.ENASupport)
	assert.False(t, machine.Burstable)
}

func TestHasArchitecture(t *testing.T) {
	machine := MachineType{Architectures: []string{"x86_64", "i386"}}

	assert.True(t, machine.HasArchitecture(ArchX8664))
	assert.False(t, machine.HasArchitecture(ArchARM64))
}

func TestListOptionsValidate(t *testing.T) {
	tests := []struct {
		name      string
		opts      *ListOptions
		expectErr bool
	}{
		{"nil options", nil, false},
		{"zero value", &ListOptions{}, false},
		{"arm64", &ListOptions{Architecture: ArchARM64}, false},
		{"x86_64", &ListOptions{Architecture: ArchX8664}, false},
		{"unknown architecture", &ListOptions{Architecture: "sparc"}, true},
		{"negative max results", &ListOptions{MaxResults: -1}, true},
		{"positive max results", &ListOptions{MaxResults: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.expectErr {
				assert.True(t, errors.IsErrorType(err, errors.ValidationErrorType),
					"expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListOptionsMatches(t *testing.T) {
	arm := MachineType{InstanceType: "t4g.micro", Family: "t4g", Architectures: []string{"arm64"}, Burstable: true}
	intel := MachineType{InstanceType: "m5.large", Family: "m5", Architectures: []string{"x86_64"}, Burstable: false}

	tests := []struct {
		name    string
		opts    *ListOptions
		machine MachineType
		want    bool
	}{
		{"nil options match all", nil, arm, true},
		{"zero options match all", &ListOptions{}, intel, true},
		{"family prefix hit", &ListOptions{Families: []string{"t4g"}}, arm, true},
		{"family prefix miss", &ListOptions{Families: []string{"m7g"}}, arm, false},
		{"any of several families", &ListOptions{Families: []string{"c6i", "m5"}}, intel, true},
		{"architecture hit", &ListOptions{Architecture: ArchARM64}, arm, true},
		{"architecture miss", &ListOptions{Architecture: ArchARM64}, intel, false},
		{"burstable only", &ListOptions{BurstableOnly: aws.Bool(true)}, intel, false},
		{"non-burstable only", &ListOptions{BurstableOnly: aws.Bool(false)}, intel, true},
		{"filters are conjunctive", &ListOptions{Families: []string{"t4g"}, Architecture: ArchX8664}, arm, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.matches(tt.machine))
		})
	}
}
