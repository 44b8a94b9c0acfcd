package ec2

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"eigenangi/errors"
)

// Architecture values accepted by ListOptions.Architecture.
const (
	ArchARM64 = "arm64"
	ArchX8664 = "x86_64"
)

// MachineType describes one EC2 instance type offering. Values are produced
// from provider data by the client and never constructed by callers.
type MachineType struct {
	InstanceType       string   `json:"instanceType"`
	VCPUs              int32    `json:"vcpus"`
	MemoryMiB          int64    `json:"memoryMiB"`
	Family             string   `json:"family,omitempty"`
	Architectures      []string `json:"architectures,omitempty"`
	NetworkPerformance string   `json:"networkPerformance,omitempty"`
	ENASupport         bool     `json:"enaSupport"`
	Burstable          bool     `json:"burstable"`
}

// HasArchitecture reports whether the instance type supports the given
// architecture.
func (m MachineType) HasArchitecture(arch string) bool {
	for _, a := range m.Architectures {
		if a == arch {
			return true
		}
	}
	return false
}

// machineTypeFromAWS converts an SDK instance type descriptor into a MachineType.
func machineTypeFromAWS(info types.InstanceTypeInfo) MachineType {
	name := string(info.InstanceType)

	machine := MachineType{
		InstanceType: name,
		Burstable:    aws.ToBool(info.BurstablePerformanceSupported),
	}

	if dot := strings.Index(name, "."); dot > 0 {
		machine.Family = name[:dot]
	}

	if info.VCpuInfo != nil {
		machine.VCPUs = aws.ToInt32(info.VCpuInfo.DefaultVCpus)
	}

	if info.MemoryInfo != nil {
		machine.MemoryMiB = aws.ToInt64(info.MemoryInfo.SizeInMiB)
	}

	if info.ProcessorInfo != nil {
		for _, arch := range info.ProcessorInfo.SupportedArchitectures {
			machine.Architectures = append(machine.Architectures, string(arch))
		}
	}

	if info.NetworkInfo != nil {
		machine.NetworkPerformance = aws.ToString(info.NetworkInfo.NetworkPerformance)
		machine.ENASupport = info.NetworkInfo.EnaSupport == types.EnaSupportSupported ||
			info.NetworkInfo.EnaSupport == types.EnaSupportRequired
	}

	return machine
}

// ListOptions narrows the result of ListMachineTypes. The zero value matches
// every instance type the provider returns.
type ListOptions struct {
	// Families keeps instance types whose name starts with any of the given
	// prefixes (e.g. "t4g", "m7g"). Empty means no family filter.
	Families []string

	// Architecture keeps instance types supporting the given architecture,
	// ArchARM64 or ArchX8664. Empty means no architecture filter.
	Architecture string

	// BurstableOnly is a tri-state filter: nil means no filter, true keeps
	// only burstable types, false excludes them.
	BurstableOnly *bool

	// MaxResults caps the number of returned records. Zero means no cap.
	MaxResults int
}

// Validate checks the option values before any provider call is made.
func (o *ListOptions) Validate() error {
	if o == nil {
		return nil
	}

	if o.Architecture != "" && o.Architecture != ArchARM64 && o.Architecture != ArchX8664 {
		return errors.ValidationErrorf("unsupported architecture: %s", o.Architecture).
			WithSuggestion("Use \"arm64\" or \"x86_64\", or leave the filter unset")
	}

	if o.MaxResults < 0 {
		return errors.ValidationErrorf("max results must be positive, got %d", o.MaxResults)
	}

	return nil
}

// matches reports whether a machine type satisfies every specified filter.
// Filters are conjunctive.
func (o *ListOptions) matches(machine MachineType) bool {
	if o == nil {
		return true
	}

	if len(o.Families) > 0 {
		matched := false
		for _, prefix := range o.Families {
			if strings.HasPrefix(machine.InstanceType, prefix) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if o.Architecture != "" && !machine.HasArchitecture(o.Architecture) {
		return false
	}

	if o.BurstableOnly != nil && machine.Burstable != *o.BurstableOnly {
		return false
	}

	return true
}
