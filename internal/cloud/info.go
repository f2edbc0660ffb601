package cloud

import (
	"errors"
	"fmt"
	"strings"

	"sigs.k8s.io/yaml"
)

// ErrNotFound is returned when a describe envelope holds no resource.
var ErrNotFound = errors.New("resource not found in payload")

// Tag is a key/value pair attached to a resource.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

func lookupTag(tags []Tag, key string) (string, bool) {
	for _, t := range tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

// StackInfo describes a deployed stack.
type StackInfo struct {
	ID     string
	Name   string
	Status string

	params  []stackParameter
	tags    []Tag
	outputs []stackOutput
}

type stackParameter struct {
	ParameterKey   string `json:"ParameterKey"`
	ParameterValue string `json:"ParameterValue"`
}

type stackOutput struct {
	OutputKey   string `json:"OutputKey"`
	OutputValue string `json:"OutputValue"`
}

type stackPayload struct {
	StackID     string           `json:"StackId"`
	StackName   string           `json:"StackName"`
	StackStatus string           `json:"StackStatus"`
	Parameters  []stackParameter `json:"Parameters"`
	Tags        []Tag            `json:"Tags"`
	Outputs     []stackOutput    `json:"Outputs"`
}

// ParseStackInfo builds a StackInfo from a describe-stacks response or a
// single stack object.
func ParseStackInfo(data []byte) (StackInfo, error) {
	var envelope struct {
		Stacks []stackPayload `json:"Stacks"`
		stackPayload
	}
	if err := yaml.Unmarshal(data, &envelope); err != nil {
		return StackInfo{}, fmt.Errorf("failed to parse stack payload: %w", err)
	}

	p := envelope.stackPayload
	if envelope.Stacks != nil {
		if len(envelope.Stacks) == 0 {
			return StackInfo{}, fmt.Errorf("stack: %w", ErrNotFound)
		}
		p = envelope.Stacks[0]
	}
	if p.StackID == "" || p.StackName == "" {
		return StackInfo{}, errors.New("stack payload requires StackId and StackName")
	}

	return StackInfo{
		ID:      p.StackID,
		Name:    p.StackName,
		Status:  p.StackStatus,
		params:  append([]stackParameter(nil), p.Parameters...),
		tags:    append([]Tag(nil), p.Tags...),
		outputs: append([]stackOutput(nil), p.Outputs...),
	}, nil
}

// Param returns the trimmed value of a stack parameter.
func (s StackInfo) Param(key string) (string, bool) {
	for _, p := range s.params {
		if p.ParameterKey == key {
			return strings.TrimSpace(p.ParameterValue), true
		}
	}
	return "", false
}

// Tag returns the value of a stack tag.
func (s StackInfo) Tag(key string) (string, bool) {
	return lookupTag(s.tags, key)
}

// Output returns the value of a stack output.
func (s StackInfo) Output(key string) (string, bool) {
	for _, o := range s.outputs {
		if o.OutputKey == key {
			return o.OutputValue, true
		}
	}
	return "", false
}

// Tags returns a copy of the stack tags.
func (s StackInfo) Tags() []Tag {
	return append([]Tag(nil), s.tags...)
}

// OutputKeys returns the output keys in payload order.
func (s StackInfo) OutputKeys() []string {
	keys := make([]string, len(s.outputs))
	for i, o := range s.outputs {
		keys[i] = o.OutputKey
	}
	return keys
}

// InstanceInfo describes a compute instance.
type InstanceInfo struct {
	ID        string
	State     string
	PrivateIP string
	// PublicIP is nil for instances without a public address.
	PublicIP *string
}

type instancePayload struct {
	InstanceID string `json:"InstanceId"`
	State      struct {
		Name string `json:"Name"`
	} `json:"State"`
	PublicIPAddress  *string `json:"PublicIpAddress"`
	PrivateIPAddress string  `json:"PrivateIpAddress"`
}

// ParseInstanceInfo builds an InstanceInfo from a describe-instances
// response or a single instance object.
func ParseInstanceInfo(data []byte) (InstanceInfo, error) {
	var envelope struct {
		Reservations []struct {
			Instances []instancePayload `json:"Instances"`
		} `json:"Reservations"`
		instancePayload
	}
	if err := yaml.Unmarshal(data, &envelope); err != nil {
		return InstanceInfo{}, fmt.Errorf("failed to parse instance payload: %w", err)
	}

	p := envelope.instancePayload
	if envelope.Reservations != nil {
		found := false
		for _, r := range envelope.Reservations {
			if len(r.Instances) > 0 {
				p, found = r.Instances[0], true
				break
			}
		}
		if !found {
			return InstanceInfo{}, fmt.Errorf("instance: %w", ErrNotFound)
		}
	}
	if p.InstanceID == "" {
		return InstanceInfo{}, errors.New("instance payload requires InstanceId")
	}

	info := InstanceInfo{
		ID:        p.InstanceID,
		State:     p.State.Name,
		PrivateIP: p.PrivateIPAddress,
	}
	if p.PublicIPAddress != nil && *p.PublicIPAddress != "" {
		ip := *p.PublicIPAddress
		info.PublicIP = &ip
	}
	return info, nil
}

// EBS describes the volume behind a block device mapping.
type EBS struct {
	VolumeSize          int    `json:"VolumeSize"`
	VolumeType          string `json:"VolumeType"`
	SnapshotID          string `json:"SnapshotId"`
	DeleteOnTermination bool   `json:"DeleteOnTermination"`
	Encrypted           bool   `json:"Encrypted"`
}

// BlockDeviceMapping is one device of an image.
type BlockDeviceMapping struct {
	DeviceName string `json:"DeviceName"`
	// EBS is nil for instance store devices.
	EBS *EBS `json:"Ebs,omitempty"`
}

// ImageInfo describes a machine image.
type ImageInfo struct {
	ID           string
	Name         string
	Description  string
	State        string
	Architecture string

	tags    []Tag
	devices []BlockDeviceMapping
}

type imagePayload struct {
	ImageID             string               `json:"ImageId"`
	Name                string               `json:"Name"`
	Description         string               `json:"Description"`
	State               string               `json:"State"`
	Architecture        string               `json:"Architecture"`
	Tags                []Tag                `json:"Tags"`
	BlockDeviceMappings []BlockDeviceMapping `json:"BlockDeviceMappings"`
}

// ParseImageInfo builds an ImageInfo from a describe-images response or a
// single image object.
func ParseImageInfo(data []byte) (ImageInfo, error) {
	var envelope struct {
		Images []imagePayload `json:"Images"`
		imagePayload
	}
	if err := yaml.Unmarshal(data, &envelope); err != nil {
		return ImageInfo{}, fmt.Errorf("failed to parse image payload: %w", err)
	}

	p := envelope.imagePayload
	if envelope.Images != nil {
		if len(envelope.Images) == 0 {
			return ImageInfo{}, fmt.Errorf("image: %w", ErrNotFound)
		}
		p = envelope.Images[0]
	}
	if p.ImageID == "" {
		return ImageInfo{}, errors.New("image payload requires ImageId")
	}

	devices := make([]BlockDeviceMapping, len(p.BlockDeviceMappings))
	for i, d := range p.BlockDeviceMappings {
		devices[i] = d
		if d.EBS != nil {
			ebs := *d.EBS
			devices[i].EBS = &ebs
		}
	}

	return ImageInfo{
		ID:           p.ImageID,
		Name:         p.Name,
		Description:  p.Description,
		State:        p.State,
		Architecture: p.Architecture,
		tags:         append([]Tag(nil), p.Tags...),
		devices:      devices,
	}, nil
}

// Tag returns the value of an image tag.
func (i ImageInfo) Tag(key string) (string, bool) {
	return lookupTag(i.tags, key)
}

// Tags returns a copy of the image tags.
func (i ImageInfo) Tags() []Tag {
	return append([]Tag(nil), i.tags...)
}

// BlockDeviceMappings returns a copy of the image devices.
func (i ImageInfo) BlockDeviceMappings() []BlockDeviceMapping {
	out := make([]BlockDeviceMapping, len(i.devices))
	for n, d := range i.devices {
		out[n] = d
		if d.EBS != nil {
			ebs := *d.EBS
			out[n].EBS = &ebs
		}
	}
	return out
}

// RootVolumeSize returns the size in GiB of the first EBS-backed device.
func (i ImageInfo) RootVolumeSize() (int, bool) {
	for _, d := range i.devices {
		if d.EBS != nil {
			return d.EBS.VolumeSize, true
		}
	}
	return 0, false
}
