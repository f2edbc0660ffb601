package config

const (
	// DefaultConfigFilename is the configuration file looked up when none is given.
	DefaultConfigFilename = "clusterstage.yaml"

	// DefaultBucketPrefix prefixes generated staging bucket names.
	DefaultBucketPrefix = "clusterstage"

	// ClusterNameMaxLength is the longest accepted cluster name.
	ClusterNameMaxLength = 60
)
