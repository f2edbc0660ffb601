package naming

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Naming functions for deployment resources.
// Every resource created for a deployment follows a fixed pattern so that
// it can be identified and cleaned up later.

// bucketSuffixLength is the number of random hex characters appended to
// staging bucket names.
const bucketSuffixLength = 16

// maxBucketNameLength is the object storage limit on bucket names.
const maxBucketNameLength = 63

// Stack returns the infrastructure stack name for a cluster.
func Stack(cluster string) string {
	return fmt.Sprintf("clusterstage-%s", cluster)
}

// StagingBucket returns a staging bucket name with a fresh random suffix.
// The prefix is lowercased and stripped of characters that bucket names reject.
func StagingBucket(prefix string) string {
	return StagingBucketWithSuffix(prefix, RandomSuffix())
}

// StagingBucketWithSuffix builds a staging bucket name from a prefix and a known suffix.
func StagingBucketWithSuffix(prefix, suffix string) string {
	p := sanitizeBucketPrefix(prefix)
	if limit := maxBucketNameLength - len(suffix) - 1; len(p) > limit {
		p = strings.TrimRight(p[:limit], "-")
	}
	if p == "" {
		return suffix
	}
	return fmt.Sprintf("%s-%s", p, suffix)
}

// RandomSuffix returns bucketSuffixLength lowercase hex characters.
func RandomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:bucketSuffixLength]
}

// ComponentScript returns the workspace file name for a fetched component script.
func ComponentScript(timestamp, source string) string {
	base := source
	if i := strings.LastIndex(source, "/"); i >= 0 {
		base = source[i+1:]
	}
	return fmt.Sprintf("%s-%s", timestamp, base)
}

func sanitizeBucketPrefix(prefix string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(prefix) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == ' ':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
