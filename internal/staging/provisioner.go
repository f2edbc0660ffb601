package staging

import (
	"context"
	"log/slog"
)

// Provisioner creates staging buckets.
type Provisioner struct {
	store   BucketStore
	names   NameGenerator
	logger  *slog.Logger
	metrics *Metrics
}

// NewProvisioner creates a Provisioner. logger and metrics may be nil.
func NewProvisioner(store BucketStore, names NameGenerator, logger *slog.Logger, metrics *Metrics) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{store: store, names: names, logger: logger, metrics: metrics}
}

// Provision creates one bucket with a freshly generated name in region and
// returns its name. A rejected creation is returned as *BucketCreationError
// and nothing needs cleaning up.
func (p *Provisioner) Provision(ctx context.Context, region string) (string, error) {
	name := p.names.Generate()

	if err := p.store.CreateBucket(ctx, name, region); err != nil {
		bce := newBucketCreationError(name, region, err)
		p.metrics.recordCreateFailure(bce.Code)
		p.logger.Error("Unable to create S3 bucket",
			"bucket", name,
			"region", region,
			"code", bce.Code,
			"error", err)
		return "", bce
	}

	p.metrics.recordBucketCreated()
	p.logger.Debug("created staging bucket", "bucket", name, "region", region)
	return name, nil
}
