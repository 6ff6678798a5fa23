package auditlog

import "context"

// Metadata describes the resource a command acted on.
type Metadata struct {
	APIHost      string
	ProjectID    string
	ResourceType string
	ResourceID   string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context, keeping previously set
// fields that meta leaves empty.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		APIHost:      pick(meta.APIHost, existing.APIHost),
		ProjectID:    pick(meta.ProjectID, existing.ProjectID),
		ResourceType: pick(meta.ResourceType, existing.ResourceType),
		ResourceID:   pick(meta.ResourceID, existing.ResourceID),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
