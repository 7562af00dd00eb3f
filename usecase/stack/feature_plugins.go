package stack

import (
	"context"

	"github.com/kompox/mcstack/domain/model"
)

// pluginsFeature publishes the plugins directory as a public asset.
type pluginsFeature struct {
	contentHash string
}

func (pluginsFeature) name() string { return "plugins" }

func (pluginsFeature) enabled(s *model.Stack) bool { return s.PluginsPath != "" }

func (f pluginsFeature) compose(ctx context.Context, sc *synthContext) (contribution, error) {
	b := sc.builder
	asset, err := b.CreateResource(ctx, model.Resource{
		ID:   "plugins-asset",
		Kind: model.KindAsset,
		Properties: map[string]any{
			"sourcePath":  sc.stack.PluginsPath,
			"contentHash": f.contentHash,
			"key":         "plugins/" + f.contentHash + ".zip",
			"packaging":   "zip",
		},
	})
	if err != nil {
		return contribution{}, err
	}
	grant, err := createGrant(ctx, b, "plugins-read-grant", sc.role.Attr("arn"),
		[]string{"s3:GetObject", "s3:GetBucket*", "s3:List*"}, asset.Attr("bucketArn"), asset, sc.role)
	if err != nil {
		return contribution{}, err
	}
	public, err := createGrant(ctx, b, "plugins-public-read", "*",
		[]string{"s3:GetObject"}, asset.Attr("bucketArn")+"/*", asset)
	if err != nil {
		return contribution{}, err
	}
	sc.workload.dependsOn = append(sc.workload.dependsOn, grant, public)
	return contribution{pluginEndpoint: asset.Attr("url")}, nil
}
